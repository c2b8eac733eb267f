package batch

import "sort"

// CoverageTable is the dense genomes x modules table: rows = genomes,
// columns = module ids, values in [0,1].
type CoverageTable struct {
	IndexName string
	GenomeIDs []string
	ModuleIDs []string
	Values    map[string]map[string]float64 // genome -> module -> coverage
}

// StepColumn identifies one column of the step-coverage table: a
// module id and the 1-based step index along that genome's
// most-complete path for that module.
type StepColumn struct {
	ModuleID string
	Step     int
}

// StepCoverageTable is the genomes x (module, step) table. Columns
// vary in count per module (the longest most-complete-path
// length observed for that module across all genomes); a genome whose
// own path for a module is shorter gets 0 in the columns it doesn't
// reach.
type StepCoverageTable struct {
	IndexName string
	GenomeIDs []string
	Columns   []StepColumn
	Values    map[string]map[StepColumn]int
}

// BuildTables turns per-genome evaluation results into the two output
// tables.
func BuildTables(results []GenomeResult, indexName string) (CoverageTable, StepCoverageTable) {
	genomeIDs := make([]string, len(results))
	for i, r := range results {
		genomeIDs[i] = r.GenomeID
	}
	sort.Strings(genomeIDs)

	moduleSet := make(map[string]struct{})
	maxSteps := make(map[string]int)
	coverageValues := make(map[string]map[string]float64, len(results))
	stepValues := make(map[string]map[StepColumn]int, len(results))

	for _, r := range results {
		coverageValues[r.GenomeID] = make(map[string]float64, len(r.Modules))
		stepValues[r.GenomeID] = make(map[StepColumn]int)
		for moduleID, res := range r.Modules {
			moduleSet[moduleID] = struct{}{}
			coverageValues[r.GenomeID][moduleID] = res.Coverage
			if len(res.StepCoverage) > maxSteps[moduleID] {
				maxSteps[moduleID] = len(res.StepCoverage)
			}
			for i, v := range res.StepCoverage {
				stepValues[r.GenomeID][StepColumn{ModuleID: moduleID, Step: i + 1}] = v
			}
		}
	}

	moduleIDs := make([]string, 0, len(moduleSet))
	for id := range moduleSet {
		moduleIDs = append(moduleIDs, id)
	}
	sort.Strings(moduleIDs)

	var columns []StepColumn
	for _, moduleID := range moduleIDs {
		for step := 1; step <= maxSteps[moduleID]; step++ {
			columns = append(columns, StepColumn{ModuleID: moduleID, Step: step})
		}
	}

	cov := CoverageTable{
		IndexName: indexName,
		GenomeIDs: genomeIDs,
		ModuleIDs: moduleIDs,
		Values:    coverageValues,
	}
	step := StepCoverageTable{
		IndexName: indexName,
		GenomeIDs: genomeIDs,
		Columns:   columns,
		Values:    stepValues,
	}
	return cov, step
}
