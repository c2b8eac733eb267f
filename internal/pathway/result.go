package pathway

import "github.com/jolespin/kegg-pathway-profiler/internal/definition"

// EvaluationResult is the outcome of evaluating one compiled Graph
// against one observed KO set.
type EvaluationResult struct {
	Coverage                 float64
	MostCompletePath         []definition.KO
	NumberOfBestPaths        int
	RequiredKOsInPath        map[definition.KO]struct{}
	RequiredKOsMissingInPath map[definition.KO]struct{}
	StepCoverage             []int
}
