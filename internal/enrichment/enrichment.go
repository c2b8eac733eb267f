// Package enrichment implements a hypergeometric over-representation
// test: for each module, is the query KO set enriched in the module's
// most-complete-path KO set, relative to a background KO universe?
// Results are FDR-corrected across modules.
package enrichment

import (
	"sort"

	"github.com/jolespin/kegg-pathway-profiler/internal/definition"
)

// ModuleResult is one row of the enrichment table: the hypergeometric
// parameters and p-value for a single module, plus the FDR-adjusted
// value filled in by Run after testing every module.
type ModuleResult struct {
	ModuleID              string
	M                     int // background size
	N                     int // module pathway KO set size
	NQuery                int // query KO set size
	K                     int // |pathway_kos ∩ query_kos|
	IntersectingFeatures  []string
	ExtraFeatures         []string // pathway_kos \ query_kos
	PValue                float64
	FDR                   float64
	Significant           bool
	SignificanceEvaluated bool
}

// Run tests query against every module's pathway KO set (the
// most-complete-path KOs, computed by the caller via evaluation) and
// FDR-corrects the resulting p-values.
//
// If background is nil, it defaults to the union of only the pathway
// KO sets being tested, plus query - a narrower universe than the
// union of every indexed KO across the whole catalog. Callers that want
// that catalog-wide background should build and pass it explicitly.
//
// Returns *BackgroundMismatch if query is not a subset of the
// effective background.
func Run(query map[definition.KO]struct{}, pathwayKOsByModule map[string][]definition.KO, background map[definition.KO]struct{}, method Method, tolerance *float64) ([]ModuleResult, error) {
	bg := background
	if bg == nil {
		bg = defaultBackground(query, pathwayKOsByModule)
	}

	var mismatched []string
	for ko := range query {
		if _, ok := bg[ko]; !ok {
			mismatched = append(mismatched, string(ko))
		}
	}
	if len(mismatched) > 0 {
		sort.Strings(mismatched)
		return nil, &BackgroundMismatch{Extra: mismatched}
	}

	moduleIDs := make([]string, 0, len(pathwayKOsByModule))
	for id := range pathwayKOsByModule {
		moduleIDs = append(moduleIDs, id)
	}
	sort.Strings(moduleIDs)

	M := len(bg)
	N := len(query)

	results := make([]ModuleResult, len(moduleIDs))
	pValues := make([]float64, len(moduleIDs))
	for i, id := range moduleIDs {
		pathwaySet := make(map[definition.KO]struct{}, len(pathwayKOsByModule[id]))
		for _, ko := range pathwayKOsByModule[id] {
			pathwaySet[ko] = struct{}{}
		}
		n := len(pathwaySet)

		var intersecting, extra []string
		for ko := range pathwaySet {
			if _, ok := query[ko]; ok {
				intersecting = append(intersecting, string(ko))
			} else {
				extra = append(extra, string(ko))
			}
		}
		sort.Strings(intersecting)
		sort.Strings(extra)
		k := len(intersecting)

		p := hypergeomSF(k, M, n, N)
		pValues[i] = p
		results[i] = ModuleResult{
			ModuleID:             id,
			M:                    M,
			N:                    n,
			NQuery:               N,
			K:                    k,
			IntersectingFeatures: intersecting,
			ExtraFeatures:        extra,
			PValue:               p,
		}
	}

	fdr := AdjustPValues(pValues, method)
	for i := range results {
		results[i].FDR = fdr[i]
		if tolerance != nil {
			results[i].Significant = fdr[i] <= *tolerance
			results[i].SignificanceEvaluated = true
		}
	}
	return results, nil
}

func defaultBackground(query map[definition.KO]struct{}, pathwayKOsByModule map[string][]definition.KO) map[definition.KO]struct{} {
	bg := make(map[definition.KO]struct{})
	for _, kos := range pathwayKOsByModule {
		for _, ko := range kos {
			bg[ko] = struct{}{}
		}
	}
	for ko := range query {
		bg[ko] = struct{}{}
	}
	return bg
}
