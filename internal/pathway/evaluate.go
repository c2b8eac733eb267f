package pathway

import (
	"sort"

	"github.com/jolespin/kegg-pathway-profiler/internal/definition"
)

// path is one enumerated source-to-sink route through a Graph, recorded
// as the ordered edge ids that make it up.
type path []int

// Evaluate scores a compiled Graph against an observed KO set. It never
// mutates g: the per-edge weight override lives in a local copy keyed
// by edge id.
//
// The evaluator is total: it returns a well-formed result with zero
// coverage and an empty path for the empty KO set and for any KO set
// disjoint from the module's indexed KOs, rather than erroring.
func Evaluate(g *Graph, idx KOEdges, optional map[definition.KO]struct{}, evaluationKOs map[definition.KO]struct{}) (EvaluationResult, error) {
	weight := overrideWeights(g, idx, evaluationKOs)

	order, err := topoOrder(g)
	if err != nil {
		return EvaluationResult{}, err
	}
	paths := enumeratePaths(g, order)
	if len(paths) == 0 {
		return EvaluationResult{}, &GraphInvariantViolated{Detail: "no source-to-sink path found"}
	}

	type scored struct {
		p     path
		ratio float64
	}
	scoredPaths := make([]scored, len(paths))
	best := 1.0
	for i, p := range paths {
		var base, cur float64
		for _, eid := range p {
			base += g.Edges[eid].BaseWeight
			cur += weight[eid]
		}
		ratio := 1.0
		if base > 0 {
			ratio = cur / base
		}
		scoredPaths[i] = scored{p: p, ratio: ratio}
		if ratio < best {
			best = ratio
		}
	}

	var bestPaths []path
	for _, sp := range scoredPaths {
		if sp.ratio == best {
			bestPaths = append(bestPaths, sp.p)
		}
	}

	winner := selectByLexicographicLabels(g, bestPaths)
	coverage := 1 - best

	labels, stepCoverage := pathLabelsAndCoverage(g, winner, weight, coverage)

	inPath := make(map[definition.KO]struct{})
	missing := make(map[definition.KO]struct{})
	for _, l := range labels {
		if _, isOptional := optional[l]; isOptional {
			continue
		}
		if _, found := evaluationKOs[l]; found {
			inPath[l] = struct{}{}
		} else {
			missing[l] = struct{}{}
		}
	}

	return EvaluationResult{
		Coverage:                 coverage,
		MostCompletePath:         labels,
		NumberOfBestPaths:        len(bestPaths),
		RequiredKOsInPath:        inPath,
		RequiredKOsMissingInPath: missing,
		StepCoverage:             stepCoverage,
	}, nil
}

// overrideWeights computes the per-edge current weight after zeroing the
// first parallel edge of every (u,v) pair recorded for a KO present in
// evaluationKOs. Only the first parallel edge per pair is zeroed, even if
// several parallel edges between the same pair share that KO's label.
func overrideWeights(g *Graph, idx KOEdges, evaluationKOs map[definition.KO]struct{}) []float64 {
	weight := make([]float64, len(g.Edges))
	for i, e := range g.Edges {
		weight[i] = e.BaseWeight
	}
	for ko := range evaluationKOs {
		pairs, ok := idx[ko]
		if !ok {
			continue
		}
		for _, pair := range pairs {
			for _, eid := range g.Out[pair.From] {
				e := g.Edges[eid]
				if e.To == pair.To && e.Label == ko {
					weight[eid] = 0
					break
				}
			}
		}
	}
	return weight
}

// topoOrder computes a deterministic forward topological order of g's
// nodes via Kahn's algorithm, breaking ties by smallest node id.
func topoOrder(g *Graph) ([]int, error) {
	indeg := make([]int, g.NumNodes)
	for n := 0; n < g.NumNodes; n++ {
		indeg[n] = len(g.In[n])
	}
	ready := make([]int, 0, g.NumNodes)
	for n := 0; n < g.NumNodes; n++ {
		if indeg[n] == 0 {
			ready = append(ready, n)
		}
	}
	order := make([]int, 0, g.NumNodes)
	for len(ready) > 0 {
		sort.Ints(ready)
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		for _, eid := range g.Out[n] {
			to := g.Edges[eid].To
			indeg[to]--
			if indeg[to] == 0 {
				ready = append(ready, to)
			}
		}
	}
	if len(order) != g.NumNodes {
		return nil, &GraphInvariantViolated{Detail: "graph is not a DAG: topological sort did not cover every node"}
	}
	return order, nil
}

// enumeratePaths lists every source-to-sink route through g as an
// ordered edge id slice, via a suffix table built in reverse topological
// order so shared tails are computed once per node.
func enumeratePaths(g *Graph, order []int) []path {
	suffix := make(map[int][]path, g.NumNodes)
	suffix[EndNode] = []path{{}}
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n == EndNode {
			continue
		}
		var paths []path
		for _, eid := range g.Out[n] {
			to := g.Edges[eid].To
			for _, tail := range suffix[to] {
				p := make(path, 0, len(tail)+1)
				p = append(p, eid)
				p = append(p, tail...)
				paths = append(paths, p)
			}
		}
		suffix[n] = paths
	}
	return suffix[StartNode]
}

// selectByLexicographicLabels picks the path whose KO label sequence
// sorts lexicographically smallest, breaking any remaining tie by the
// smallest edge id sequence for determinism.
func selectByLexicographicLabels(g *Graph, candidates []path) path {
	labelSeq := func(p path) []string {
		seq := make([]string, len(p))
		for i, eid := range p {
			seq[i] = string(g.Edges[eid].Label)
		}
		return seq
	}
	less := func(a, b path) bool {
		sa, sb := labelSeq(a), labelSeq(b)
		for i := 0; i < len(sa) && i < len(sb); i++ {
			if sa[i] != sb[i] {
				return sa[i] < sb[i]
			}
		}
		if len(sa) != len(sb) {
			return len(sa) < len(sb)
		}
		for i := range a {
			if a[i] != b[i] {
				return a[i] < b[i]
			}
		}
		return false
	}
	winner := candidates[0]
	for _, c := range candidates[1:] {
		if less(c, winner) {
			winner = c
		}
	}
	return winner
}

// pathLabelsAndCoverage derives the ordered label list and per-step
// coverage flags for the winning path, skipping the unlabeled edge of a
// trivial graph. When coverage is zero the winner is reported as empty
// rather than the uncovered path it actually is.
//
// A step counts as covered iff its edge's current weight is zero - not
// merely whether its KO was observed, since a MINUS-marked (optional)
// edge starts at weight zero regardless of observation and must report
// as covered either way.
func pathLabelsAndCoverage(g *Graph, winner path, weight []float64, coverage float64) ([]definition.KO, []int) {
	if coverage == 0 {
		return nil, nil
	}
	labels := make([]definition.KO, 0, len(winner))
	stepCoverage := make([]int, 0, len(winner))
	for _, eid := range winner {
		label := g.Edges[eid].Label
		if label == "" {
			continue
		}
		labels = append(labels, label)
		if weight[eid] == 0 {
			stepCoverage = append(stepCoverage, 1)
		} else {
			stepCoverage = append(stepCoverage, 0)
		}
	}
	return labels, stepCoverage
}
