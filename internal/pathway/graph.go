// Package pathway compiles a parsed KEGG module expression tree into a
// weighted DAG multigraph and evaluates it against observed KO sets.
package pathway

import "github.com/jolespin/kegg-pathway-profiler/internal/definition"

// StartNode and EndNode are the fixed ids of the single source and single
// sink of every compiled graph.
const (
	StartNode = 0
	EndNode   = 1
)

// EdgePair identifies a (source, target) node pair, independent of which
// parallel edge (if any) it names.
type EdgePair struct {
	From, To int
}

// Edge is one labeled arc of the compiled multigraph. ID is the arena
// index and doubles as the edge's key: two edges with the same (From,
// To) but different IDs are the parallel edges the multigraph must
// support.
type Edge struct {
	ID            int
	From, To      int
	Label         definition.KO
	BaseWeight    float64
	CurrentWeight float64
}

// Graph is the compiled pathway DAG multigraph: an edge arena plus
// adjacency lists, built once and read-only thereafter. Evaluation never
// mutates a Graph; see Evaluate's per-call weight-override slice.
type Graph struct {
	NumNodes int
	Edges    []Edge
	Out      map[int][]int // node -> outgoing edge IDs, insertion order
	In       map[int][]int // node -> incoming edge IDs, insertion order
}

func newGraph() *Graph {
	return &Graph{
		NumNodes: 2,
		Out:      make(map[int][]int),
		In:       make(map[int][]int),
	}
}

// addEdge appends a new edge with the given base weight (1 for a
// required KO, 0 for one reached through a MINUS annotation - an
// optional step contributes to neither numerator nor denominator of any
// path ratio, so its absence from an observed KO set never costs
// coverage). current_weight starts equal to base_weight; the evaluator
// never mutates the graph itself, it works off a local copy.
func (g *Graph) addEdge(from, to int, label definition.KO, baseWeight float64) int {
	id := len(g.Edges)
	g.Edges = append(g.Edges, Edge{
		ID:            id,
		From:          from,
		To:            to,
		Label:         label,
		BaseWeight:    baseWeight,
		CurrentWeight: baseWeight,
	})
	g.Out[from] = append(g.Out[from], id)
	g.In[to] = append(g.In[to], id)
	return id
}

func (g *Graph) allocNode() int {
	id := g.NumNodes
	g.NumNodes++
	return id
}

// KOEdges maps each KO label to the ordered, deduplicated (u,v) pairs at
// least one parallel edge carries it on.
type KOEdges map[definition.KO][]EdgePair

func (idx KOEdges) record(ko definition.KO, from, to int) {
	if ko == "" {
		return
	}
	pair := EdgePair{From: from, To: to}
	for _, p := range idx[ko] {
		if p == pair {
			return
		}
	}
	idx[ko] = append(idx[ko], pair)
}
