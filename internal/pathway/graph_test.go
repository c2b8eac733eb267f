package pathway

import (
	"testing"

	"github.com/jolespin/kegg-pathway-profiler/internal/definition"
)

func mustParse(t *testing.T, def string) *definition.Node {
	t.Helper()
	tree, _, err := definition.Parse(def)
	if err != nil {
		t.Fatalf("parse(%q): %v", def, err)
	}
	return tree
}

// TestCompileSingleKO checks that a bare leaf compiles to a single
// edge from StartNode to EndNode.
func TestCompileSingleKO(t *testing.T) {
	g, idx, err := Compile(mustParse(t, "K01"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(g.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(g.Edges))
	}
	e := g.Edges[0]
	if e.From != StartNode || e.To != EndNode || e.Label != "K01" {
		t.Errorf("got %+v, want StartNode->EndNode labeled K01", e)
	}
	if len(idx["K01"]) != 1 || idx["K01"][0] != (EdgePair{StartNode, EndNode}) {
		t.Errorf("got ko_to_edges[K01]=%v, want [(0,1)]", idx["K01"])
	}
}

// TestCompileSeqAllocatesInteriorNodes checks that an n-step sequence
// allocates n-1 fresh interior nodes chained start->...->end.
func TestCompileSeqAllocatesInteriorNodes(t *testing.T) {
	g, _, err := Compile(mustParse(t, "K01 K02 K03"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(g.Edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(g.Edges))
	}
	if g.NumNodes != 4 {
		t.Fatalf("got %d nodes, want 4 (start, 2 interior, end)", g.NumNodes)
	}
	// Trace the chain from StartNode.
	cur := StartNode
	wantLabels := []definition.KO{"K01", "K02", "K03"}
	for i, want := range wantLabels {
		outs := g.Out[cur]
		if len(outs) != 1 {
			t.Fatalf("step %d: node %d has %d out-edges, want 1", i, cur, len(outs))
		}
		e := g.Edges[outs[0]]
		if e.Label != want {
			t.Errorf("step %d: got label %s, want %s", i, e.Label, want)
		}
		cur = e.To
	}
	if cur != EndNode {
		t.Errorf("chain did not terminate at EndNode, ended at %d", cur)
	}
}

// TestCompileAltParallelEdges checks that alternation compiles to
// parallel edges sharing the same (From, To) pair.
func TestCompileAltParallelEdges(t *testing.T) {
	g, idx, err := Compile(mustParse(t, "K01,K02,K03"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(g.Edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(g.Edges))
	}
	for _, e := range g.Edges {
		if e.From != StartNode || e.To != EndNode {
			t.Errorf("got edge %+v, want all edges StartNode->EndNode", e)
		}
	}
	for _, ko := range []definition.KO{"K01", "K02", "K03"} {
		pairs := idx[ko]
		if len(pairs) != 1 || pairs[0] != (EdgePair{StartNode, EndNode}) {
			t.Errorf("ko_to_edges[%s] = %v, want single (0,1) pair", ko, pairs)
		}
	}
}

// TestCompileMixedAltWithinSeq checks an alternation nested inside a
// sequence: "(K01,K02) K03".
func TestCompileMixedAltWithinSeq(t *testing.T) {
	g, idx, err := Compile(mustParse(t, "(K01,K02) K03"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(g.Edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(g.Edges))
	}
	if g.NumNodes != 3 {
		t.Fatalf("got %d nodes, want 3 (start, one interior, end)", g.NumNodes)
	}
	interior := g.Edges[0].To
	for _, ko := range []definition.KO{"K01", "K02"} {
		pairs := idx[ko]
		if len(pairs) != 1 || pairs[0] != (EdgePair{StartNode, interior}) {
			t.Errorf("ko_to_edges[%s] = %v, want single (0,%d) pair", ko, pairs, interior)
		}
	}
	pairs := idx["K03"]
	if len(pairs) != 1 || pairs[0] != (EdgePair{interior, EndNode}) {
		t.Errorf("ko_to_edges[K03] = %v, want single (%d,1) pair", pairs, interior)
	}
}

// TestCompileGraphInvariants checks the compiled graph's structural
// invariants over a handful of shapes.
func TestCompileGraphInvariants(t *testing.T) {
	defs := []string{
		"K01",
		"K01 K02",
		"K01,K02",
		"(K01,K02) K03",
		"K01 (K02,K03) K04",
		"K01 -K02",
	}
	for _, def := range defs {
		t.Run(def, func(t *testing.T) {
			g, _, err := Compile(mustParse(t, def))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			// Every edge starts with current_weight == base_weight, and
			// base_weight is 0 or 1 (0 only for a MINUS-marked leaf).
			for _, e := range g.Edges {
				if e.BaseWeight != e.CurrentWeight {
					t.Errorf("edge %+v: current_weight should start equal to base_weight", e)
				}
				if e.BaseWeight != 0 && e.BaseWeight != 1 {
					t.Errorf("edge %+v: base_weight should be 0 or 1", e)
				}
			}
			// Every node but StartNode has >=1 in-edge, every node but
			// EndNode has >=1 out-edge.
			for n := 0; n < g.NumNodes; n++ {
				if n != StartNode && len(g.In[n]) == 0 {
					t.Errorf("node %d has no in-edges", n)
				}
				if n != EndNode && len(g.Out[n]) == 0 {
					t.Errorf("node %d has no out-edges", n)
				}
			}
		})
	}
}
