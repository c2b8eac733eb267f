package pathway

import "github.com/jolespin/kegg-pathway-profiler/internal/definition"

// Compile turns a parsed expression tree into a DAG multigraph running
// from StartNode to EndNode, plus the KO->edge index the evaluator's
// weight override step uses.
//
// A leaf reached through a MINUS annotation compiles to a zero-weight
// edge: it never costs coverage whether or not it is observed. Every
// other leaf compiles to a weight-1 edge, so sibling edges created by
// the same Alt carry equal weight only when none of them is
// MINUS-marked.
func Compile(tree *definition.Node) (*Graph, KOEdges, error) {
	g := newGraph()
	idx := make(KOEdges)
	if err := compileNode(g, idx, tree, StartNode, EndNode); err != nil {
		return nil, nil, err
	}
	return g, idx, nil
}

func compileNode(g *Graph, idx KOEdges, n *definition.Node, src, dst int) error {
	switch n.Kind {
	case definition.KindLeaf:
		weight := 1.0
		if n.Optional {
			weight = 0
		}
		g.addEdge(src, dst, n.KO, weight)
		idx.record(n.KO, src, dst)
		return nil

	case definition.KindSeq:
		if len(n.Children) < 2 {
			return &GraphInvariantViolated{Detail: "Seq node with fewer than 2 children reached compile"}
		}
		cur := src
		for i, c := range n.Children {
			next := dst
			if i < len(n.Children)-1 {
				next = g.allocNode()
			}
			if err := compileNode(g, idx, c, cur, next); err != nil {
				return err
			}
			cur = next
		}
		return nil

	case definition.KindAlt:
		if len(n.Children) < 2 {
			return &GraphInvariantViolated{Detail: "Alt node with fewer than 2 children reached compile"}
		}
		for _, c := range n.Children {
			if err := compileNode(g, idx, c, src, dst); err != nil {
				return err
			}
		}
		return nil

	default:
		return &GraphInvariantViolated{Detail: "unknown node kind reached compile"}
	}
}

// compileTrivial builds the single-edge, no-label graph used for an
// empty or missing module definition: a bare StartNode->EndNode arc
// that never participates in ko_to_edges.
func compileTrivial() (*Graph, KOEdges) {
	g := newGraph()
	g.addEdge(StartNode, EndNode, "", 1)
	return g, make(KOEdges)
}
