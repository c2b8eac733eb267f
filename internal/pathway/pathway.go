package pathway

import (
	"strings"

	"github.com/jolespin/kegg-pathway-profiler/internal/definition"
)

// Pathway is one compiled KEGG module: its catalog metadata plus the
// graph and indices the evaluator needs. It is built once at catalog
// build time and is safe for concurrent read-only use thereafter.
type Pathway struct {
	ID         string
	Name       string
	Classes    []string
	Definition string

	Graph       *Graph
	KOToEdges   KOEdges
	OptionalKOs map[definition.KO]struct{}
}

// NewPathway parses and compiles a raw module definition string into a
// Pathway. An empty (or whitespace-only) definition compiles to a
// trivial single, unlabeled edge instead of failing to parse.
func NewPathway(id, name string, classes []string, def string) (*Pathway, error) {
	if strings.TrimSpace(def) == "" {
		g, idx := compileTrivial()
		return &Pathway{
			ID:          id,
			Name:        name,
			Classes:     classes,
			Definition:  def,
			Graph:       g,
			KOToEdges:   idx,
			OptionalKOs: make(map[definition.KO]struct{}),
		}, nil
	}

	tree, optional, err := definition.Parse(def)
	if err != nil {
		return nil, err
	}
	g, idx, err := Compile(tree)
	if err != nil {
		return nil, err
	}
	return &Pathway{
		ID:          id,
		Name:        name,
		Classes:     classes,
		Definition:  def,
		Graph:       g,
		KOToEdges:   idx,
		OptionalKOs: optional,
	}, nil
}

// Evaluate scores this pathway's graph against an observed KO set.
func (p *Pathway) Evaluate(evaluationKOs map[definition.KO]struct{}) (EvaluationResult, error) {
	return Evaluate(p.Graph, p.KOToEdges, p.OptionalKOs, evaluationKOs)
}

// IndexedKOs returns every KO that appears on at least one edge of the
// graph, i.e. the keys of KOToEdges. Used by the enrich command to
// decide whether a query KO set can possibly move this pathway's
// coverage off zero before paying for a full evaluation, and to build
// its default background.
func (p *Pathway) IndexedKOs() map[definition.KO]struct{} {
	out := make(map[definition.KO]struct{}, len(p.KOToEdges))
	for ko := range p.KOToEdges {
		out[ko] = struct{}{}
	}
	return out
}
