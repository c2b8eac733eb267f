// Package catalogstore builds, persists, and loads the catalog of
// compiled KEGG module pathways: a module_id -> Pathway mapping, built
// once and read-only thereafter.
package catalogstore

import (
	"sort"

	"github.com/jolespin/kegg-pathway-profiler/internal/pathway"
)

// Catalog is the immutable, in-memory module_id -> Pathway mapping.
type Catalog struct {
	entries map[string]*pathway.Pathway
}

func newCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*pathway.Pathway)}
}

// Get looks up a module by id.
func (c *Catalog) Get(id string) (*pathway.Pathway, error) {
	p, ok := c.entries[id]
	if !ok {
		return nil, &pathway.UnknownModule{ModuleID: id}
	}
	return p, nil
}

// IDs returns every module id in the catalog, sorted, for deterministic
// iteration.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of modules in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// UniqueKOCount returns the number of distinct KOs indexed across every
// module in the catalog, for the build summary line.
func (c *Catalog) UniqueKOCount() int {
	seen := make(map[string]struct{})
	for _, p := range c.entries {
		for ko := range p.KOToEdges {
			seen[string(ko)] = struct{}{}
		}
	}
	return len(seen)
}
