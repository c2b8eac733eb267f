package catalogstore

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"

	"github.com/jolespin/kegg-pathway-profiler/internal/definition"
	"github.com/jolespin/kegg-pathway-profiler/internal/pathway"
)

// payload is the gob-serializable form of a compiled Pathway's graph
// data, written as a gzip-compressed BLOB per module row.
//
// OptionalKOs is a slice rather than the set type the rest of the code
// uses - gob round-trips a map[definition.KO]struct{} fine, but a slice
// keeps the wire format boring and independent of how the in-memory set
// type evolves.
type payload struct {
	Graph       *pathway.Graph
	KOToEdges   pathway.KOEdges
	OptionalKOs []definition.KO
}

func encodePayload(p *pathway.Pathway) ([]byte, error) {
	pl := payload{
		Graph:     p.Graph,
		KOToEdges: p.KOToEdges,
	}
	for ko := range p.OptionalKOs {
		pl.OptionalKOs = append(pl.OptionalKOs, ko)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(pl); err != nil {
		return nil, fmt.Errorf("gob-encoding payload: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("closing gzip writer: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePayload(id, name, definitionStr string, classes []string, blob []byte) (*pathway.Pathway, error) {
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("opening gzip payload for %s: %w", id, err)
	}
	defer gz.Close()

	var pl payload
	if err := gob.NewDecoder(gz).Decode(&pl); err != nil {
		return nil, fmt.Errorf("gob-decoding payload for %s: %w", id, err)
	}

	optional := make(map[definition.KO]struct{}, len(pl.OptionalKOs))
	for _, ko := range pl.OptionalKOs {
		optional[ko] = struct{}{}
	}
	koToEdges := pl.KOToEdges
	if koToEdges == nil {
		// gob does not round-trip the nil/empty distinction for maps;
		// reconstruct the non-nil empty map NewPathway would have built.
		koToEdges = make(pathway.KOEdges)
	}

	return &pathway.Pathway{
		ID:          id,
		Name:        name,
		Classes:     classes,
		Definition:  definitionStr,
		Graph:       pl.Graph,
		KOToEdges:   koToEdges,
		OptionalKOs: optional,
	}, nil
}
