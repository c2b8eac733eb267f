// Package batch evaluates many (genome, module) pairs against a
// catalog, in parallel across genomes, and builds the resulting
// coverage and step-coverage tables.
package batch

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jolespin/kegg-pathway-profiler/internal/catalogstore"
	"github.com/jolespin/kegg-pathway-profiler/internal/definition"
	"github.com/jolespin/kegg-pathway-profiler/internal/koinput"
	"github.com/jolespin/kegg-pathway-profiler/internal/pathway"
)

// GenomeResult is every module's evaluation result for one genome.
type GenomeResult struct {
	GenomeID string
	Modules  map[string]pathway.EvaluationResult
}

// Run evaluates every (genome, module) pair and returns one
// GenomeResult per genome, in genome-id sorted order.
//
// nJobs bounds the number of genomes evaluated concurrently; nJobs <= 0
// means unbounded. The catalog is read-only and shared by reference
// across workers; the weight override each evaluation needs is a
// call-local copy, so no synchronization is required beyond the
// result slice itself.
//
// Cancellation is cooperative at genome boundaries: if ctx is cancelled
// before a genome's evaluation starts, that genome is omitted from the
// result entirely rather than appearing partially evaluated.
func Run(ctx context.Context, genomes koinput.GenomeKOs, cat *catalogstore.Catalog, nJobs int, progress func(string)) ([]GenomeResult, error) {
	if progress == nil {
		progress = func(string) {}
	}
	runID := uuid.New().String()

	genomeIDs := make([]string, 0, len(genomes))
	for id := range genomes {
		genomeIDs = append(genomeIDs, id)
	}
	sort.Strings(genomeIDs)

	moduleIDs := cat.IDs()
	modules := make([]*pathway.Pathway, len(moduleIDs))
	for i, id := range moduleIDs {
		p, err := cat.Get(id)
		if err != nil {
			return nil, err
		}
		modules[i] = p
	}

	progress(fmt.Sprintf("[batch %s] evaluating %s genomes against %s modules",
		runID, humanize.Comma(int64(len(genomeIDs))), humanize.Comma(int64(len(modules)))))

	g, gctx := errgroup.WithContext(ctx)
	if nJobs > 0 {
		g.SetLimit(nJobs)
	}

	var mu sync.Mutex
	results := make([]GenomeResult, 0, len(genomeIDs))

	for _, genomeID := range genomeIDs {
		genomeID := genomeID
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			kos := genomes[genomeID]
			gr := evaluateGenome(genomeID, kos, modules)

			mu.Lock()
			results = append(results, gr)
			mu.Unlock()
			progress(fmt.Sprintf("[batch %s] finished %s", runID, genomeID))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].GenomeID < results[j].GenomeID })
	return results, nil
}

func evaluateGenome(genomeID string, kos map[definition.KO]struct{}, modules []*pathway.Pathway) GenomeResult {
	out := make(map[string]pathway.EvaluationResult, len(modules))
	for _, p := range modules {
		out[p.ID] = evaluateModule(kos, p)
	}
	return GenomeResult{GenomeID: genomeID, Modules: out}
}

// evaluateModule skips the full evaluator for a genome with no KO in
// common with a module's index, since the result is definitionally
// coverage=0 with no path.
func evaluateModule(kos map[definition.KO]struct{}, p *pathway.Pathway) pathway.EvaluationResult {
	if !intersects(kos, p.KOToEdges) {
		return pathway.EvaluationResult{Coverage: 0}
	}
	res, err := p.Evaluate(kos)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[batch] module %s: %v\n", p.ID, err)
		return pathway.EvaluationResult{Coverage: 0}
	}
	return res
}

func intersects(kos map[definition.KO]struct{}, idx pathway.KOEdges) bool {
	for ko := range kos {
		if _, ok := idx[ko]; ok {
			return true
		}
	}
	return false
}
