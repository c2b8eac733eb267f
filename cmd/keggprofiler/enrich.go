package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jolespin/kegg-pathway-profiler/internal/definition"
	"github.com/jolespin/kegg-pathway-profiler/internal/enrichment"
	"github.com/jolespin/kegg-pathway-profiler/internal/koinput"
	"github.com/jolespin/kegg-pathway-profiler/internal/pathway"
)

var (
	enrichKOs         string
	enrichBackground  string
	enrichOutput      string
	enrichMethod      string
	enrichTolerance   float64
	enrichNoTolerance bool
)

// enrich tests a query KO set for enrichment against every module in
// the catalog, using a hypergeometric test over each module's
// most-complete-path KOs and FDR-correcting the resulting p-values.
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Test a query KO set for enrichment against each module's most-complete-path KOs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if enrichKOs == "" {
			return fmt.Errorf("enrich: --kos is required")
		}
		method := enrichment.BenjaminiHochberg
		switch strings.ToLower(enrichMethod) {
		case "", "bh", "benjamini-hochberg":
			method = enrichment.BenjaminiHochberg
		case "by", "benjamini-yekutieli":
			method = enrichment.BenjaminiYekutieli
		default:
			return fmt.Errorf("enrich: unknown --method %q (want bh or by)", enrichMethod)
		}

		cat, err := openCatalog(databasePath)
		if err != nil {
			return err
		}

		queryGenomes, err := koinput.Read(enrichKOs, "")
		if err != nil {
			return fmt.Errorf("enrich: reading --kos: %w", err)
		}
		query := mergeGenomeKOs(queryGenomes)

		var background map[definition.KO]struct{}
		if enrichBackground != "" {
			bgGenomes, err := koinput.Read(enrichBackground, "")
			if err != nil {
				return fmt.Errorf("enrich: reading --background: %w", err)
			}
			background = mergeGenomeKOs(bgGenomes)
			for ko := range query {
				background[ko] = struct{}{}
			}
		} else {
			background = make(map[definition.KO]struct{})
			for ko := range query {
				background[ko] = struct{}{}
			}
		}

		pathwayKOsByModule := make(map[string][]definition.KO)
		for _, id := range cat.IDs() {
			p, err := cat.Get(id)
			if err != nil {
				return err
			}
			if enrichBackground == "" {
				for ko := range p.IndexedKOs() {
					background[ko] = struct{}{}
				}
			}
			if !intersectsIndex(query, p) {
				continue
			}
			res, err := p.Evaluate(query)
			if err != nil {
				return fmt.Errorf("enrich: evaluating %s: %w", id, err)
			}
			if len(res.MostCompletePath) == 0 {
				continue
			}
			pathwayKOsByModule[id] = res.MostCompletePath
		}

		var tol *float64
		if !enrichNoTolerance {
			t := enrichTolerance
			tol = &t
		}

		results, err := enrichment.Run(query, pathwayKOsByModule, background, method, tol)
		if err != nil {
			return fmt.Errorf("enrich: %w", err)
		}

		return writeEnrichmentTSV(results, method, enrichOutput)
	},
}

func mergeGenomeKOs(genomes koinput.GenomeKOs) map[definition.KO]struct{} {
	out := make(map[definition.KO]struct{})
	for _, kos := range genomes {
		for ko := range kos {
			out[ko] = struct{}{}
		}
	}
	return out
}

func intersectsIndex(query map[definition.KO]struct{}, p *pathway.Pathway) bool {
	idx := p.IndexedKOs()
	for ko := range query {
		if _, ok := idx[ko]; ok {
			return true
		}
	}
	return false
}

func writeEnrichmentTSV(results []enrichment.ModuleResult, method enrichment.Method, path string) error {
	var out *os.File
	if path == "" || path == "-" {
		out = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	w.Comma = '\t'
	defer w.Flush()

	header := []string{"id_pathway", "method", "M", "n", "N", "k", "intersecting_features", "extra_features", "p_value", "fdr"}
	hasSignificance := len(results) > 0 && results[0].SignificanceEvaluated
	if hasSignificance {
		header = append(header, "significant")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	sorted := make([]enrichment.ModuleResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ModuleID < sorted[j].ModuleID })

	for _, r := range sorted {
		row := []string{
			r.ModuleID,
			string(method),
			strconv.Itoa(r.M),
			strconv.Itoa(r.N),
			strconv.Itoa(r.NQuery),
			strconv.Itoa(r.K),
			strings.Join(r.IntersectingFeatures, ","),
			strings.Join(r.ExtraFeatures, ","),
			strconv.FormatFloat(r.PValue, 'g', -1, 64),
			strconv.FormatFloat(r.FDR, 'g', -1, 64),
		}
		if hasSignificance {
			row = append(row, strconv.FormatBool(r.Significant))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func init() {
	enrichCmd.Flags().StringVar(&enrichKOs, "kos", "", "Path to the query KO list")
	enrichCmd.Flags().StringVar(&enrichBackground, "background", "", "Path to a background KO list (defaults to the union of every indexed KO in the catalog and the query)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "-", "Path to write the enrichment TSV (- for stdout)")
	enrichCmd.Flags().StringVar(&enrichMethod, "method", "bh", "FDR method: bh (Benjamini-Hochberg) or by (Benjamini-Yekutieli)")
	enrichCmd.Flags().Float64Var(&enrichTolerance, "tolerance", 0.05, "FDR significance threshold")
	enrichCmd.Flags().BoolVar(&enrichNoTolerance, "no-tolerance", false, "Omit the significance column entirely")
	rootCmd.AddCommand(enrichCmd)
}
