package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jolespin/kegg-pathway-profiler/internal/batch"
	"github.com/jolespin/kegg-pathway-profiler/internal/koinput"
)

var (
	profileKOs       string
	profileName      string
	profileOutputDir string
	profileIndexName string
	profileNJobs     int
)

var profileCoverageCmd = &cobra.Command{
	Use:   "profile-coverage",
	Short: "Evaluate module coverage for one or more genomes' KO sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		if profileKOs == "" {
			return fmt.Errorf("profile-coverage: --kos is required")
		}

		cat, err := openCatalog(databasePath)
		if err != nil {
			return err
		}

		genomes, err := koinput.Read(profileKOs, profileName)
		if err != nil {
			return fmt.Errorf("profile-coverage: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		progress := func(msg string) { fmt.Fprintln(os.Stderr, msg) }
		results, err := batch.Run(ctx, genomes, cat, profileNJobs, progress)
		if err != nil {
			return fmt.Errorf("profile-coverage: %w", err)
		}

		coverage, stepCoverage := batch.BuildTables(results, profileIndexName)

		if err := os.MkdirAll(profileOutputDir, 0o755); err != nil {
			return fmt.Errorf("profile-coverage: creating output dir: %w", err)
		}

		coveragePath := filepath.Join(profileOutputDir, "coverage.tsv.gz")
		if err := batch.WriteCoverageTSV(coverage, coveragePath); err != nil {
			return fmt.Errorf("profile-coverage: %w", err)
		}
		stepPath := filepath.Join(profileOutputDir, "step_coverage.tsv.gz")
		if err := batch.WriteStepCoverageTSV(stepCoverage, stepPath); err != nil {
			return fmt.Errorf("profile-coverage: %w", err)
		}

		fmt.Fprintf(os.Stderr, "[profile-coverage] evaluated %s genome(s) against %s module(s)\n",
			humanize.Comma(int64(len(results))), humanize.Comma(int64(cat.Len())))
		fmt.Fprintf(os.Stderr, "[profile-coverage] wrote %s\n", coveragePath)
		fmt.Fprintf(os.Stderr, "[profile-coverage] wrote %s\n", stepPath)
		return nil
	},
}

func init() {
	profileCoverageCmd.Flags().StringVar(&profileKOs, "kos", "", "Path to a KO list or genome_id<TAB>ko table (gzip-transparent)")
	profileCoverageCmd.Flags().StringVar(&profileName, "name", "", "Genome id for a single-genome --kos file (defaults to the filename)")
	profileCoverageCmd.Flags().StringVar(&profileOutputDir, "output-dir", ".", "Directory to write coverage.tsv.gz and step_coverage.tsv.gz")
	profileCoverageCmd.Flags().StringVar(&profileIndexName, "index-name", "id_genome", "Name of the row-index column in the output tables")
	profileCoverageCmd.Flags().IntVar(&profileNJobs, "n-jobs", 1, "Number of genomes to evaluate concurrently (<=0 means unbounded)")
	rootCmd.AddCommand(profileCoverageCmd)
}
