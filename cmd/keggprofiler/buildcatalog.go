package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jolespin/kegg-pathway-profiler/internal/catalogstore"
)

var (
	buildDefinitions         string
	buildNames               string
	buildClasses             string
	buildOutput              string
	buildDownload            bool
	buildIntermediateDir     string
	buildNoIntermediateFiles bool
	buildVersionTag          string
	buildForce               bool
)

var buildCatalogCmd = &cobra.Command{
	Use:   "build-catalog",
	Short: "Compile KEGG module definition tables into a catalog database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildDownload {
			return fmt.Errorf("build-catalog: --download is not implemented in this build; supply --definitions/--names/--classes instead")
		}
		if buildDefinitions == "" || buildNames == "" || buildClasses == "" {
			return fmt.Errorf("build-catalog: --definitions, --names, and --classes are required")
		}
		if _, err := os.Stat(buildOutput); err == nil && !buildForce {
			return fmt.Errorf("build-catalog: %s already exists (use --force to overwrite)", buildOutput)
		}

		fmt.Fprintf(os.Stderr, "[build-catalog] reading %s, %s, %s\n", buildDefinitions, buildNames, buildClasses)

		cat, failures, err := catalogstore.BuildFromTables(buildDefinitions, buildNames, buildClasses, buildForce)
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "[build-catalog] skipped %s\n", f.String())
		}
		if err != nil {
			return err
		}

		if err := catalogstore.Save(cat, buildOutput); err != nil {
			return fmt.Errorf("build-catalog: %w", err)
		}

		if info, statErr := os.Stat(buildOutput); statErr == nil {
			fmt.Fprintf(os.Stderr, "[build-catalog] wrote %s (%s)\n", buildOutput, humanize.Bytes(uint64(info.Size())))
		}
		fmt.Fprintf(os.Stderr, "[build-catalog] number of pathways: %s\n", humanize.Comma(int64(cat.Len())))
		fmt.Fprintf(os.Stderr, "[build-catalog] number of unique KOs: %s\n", humanize.Comma(int64(cat.UniqueKOCount())))

		if buildVersionTag != "" {
			versionPath := buildOutput + ".version"
			if err := catalogstore.WriteVersionFile(versionPath, buildVersionTag, time.Now()); err != nil {
				return fmt.Errorf("build-catalog: writing version file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "[build-catalog] wrote %s\n", versionPath)
		}

		if !buildNoIntermediateFiles {
			dir := buildIntermediateDir
			if dir == "" {
				dir = filepath.Dir(buildOutput)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("build-catalog: creating intermediate dir: %w", err)
			}
			koTablePath := filepath.Join(dir, "module_to_ko.tsv")
			if err := catalogstore.WriteKOTable(cat, koTablePath); err != nil {
				return fmt.Errorf("build-catalog: writing KO table: %w", err)
			}
			fmt.Fprintf(os.Stderr, "[build-catalog] wrote %s\n", koTablePath)
		}

		return nil
	},
}

func init() {
	buildCatalogCmd.Flags().StringVar(&buildDefinitions, "definitions", "", "Path to the module_id<TAB>definition TSV")
	buildCatalogCmd.Flags().StringVar(&buildNames, "names", "", "Path to the module_id<TAB>name TSV")
	buildCatalogCmd.Flags().StringVar(&buildClasses, "classes", "", "Path to the module_id<TAB>class TSV")
	buildCatalogCmd.Flags().StringVar(&buildOutput, "output", "catalog.db", "Path to write the compiled catalog database")
	buildCatalogCmd.Flags().BoolVar(&buildDownload, "download", false, "Download module tables from KEGG before building (not implemented)")
	buildCatalogCmd.Flags().StringVar(&buildIntermediateDir, "intermediate-dir", "", "Directory for intermediate files (defaults to --output's directory)")
	buildCatalogCmd.Flags().BoolVar(&buildNoIntermediateFiles, "no-intermediate-files", false, "Skip writing the module_to_ko.tsv companion table")
	buildCatalogCmd.Flags().StringVar(&buildVersionTag, "version-tag", "", "Version tag to stamp into a companion .version file")
	buildCatalogCmd.Flags().BoolVar(&buildForce, "force", false, "Build past modules that fail to parse, and overwrite an existing --output")
	rootCmd.AddCommand(buildCatalogCmd)
}
