package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jolespin/kegg-pathway-profiler/internal/catalogstore"
)

var databasePath string

var rootCmd = &cobra.Command{
	Use:   "keggprofiler",
	Short: "Profile KEGG module pathway completeness against observed KO sets",
}

// Execute runs the root command, printing any error to stderr and
// exiting non-zero: build and evaluation errors are surfaced to the
// caller, not swallowed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databasePath, "database", "", "Path to the compiled catalog database")
}

// discoverDatabase resolves the catalog path: the KEGGPROFILER_DATABASE
// environment variable first, then --database.
func discoverDatabase(flagValue string) (string, error) {
	if envPath := os.Getenv("KEGGPROFILER_DATABASE"); envPath != "" {
		return envPath, nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	return "", fmt.Errorf("no catalog database given (set KEGGPROFILER_DATABASE or use --database)")
}

func openCatalog(flagValue string) (*catalogstore.Catalog, error) {
	path, err := discoverDatabase(flagValue)
	if err != nil {
		return nil, err
	}
	cat, err := catalogstore.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return cat, nil
}
