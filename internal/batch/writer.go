package batch

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteCoverageTSV writes the coverage table as a gzip-compressed TSV:
// a header row of module ids and one row per genome, missing values
// encoded as 0.0.
func WriteCoverageTSV(t CoverageTable, path string) error {
	return writeGzipTSV(path, func(w *csv.Writer) error {
		header := append([]string{t.IndexName}, t.ModuleIDs...)
		if err := w.Write(header); err != nil {
			return err
		}
		for _, genomeID := range t.GenomeIDs {
			row := make([]string, len(t.ModuleIDs)+1)
			row[0] = genomeID
			for i, moduleID := range t.ModuleIDs {
				v, ok := t.Values[genomeID][moduleID]
				if !ok {
					v = 0.0
				}
				row[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteStepCoverageTSV writes the step-coverage table as a
// gzip-compressed TSV with a two-level header: row 1 holds module ids
// (repeated across that module's step columns) and row 2 holds the
// 1-based step index, then one data row per genome.
func WriteStepCoverageTSV(t StepCoverageTable, path string) error {
	return writeGzipTSV(path, func(w *csv.Writer) error {
		moduleHeader := make([]string, len(t.Columns)+1)
		moduleHeader[0] = t.IndexName
		stepHeader := make([]string, len(t.Columns)+1)
		stepHeader[0] = ""
		for i, c := range t.Columns {
			moduleHeader[i+1] = c.ModuleID
			stepHeader[i+1] = strconv.Itoa(c.Step)
		}
		if err := w.Write(moduleHeader); err != nil {
			return err
		}
		if err := w.Write(stepHeader); err != nil {
			return err
		}
		for _, genomeID := range t.GenomeIDs {
			row := make([]string, len(t.Columns)+1)
			row[0] = genomeID
			for i, c := range t.Columns {
				row[i+1] = strconv.Itoa(t.Values[genomeID][c])
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeGzipTSV(path string, write func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	w := csv.NewWriter(gz)
	w.Comma = '\t'

	if err := write(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip writer for %s: %w", path, err)
	}
	return nil
}
