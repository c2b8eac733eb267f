// Package koinput reads KO list / genome-KO table input files: either
// one KO per line, or a headerless two-column genome_id<TAB>ko table,
// auto-detected by column count and gzip-transparent.
package koinput

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jolespin/kegg-pathway-profiler/internal/definition"
)

// GenomeKOs maps a genome id to its observed KO set.
type GenomeKOs map[string]map[definition.KO]struct{}

// Read loads a KO list file into a GenomeKOs mapping.
//
// A file whose data lines never contain a tab is treated as a
// single-genome KO list; its genome id defaults to the file's base
// name with a trailing .gz and then its last remaining extension
// removed (genome_a.txt.gz -> genome_a), unless name is non-empty, in
// which case name wins. A file whose lines are `genome_id<TAB>ko` pairs
// is treated as a multi-genome table, and name is ignored.
func Read(path, name string) (GenomeKOs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening KO list %s: %w", path, err)
	}
	defer f.Close()

	r, err := maybeGunzip(f)
	if err != nil {
		return nil, fmt.Errorf("reading KO list %s: %w", path, err)
	}

	lines, err := readNonEmptyLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading KO list %s: %w", path, err)
	}

	if isTwoColumn(lines) {
		return parseTwoColumn(lines)
	}
	return parseOneColumn(lines, defaultName(path, name))
}

func maybeGunzip(f *os.File) (io.Reader, error) {
	if strings.HasSuffix(f.Name(), ".gz") {
		return gzip.NewReader(f)
	}
	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}

func readNonEmptyLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func isTwoColumn(lines []string) bool {
	for _, l := range lines {
		if strings.Contains(l, "\t") {
			return true
		}
	}
	return false
}

func parseOneColumn(lines []string, genomeID string) (GenomeKOs, error) {
	kos := make(map[definition.KO]struct{}, len(lines))
	for i, l := range lines {
		ko := definition.KO(strings.TrimSpace(l))
		if !validKO(ko) {
			return nil, fmt.Errorf("line %d: %q is not a valid KO (expected K followed by 5 digits)", i+1, l)
		}
		kos[ko] = struct{}{}
	}
	return GenomeKOs{genomeID: kos}, nil
}

func parseTwoColumn(lines []string) (GenomeKOs, error) {
	out := make(GenomeKOs)
	for i, l := range lines {
		parts := strings.SplitN(l, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected genome_id<TAB>ko, got %q", i+1, l)
		}
		genomeID := strings.TrimSpace(parts[0])
		ko := definition.KO(strings.TrimSpace(parts[1]))
		if !validKO(ko) {
			return nil, fmt.Errorf("line %d: %q is not a valid KO (expected K followed by 5 digits)", i+1, l)
		}
		if out[genomeID] == nil {
			out[genomeID] = make(map[definition.KO]struct{})
		}
		out[genomeID][ko] = struct{}{}
	}
	return out, nil
}

func validKO(ko definition.KO) bool {
	s := string(ko)
	if len(s) != 6 || s[0] != 'K' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func defaultName(path, override string) string {
	if override != "" {
		return override
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base
}
