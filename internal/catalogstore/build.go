package catalogstore

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jolespin/kegg-pathway-profiler/internal/pathway"
)

// BuildFromTables reads the three flat KEGG module tables (definitions,
// names, classes) and compiles a Catalog from them.
//
// A module that fails to parse or compile with a parser error
// (LexError/UnbalancedParen/UnexpectedToken/EmptyGroup) is recorded in
// the returned failure list and skipped rather than aborting the whole
// build. A GraphInvariantViolated is a compiler bug, not a malformed
// input, and aborts the build immediately.
//
// If any module failed and force is false, BuildFromTables returns the
// partial Catalog, the failure list, and a non-nil *BuildAborted - the
// caller decides whether that should be a fatal CLI error.
func BuildFromTables(definitionsPath, namesPath, classesPath string, force bool) (*Catalog, []BuildFailure, error) {
	definitions, order, err := readOrderedTSV2(definitionsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading definitions table %s: %w", definitionsPath, err)
	}
	names, err := readTSV2(namesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading names table %s: %w", namesPath, err)
	}
	classes, err := readTSV2(classesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading classes table %s: %w", classesPath, err)
	}

	cat := newCatalog()
	var failures []BuildFailure

	for _, id := range order {
		def := definitions[id]
		name := names[id]
		var classList []string
		if raw, ok := classes[id]; ok && raw != "" {
			for _, c := range strings.Split(raw, ";") {
				c = strings.TrimSpace(c)
				if c != "" {
					classList = append(classList, c)
				}
			}
		}

		p, err := pathway.NewPathway(id, name, classList, def)
		if err != nil {
			if _, ok := err.(*pathway.GraphInvariantViolated); ok {
				return nil, failures, fmt.Errorf("building module %s: %w", id, err)
			}
			failures = append(failures, BuildFailure{ModuleID: id, Err: err})
			continue
		}
		cat.entries[id] = p
	}

	if len(failures) > 0 && !force {
		return cat, failures, &BuildAborted{Failures: failures}
	}
	return cat, failures, nil
}

// readTSV2 reads a two-column, tab-separated, headerless file into a
// map keyed by the first column.
func readTSV2(path string) (map[string]string, error) {
	out, _, err := readOrderedTSV2(path)
	return out, err
}

// readOrderedTSV2 is readTSV2 plus the first-column keys in file order,
// so callers that care about iteration order (the definitions table
// drives catalog build order) don't need a second pass.
func readOrderedTSV2(path string) (map[string]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	out := make(map[string]string)
	var order []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) < 2 {
			return nil, nil, fmt.Errorf("%s:%d: expected 2 tab-separated columns, got %q", path, lineNo, line)
		}
		id := parts[0]
		if _, seen := out[id]; !seen {
			order = append(order, id)
		}
		out[id] = parts[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return out, order, nil
}
