package catalogstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jolespin/kegg-pathway-profiler/internal/pathway"
)

func TestWriteVersionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db.version")
	builtAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := WriteVersionFile(path, "2026-01-02", builtAt); err != nil {
		t.Fatalf("WriteVersionFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading version file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), data)
	}
	if lines[0] != "VERSION: 2026-01-02" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "CREATED: 2026-01-02T03:04:05") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestWriteKOTable(t *testing.T) {
	cat := newCatalog()
	p1, _ := pathway.NewPathway("M00002", "b", nil, "K03,K01")
	p2, _ := pathway.NewPathway("M00001", "a", nil, "K01 K02")
	cat.entries["M00002"] = p1
	cat.entries["M00001"] = p2

	path := filepath.Join(t.TempDir(), "kos.tsv")
	if err := WriteKOTable(cat, path); err != nil {
		t.Fatalf("WriteKOTable: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading KO table: %v", err)
	}
	want := "M00001\tK01\nM00001\tK02\nM00002\tK01\nM00002\tK03\n"
	if string(data) != want {
		t.Errorf("got:\n%s\nwant:\n%s", data, want)
	}
}
