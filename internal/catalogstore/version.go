package catalogstore

import (
	"fmt"
	"os"
	"sort"
	"time"
)

// WriteVersionFile writes a companion text file next to the catalog
// database recording the version tag and build timestamp.
func WriteVersionFile(path, versionTag string, builtAt time.Time) error {
	content := fmt.Sprintf("VERSION: %s\nCREATED: %s\n", versionTag, builtAt.Format(time.RFC3339))
	return os.WriteFile(path, []byte(content), 0o644)
}

// WriteKOTable writes a flat module_id<TAB>ko_id table alongside the
// catalog, one row per (module, KO) pair, sorted for reproducible
// output. Handy for a quick grep over which modules carry a KO.
func WriteKOTable(cat *Catalog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating KO table %s: %w", path, err)
	}
	defer f.Close()

	for _, id := range cat.IDs() {
		p, _ := cat.Get(id)
		kos := make([]string, 0, len(p.KOToEdges))
		for ko := range p.KOToEdges {
			kos = append(kos, string(ko))
		}
		sort.Strings(kos)
		for _, ko := range kos {
			if _, err := fmt.Fprintf(f, "%s\t%s\n", id, ko); err != nil {
				return fmt.Errorf("writing KO table row: %w", err)
			}
		}
	}
	return nil
}
