package catalogstore

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS modules (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	classes    TEXT NOT NULL,
	definition TEXT NOT NULL,
	payload    BLOB NOT NULL
);
`

// Save writes a Catalog to a sqlite file, one row per module. An
// existing file at path is overwritten.
func Save(cat *Catalog, path string) error {
	conn, err := open(path)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Exec("DROP TABLE IF EXISTS modules"); err != nil {
		return fmt.Errorf("dropping existing modules table: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("creating modules table: %w", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO modules (id, name, classes, definition, payload) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range cat.IDs() {
		p, _ := cat.Get(id)
		blob, err := encodePayload(p)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("encoding module %s: %w", id, err)
		}
		if _, err := stmt.Exec(p.ID, p.Name, strings.Join(p.Classes, "; "), p.Definition, blob); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting module %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Load reads a Catalog back from a sqlite file written by Save.
func Load(path string) (*Catalog, error) {
	conn, err := open(path)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT id, name, classes, definition, payload FROM modules`)
	if err != nil {
		return nil, fmt.Errorf("querying modules: %w", err)
	}
	defer rows.Close()

	cat := newCatalog()
	for rows.Next() {
		var id, name, classesJoined, def string
		var blob []byte
		if err := rows.Scan(&id, &name, &classesJoined, &def, &blob); err != nil {
			return nil, fmt.Errorf("scanning module row: %w", err)
		}
		var classes []string
		if classesJoined != "" {
			classes = strings.Split(classesJoined, "; ")
		}
		p, err := decodePayload(id, name, def, classes, blob)
		if err != nil {
			return nil, err
		}
		cat.entries[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating module rows: %w", err)
	}
	return cat, nil
}

func open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return conn, nil
}
