//go:build !sqlite_fts5

package catalog

import (
	"database/sql"
	"fmt"

	"github.com/ondrel/curio/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not compiled in; search uses a LIKE fallback on the sources table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ models.Source) error { return nil }

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]models.Source, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT repo, name, user, topic, description, custom
		FROM sources
		WHERE repo LIKE ? OR name LIKE ? OR topic LIKE ? OR description LIKE ?
		ORDER BY repo
		LIMIT ?
	`, like, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	defer rows.Close()

	var out []models.Source
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
