//go:build sqlite_fts5

package catalog

import (
	"database/sql"
	"fmt"

	"github.com/ondrel/curio/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS sources_fts USING fts5(
			repo UNINDEXED,
			name,
			user,
			topic,
			description,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, s models.Source) error {
	_, _ = tx.Exec(`DELETE FROM sources_fts WHERE repo = ?`, s.Repo)
	_, err := tx.Exec(`INSERT INTO sources_fts (repo, name, user, topic, description) VALUES (?, ?, ?, ?, ?)`,
		s.Repo, s.Name, s.User, s.Topic, s.Description)
	if err != nil {
		return fmt.Errorf("catalog: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, repo string) {
	_, _ = tx.Exec(`DELETE FROM sources_fts WHERE repo = ?`, repo)
}

// Search performs an FTS5 full-text search over the source index.
func (db *DB) Search(query string, limit int) ([]models.Source, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT s.repo, s.name, s.user, s.topic, s.description, s.custom
		FROM sources_fts f
		JOIN sources s ON s.repo = f.repo
		WHERE sources_fts MATCH ?
		ORDER BY f.rank
		LIMIT ?
	`, query, limit)
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
