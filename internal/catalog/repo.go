package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ondrel/curio/internal/apperr"
	"github.com/ondrel/curio/internal/models"
)

// UpsertSource inserts or replaces one source row and its FTS entry.
func (db *DB) UpsertSource(s models.Source) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO sources (repo, name, user, topic, description, custom, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(repo) DO UPDATE SET
			name        = excluded.name,
			user        = excluded.user,
			topic       = excluded.topic,
			description = excluded.description,
			custom      = excluded.custom,
			updated_at  = excluded.updated_at
	`, s.Repo, s.Name, s.User, s.Topic, s.Description, boolInt(s.Custom), time.Now())
	if err != nil {
		return fmt.Errorf("catalog: upsert source: %w", err)
	}

	if err := ftsUpsert(tx, s); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteSource removes a source row and its FTS entry.
func (db *DB) DeleteSource(repo string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, repo)
	_, _ = tx.Exec(`DELETE FROM sources WHERE repo = ?`, repo)
	return tx.Commit()
}

// GetSource returns one source by repo key.
func (db *DB) GetSource(repo string) (models.Source, error) {
	row := db.conn.QueryRow(`
		SELECT repo, name, user, topic, description, custom
		FROM sources WHERE repo = ?`, repo)
	s, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Source{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Source{}, fmt.Errorf("catalog: get source: %w", err)
	}
	return s, nil
}

// ListSources returns sources ordered by repo, optionally filtered by
// topic, with the total row count for pagination.
func (db *DB) ListSources(limit, offset int, topic string) ([]models.Source, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where, args := "", []any{}
	if topic != "" {
		where = "WHERE topic = ?"
		args = append(args, topic)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM sources `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("catalog: count sources: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := db.conn.Query(`
		SELECT repo, name, user, topic, description, custom
		FROM sources `+where+`
		ORDER BY repo LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: list sources: %w", err)
	}
	defer rows.Close()

	var out []models.Source
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// AllRepos returns every indexed repo key.
func (db *DB) AllRepos() ([]string, error) {
	rows, err := db.conn.Query(`SELECT repo FROM sources ORDER BY repo`)
	if err != nil {
		return nil, fmt.Errorf("catalog: all repos: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Topics returns the distinct topic labels in the index.
func (db *DB) Topics() ([]string, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT topic FROM sources WHERE topic != '' ORDER BY topic`)
	if err != nil {
		return nil, fmt.Errorf("catalog: topics: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSource(r rowScanner) (models.Source, error) {
	var s models.Source
	var custom int
	if err := r.Scan(&s.Repo, &s.Name, &s.User, &s.Topic, &s.Description, &custom); err != nil {
		return models.Source{}, err
	}
	s.Custom = custom != 0
	return s, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
