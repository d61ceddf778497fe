// Package testutil provides shared test helpers for setting up data
// directories and catalog databases.
package testutil

import (
	"log/slog"
	"os"
	"testing"

	"github.com/ondrel/curio/internal/catalog"
	"github.com/ondrel/curio/internal/storage"
	"github.com/ondrel/curio/internal/store"
)

// TestDB creates a temporary SQLite catalog index that is automatically cleaned up.
func TestDB(t *testing.T) *catalog.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "curio-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := catalog.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDataDir creates a temporary data directory with a storage.Provider.
func TestDataDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	provider, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, provider
}

// TestStore creates a store over a temporary data directory.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	_, provider := TestDataDir(t)
	return store.New(provider, TestLogger())
}

// TestLogger returns a quiet logger for tests.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
