package catalog_test

import (
	"errors"
	"testing"

	"github.com/ondrel/curio/internal/apperr"
	"github.com/ondrel/curio/internal/catalog"
	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/testutil"
)

func TestSyncUpsertsFetchedAndCustom(t *testing.T) {
	db := testutil.TestDB(t)

	fetched := []models.Source{
		{Repo: "alice/awesome-go", Name: "awesome-go", Topic: "go"},
		{Repo: "bob/awesome-rust", Name: "awesome-rust", Topic: "rust"},
	}
	custom := []models.CustomList{
		{Repo: "me/my-list", Name: "my-list", User: "me", Description: "personal picks"},
	}

	if err := catalog.Sync(db, fetched, custom, testutil.TestLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	repos, err := db.AllRepos()
	if err != nil {
		t.Fatalf("AllRepos: %v", err)
	}
	if len(repos) != 3 {
		t.Fatalf("indexed repos = %v, want 3 entries", repos)
	}

	mine, err := db.GetSource("me/my-list")
	if err != nil {
		t.Fatalf("GetSource custom: %v", err)
	}
	if !mine.Custom || mine.Description != "personal picks" {
		t.Errorf("custom source not preserved: %+v", mine)
	}
}

func TestSyncDeletesStaleRows(t *testing.T) {
	db := testutil.TestDB(t)
	seedSources(t, db,
		models.Source{Repo: "old/gone", Name: "gone"},
		models.Source{Repo: "alice/awesome-go", Name: "awesome-go"},
	)

	fetched := []models.Source{{Repo: "alice/awesome-go", Name: "awesome-go"}}
	if err := catalog.Sync(db, fetched, nil, testutil.TestLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if _, err := db.GetSource("old/gone"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("stale row survived sync: %v", err)
	}
	if _, err := db.GetSource("alice/awesome-go"); err != nil {
		t.Errorf("kept row missing after sync: %v", err)
	}
}

func TestSyncKeepsCustomListNotInFetchedIndex(t *testing.T) {
	db := testutil.TestDB(t)
	custom := []models.CustomList{{Repo: "me/my-list", Name: "my-list"}}

	if err := catalog.Sync(db, nil, custom, testutil.TestLogger()); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	// A second sync with an empty fetch result must not drop the custom row.
	if err := catalog.Sync(db, nil, custom, testutil.TestLogger()); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	if _, err := db.GetSource("me/my-list"); err != nil {
		t.Errorf("custom list dropped by sync: %v", err)
	}
}
