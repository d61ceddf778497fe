package store

import (
	"log/slog"
	"os"
	"testing"

	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	provider, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return New(provider, testLogger(), opts...), dir
}

func TestWriteReadRoundTrip(t *testing.T) {
	s, _ := testStore(t)

	in := []models.Collection{{ID: "c1", Name: "Frontend"}}
	if !s.Write(KeyCollections, in) {
		t.Fatal("write failed")
	}
	out := Read(s, KeyCollections, []models.Collection(nil))
	if len(out) != 1 || out[0].ID != "c1" || out[0].Name != "Frontend" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestReadMissingReturnsDefault(t *testing.T) {
	s, _ := testStore(t)

	prefs := Read(s, KeyPreferences, models.DefaultPreferences())
	if prefs.Theme != "system" || !prefs.Autosave {
		t.Errorf("missing key default mismatch: %+v", prefs)
	}
}

func TestReadMalformedReturnsDefault(t *testing.T) {
	s, dir := testStore(t)

	if err := os.WriteFile(dir+"/"+string(KeyPreferences), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	prefs := Read(s, KeyPreferences, models.DefaultPreferences())
	if prefs.Theme != "system" || prefs.DefaultView != "grid" {
		t.Errorf("malformed record did not fall back: %+v", prefs)
	}
}

func TestRemoveMissingIsSuccess(t *testing.T) {
	s, _ := testStore(t)
	if !s.Remove(KeyCustomLists) {
		t.Error("removing an absent record should succeed")
	}
}

func TestClear(t *testing.T) {
	s, _ := testStore(t)
	s.Write(KeyCollections, []models.Collection{{ID: "a", Name: "A"}})
	s.Write(KeyCustomLists, []models.CustomList{{Repo: "x/y"}})

	if !s.Clear(KeyCollections) {
		t.Fatal("clear failed")
	}
	if got := Read(s, KeyCollections, []models.Collection(nil)); got != nil {
		t.Errorf("collections survived clear: %+v", got)
	}
	if got := Read(s, KeyCustomLists, []models.CustomList(nil)); len(got) != 1 {
		t.Errorf("unnamed key was cleared: %+v", got)
	}
}

func TestSchemaVersionWritten(t *testing.T) {
	s, _ := testStore(t)
	if got := s.Version(); got != SchemaVersion {
		t.Errorf("version = %q, want %q", got, SchemaVersion)
	}
}

func TestMigrationRunsOnceBeforeTagRewrite(t *testing.T) {
	dir := t.TempDir()
	provider, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := provider.Write(string(KeySchemaVersion), []byte("0.9")); err != nil {
		t.Fatal(err)
	}

	var calls int
	var sawOld string
	s := New(provider, testLogger(), WithMigration(func(oldVersion string) error {
		calls++
		sawOld = oldVersion
		return nil
	}))

	if calls != 1 {
		t.Fatalf("migration calls = %d, want 1", calls)
	}
	if sawOld != "0.9" {
		t.Errorf("old version = %q, want 0.9", sawOld)
	}
	if got := s.Version(); got != SchemaVersion {
		t.Errorf("version after migration = %q, want %q", got, SchemaVersion)
	}

	// Matching tag: no further migration.
	New(provider, testLogger(), WithMigration(func(string) error {
		t.Error("migration ran with a current tag")
		return nil
	}))
}

func TestStats(t *testing.T) {
	s, _ := testStore(t)
	s.Write(KeyCollections, []models.Collection{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	s.Write(KeyListConfig, models.ListConfig{DisabledLists: []string{"x/y"}})

	st := s.Stats()
	if st.Items[KeyCollections] != 2 {
		t.Errorf("collections count = %d, want 2", st.Items[KeyCollections])
	}
	if st.Items[KeyListConfig] != 1 {
		t.Errorf("list config count = %d, want 1", st.Items[KeyListConfig])
	}
	if st.ApproxBytes <= 0 {
		t.Error("expected positive approximate size")
	}
	// ASCII content: exactly two bytes per stored character.
	raw, _ := s.readRaw(KeyCollections)
	rawCfg, _ := s.readRaw(KeyListConfig)
	rawVer, _ := s.readRaw(KeySchemaVersion)
	want := 2 * int64(len(raw)+len(rawCfg)+len(rawVer))
	if st.ApproxBytes != want {
		t.Errorf("approx bytes = %d, want %d", st.ApproxBytes, want)
	}
}

func TestExportAllScrubsAPIKey(t *testing.T) {
	s, _ := testStore(t)
	s.Write(KeyAISettings, models.AISettings{Provider: "openai", APIKey: "sk-secret", Enabled: true})

	b := s.ExportAll()
	if b.AISettings == nil {
		t.Fatal("expected AI settings in backup")
	}
	if b.AISettings.APIKey != "" {
		t.Errorf("API key leaked into backup: %q", b.AISettings.APIKey)
	}
	if b.AISettings.Provider != "openai" {
		t.Errorf("provider = %q", b.AISettings.Provider)
	}
}

func TestImportAllPartial(t *testing.T) {
	s, _ := testStore(t)
	s.Write(KeyPreferences, models.Preferences{Theme: "dark"})

	ok := s.ImportAll(models.Backup{
		Version:     "1.0",
		Collections: []models.Collection{{ID: "r", Name: "Restored"}},
	})
	if !ok {
		t.Fatal("partial import failed")
	}
	cs := Read(s, KeyCollections, []models.Collection(nil))
	if len(cs) != 1 || cs[0].Name != "Restored" {
		t.Fatalf("collections not restored: %+v", cs)
	}
	// Absent sections stay untouched.
	prefs := Read(s, KeyPreferences, models.Preferences{})
	if prefs.Theme != "dark" {
		t.Errorf("preferences overwritten: %+v", prefs)
	}
}
