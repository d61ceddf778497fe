package store

import (
	"time"

	"github.com/ondrel/curio/internal/models"
)

// ExportAll snapshots every namespaced record into a backup envelope.
func (s *Store) ExportAll() models.Backup {
	prefs := Read(s, KeyPreferences, models.DefaultPreferences())
	listCfg := Read(s, KeyListConfig, models.ListConfig{})
	ai := Read(s, KeyAISettings, models.DefaultAISettings()).Scrubbed()

	return models.Backup{
		Version:     s.Version(),
		ExportedAt:  time.Now().UTC(),
		Collections: Read(s, KeyCollections, []models.Collection{}),
		Preferences: &prefs,
		ListConfig:  &listCfg,
		CustomLists: Read(s, KeyCustomLists, []models.CustomList{}),
		AISettings:  &ai,
	}
}

// ImportAll restores whichever records are present in the envelope and
// ignores the rest; a partial backup is legal. Reports whether every
// attempted write succeeded.
func (s *Store) ImportAll(b models.Backup) bool {
	ok := true
	if b.Collections != nil {
		ok = s.Write(KeyCollections, b.Collections) && ok
	}
	if b.Preferences != nil {
		ok = s.Write(KeyPreferences, *b.Preferences) && ok
	}
	if b.ListConfig != nil {
		ok = s.Write(KeyListConfig, *b.ListConfig) && ok
	}
	if b.CustomLists != nil {
		ok = s.Write(KeyCustomLists, b.CustomLists) && ok
	}
	if b.AISettings != nil {
		ok = s.Write(KeyAISettings, *b.AISettings) && ok
	}
	return ok
}
