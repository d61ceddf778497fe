// Package store provides the typed, namespaced persistence layer over a
// storage backend. Every logical record occupies its own key, failures are
// absorbed at this boundary, and a schema version tag gates migrations.
package store

// Key is the file name of one namespaced record inside the data directory.
type Key string

// Namespaced record keys. Each record is an independent file, so key
// collisions are impossible by construction.
const (
	KeySchemaVersion Key = "schema-version"
	KeyCollections   Key = "collections.json"
	KeyPreferences   Key = "preferences.json"
	KeyListConfig    Key = "list-config.json"
	KeyCustomLists   Key = "custom-lists.json"
	KeyAISettings    Key = "ai-settings.json"
)

// AllKeys lists every namespaced key, version tag included.
func AllKeys() []Key {
	return []Key{
		KeySchemaVersion,
		KeyCollections,
		KeyPreferences,
		KeyListConfig,
		KeyCustomLists,
		KeyAISettings,
	}
}
