package models

import "time"

// Backup is the full-dataset envelope covering every namespaced persisted
// record. On restore, nil fields are skipped so a partial backup is legal.
type Backup struct {
	Version     string       `json:"version"`
	ExportedAt  time.Time    `json:"exportedAt"`
	Collections []Collection `json:"collections,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
	ListConfig  *ListConfig  `json:"listConfig,omitempty"`
	CustomLists []CustomList `json:"customLists,omitempty"`
	AISettings  *AISettings  `json:"aiSettings,omitempty"`
}

// Source is an entry in the remote catalog index, independent of whether it
// belongs to any collection.
type Source struct {
	Repo        string `json:"repo"`
	Name        string `json:"name"`
	User        string `json:"user"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description,omitempty"`
	Custom      bool   `json:"custom,omitempty"`
}
