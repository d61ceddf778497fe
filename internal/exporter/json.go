package exporter

import (
	"encoding/json"
	"fmt"

	"github.com/ondrel/curio/internal/models"
)

func collectionJSON(c models.Collection) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exporter: encode collection: %w", err)
	}
	return data, nil
}

func collectionsJSON(cs []models.Collection) ([]byte, error) {
	doc := map[string]any{"collections": cs}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exporter: encode collections: %w", err)
	}
	return data, nil
}

// backupJSON serializes the envelope. The AI API key is scrubbed on every
// export path; the configured key never leaves the store in cleartext.
func backupJSON(b models.Backup) ([]byte, error) {
	if b.AISettings != nil {
		scrubbed := b.AISettings.Scrubbed()
		b.AISettings = &scrubbed
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exporter: encode backup: %w", err)
	}
	return data, nil
}
