package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/store"
)

// ImportBackup parses content as a full-backup envelope and restores it
// through the store's bulk import. Single-collection and multi-collection
// documents are rejected here: this is the only importer entry point
// allowed to mutate persisted state, and it accepts backups exclusively.
func ImportBackup(content []byte, st *store.Store) error {
	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return fmt.Errorf("importer: invalid JSON: %w", err)
	}

	shape, msgs := ValidateCollectionData(data)
	if shape != ShapeBackup {
		return fmt.Errorf("importer: not a backup file")
	}
	if len(msgs) > 0 {
		return fmt.Errorf("importer: invalid backup: %s", strings.Join(msgs, "; "))
	}

	var b models.Backup
	if err := json.Unmarshal(content, &b); err != nil {
		return fmt.Errorf("importer: decode backup: %w", err)
	}

	if !st.ImportAll(b) {
		return fmt.Errorf("importer: restore did not complete")
	}
	return nil
}
