package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ondrel/curio/internal/apperr"
	"github.com/ondrel/curio/internal/bus"
	"github.com/ondrel/curio/internal/catalog"
	"github.com/ondrel/curio/internal/collections"
	"github.com/ondrel/curio/internal/exporter"
	"github.com/ondrel/curio/internal/importer"
	"github.com/ondrel/curio/internal/listmgmt"
	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/recommend"
	"github.com/ondrel/curio/internal/store"
)

// Service coordinates the state managers, persistent store and catalog for
// the API layer.
type Service struct {
	Collections *collections.Manager
	Lists       *listmgmt.Manager
	Store       *store.Store
	Catalog     *catalog.DB
	Searcher    *catalog.Searcher
	Recommender *recommend.Service
	Fetcher     *catalog.Client
	Bus         *bus.Bus
	Logger      *slog.Logger
}

// Import parses raw file content and creates a collection per imported
// group. Backup-shaped JSON is rejected; it goes through ImportBackup.
func (s *Service) Import(content, filename string) ([]models.Collection, error) {
	format := importer.DetectFormat(content, filename)
	res := importer.Parse(content, format, filename)
	if !res.Success {
		return nil, fmt.Errorf("%s: %w", res.Error, apperr.ErrInvalid)
	}
	if res.Format == importer.FormatJSON {
		if _, msgs := importer.ValidateCollectionData(res.JSON); len(msgs) > 0 {
			return nil, fmt.Errorf("%s: %w", strings.Join(msgs, "; "), apperr.ErrInvalid)
		}
	}

	drafts, err := importer.ImportCollection(res, fallbackName(filename))
	if err != nil {
		return nil, fmt.Errorf("api: import: %w", err)
	}
	created := make([]models.Collection, 0, len(drafts))
	for _, d := range drafts {
		created = append(created, s.Collections.Create(d))
	}
	return created, nil
}

// fallbackName derives a collection name from the uploaded filename.
func fallbackName(filename string) string {
	if filename == "" {
		return "Imported"
	}
	stem := filename
	if i := strings.LastIndex(stem, "."); i > 0 {
		stem = stem[:i]
	}
	return stem
}

// ImportBackup restores a full backup into the store and reloads the state
// managers so in-memory state matches the restored data.
func (s *Service) ImportBackup(content []byte) error {
	if err := importer.ImportBackup(content, s.Store); err != nil {
		return err
	}
	s.Collections.Load(store.Read(s.Store, store.KeyCollections, []models.Collection{}))
	s.Lists.Load(
		store.Read(s.Store, store.KeyListConfig, models.ListConfig{}),
		store.Read(s.Store, store.KeyCustomLists, []models.CustomList{}),
	)
	if s.Bus != nil {
		s.Bus.Publish(bus.Event{Type: bus.EventStoreChanged, Data: map[string]string{"kind": "backup-restored"}})
	}
	return nil
}

// ExportCollection renders one collection in the requested format.
func (s *Service) ExportCollection(id string, format exporter.Format) (*exporter.Artifact, error) {
	c, ok := s.Collections.ByID(id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return exporter.ExportCollection(c, format)
}

// ExportCollections renders every collection in the requested format.
func (s *Service) ExportCollections(format exporter.Format) (*exporter.Artifact, error) {
	return exporter.ExportCollections(s.Collections.All(), format)
}

// ExportBackup renders the full persisted dataset as a JSON backup.
func (s *Service) ExportBackup() (*exporter.Artifact, error) {
	return exporter.ExportBackup(s.Store.ExportAll(), exporter.FormatJSON)
}

// SyncCatalog refreshes the local source index from the remote catalog,
// merging in the user's custom lists.
func (s *Service) SyncCatalog(ctx context.Context) (int, error) {
	fetched, err := s.Fetcher.FetchIndex(ctx)
	if err != nil {
		return 0, err
	}
	if err := catalog.Sync(s.Catalog, fetched, s.Lists.CustomLists(), s.Logger); err != nil {
		return 0, err
	}
	if s.Bus != nil {
		s.Bus.Publish(bus.Event{Type: bus.EventCatalogSynced, Data: map[string]int{"sources": len(fetched)}})
	}
	return len(fetched), nil
}

// Recommend returns suggestions using the persisted AI settings.
func (s *Service) Recommend(ctx context.Context, limit int) ([]recommend.Suggestion, error) {
	cfg := store.Read(s.Store, store.KeyAISettings, models.DefaultAISettings())
	return s.Recommender.Recommend(ctx, s.Collections.All(), cfg, limit)
}
