package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ondrel/curio/internal/api"
	"github.com/ondrel/curio/internal/exporter"
	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/store"
)

// RunExport renders collections (or a full backup) to a file and exits.
// An empty out path writes the artifact under its derived filename.
func RunExport(ctx context.Context, cfg *Config, id, format, out string, backup bool) error {
	logger := newLogger(cfg)

	d, err := setup(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer d.db.Close()

	svc := &api.Service{Collections: d.cols, Lists: d.lists, Store: d.store, Logger: logger}

	var artifact *exporter.Artifact
	switch {
	case backup:
		artifact, err = svc.ExportBackup()
	case id != "":
		artifact, err = svc.ExportCollection(id, exporter.Format(format))
	default:
		artifact, err = svc.ExportCollections(exporter.Format(format))
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if out == "" {
		out = artifact.Filename
	}
	if err := os.WriteFile(out, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", out, err)
	}
	logger.Info("Export written", slog.String("path", out), slog.Int("bytes", len(artifact.Data)))
	return nil
}

// RunImport imports a JSON, CSV or Markdown file (or restores a backup)
// and exits.
func RunImport(ctx context.Context, cfg *Config, path string, backup bool) error {
	logger := newLogger(cfg)

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("import: read %s: %w", path, err)
	}

	d, err := setup(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer d.db.Close()

	// One-shot mode persists synchronously on every manager change.
	d.cols.Subscribe(func(snapshot []models.Collection) {
		d.store.Write(store.KeyCollections, snapshot)
	})

	svc := &api.Service{Collections: d.cols, Lists: d.lists, Store: d.store, Logger: logger}

	if backup {
		if err := svc.ImportBackup(content); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		logger.Info("Backup restored", slog.String("path", path))
		return nil
	}

	created, err := svc.Import(string(content), path)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	logger.Info("Import finished", slog.String("path", path), slog.Int("collections", len(created)))
	return nil
}
