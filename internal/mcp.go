package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ondrel/curio/internal/mcpserver"
	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/store"
)

// RunMCP starts the MCP server on stdin/stdout. Stdout carries the MCP
// protocol, so logging is discarded in this mode.
func RunMCP(ctx context.Context, cfg *Config) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	d, err := setup(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer d.db.Close()

	// Tool calls that mutate collections persist synchronously; there is
	// no long-lived saver here.
	d.cols.Subscribe(func(snapshot []models.Collection) {
		d.store.Write(store.KeyCollections, snapshot)
	})

	srv := mcpserver.New(d.cols, d.db)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
