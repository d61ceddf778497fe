// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/ondrel/curio/internal/api"
	"github.com/ondrel/curio/internal/bus"
	"github.com/ondrel/curio/internal/catalog"
	"github.com/ondrel/curio/internal/collections"
	"github.com/ondrel/curio/internal/listmgmt"
	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/recommend"
	"github.com/ondrel/curio/internal/storage"
	"github.com/ondrel/curio/internal/store"
)

// deps holds the wired application components shared by the serve, mcp and
// one-shot entry points.
type deps struct {
	store *store.Store
	cols  *collections.Manager
	lists *listmgmt.Manager
	db    *catalog.DB
}

// setup builds storage, the persistent store, the state managers and the
// catalog index from config. publish receives list-management actions; nil
// disables publishing.
func setup(cfg *Config, logger *slog.Logger, publish listmgmt.Publisher) (*deps, error) {
	if err := os.MkdirAll(cfg.Data.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	provider, err := storage.NewFS(cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	st := store.New(provider, logger, store.WithQuotaHook(func(key store.Key, size int) {
		logger.Warn("store write hit disk quota",
			slog.String("key", string(key)),
			slog.Int("size", size))
	}))

	cols := collections.NewManager()
	cols.Load(store.Read(st, store.KeyCollections, []models.Collection{}))

	lists := listmgmt.NewManager(publish)
	lists.Load(
		store.Read(st, store.KeyListConfig, models.ListConfig{}),
		store.Read(st, store.KeyCustomLists, []models.CustomList{}),
	)

	db, err := catalog.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init catalog index: %w", err)
	}

	return &deps{store: st, cols: cols, lists: lists, db: db}, nil
}

// newLogger initializes the structured JSON logger and installs it as the
// process default.
func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	logger := app.logger
	if logger == nil {
		logger = newLogger(cfg)
	}

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_path", cfg.Data.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Event bus.
	evbus := bus.New()
	defer evbus.Close()

	d, err := setup(cfg, logger, func(action string, payload any) {
		evbus.Publish(bus.Event{Type: listEventType(action), Data: map[string]any{
			"action":  action,
			"payload": payload,
		}})
	})
	if err != nil {
		return err
	}
	defer d.db.Close()

	// Persistence runs as an observer of the managers: commands return as
	// soon as in-memory state changed, durable writes trail behind.
	colsSaver := store.NewSaver[[]models.Collection](d.store, store.KeyCollections)
	defer colsSaver.Close()
	cfgSaver := store.NewSaver[models.ListConfig](d.store, store.KeyListConfig)
	defer cfgSaver.Close()
	customSaver := store.NewSaver[[]models.CustomList](d.store, store.KeyCustomLists)
	defer customSaver.Close()

	d.cols.Subscribe(func(snapshot []models.Collection) {
		colsSaver.Save(snapshot)
		evbus.Publish(bus.Event{Type: bus.EventCollectionsChanged, Data: map[string]int{"count": len(snapshot)}})
	})
	d.lists.SubscribeConfig(func(cfg models.ListConfig) { cfgSaver.Save(cfg) })
	d.lists.SubscribeCustom(func(lists []models.CustomList) { customSaver.Save(lists) })

	// Catalog search and recommendations.
	searcher := catalog.NewSearcher(d.db, cfg.Catalog.SearchDebounce)
	defer searcher.Cancel()

	svc := &api.Service{
		Collections: d.cols,
		Lists:       d.lists,
		Store:       d.store,
		Catalog:     d.db,
		Searcher:    searcher,
		Recommender: recommend.NewService(d.db, logger),
		Fetcher:     catalog.NewClient(cfg.Catalog.IndexURL),
		Bus:         evbus,
		Logger:      logger,
	}

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, evbus))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Initial catalog sync.
	if cfg.Catalog.SyncOnStart {
		g.Go(func() error {
			syncCtx, cancel := context.WithTimeout(gCtx, 60*time.Second)
			defer cancel()
			if _, err := svc.SyncCatalog(syncCtx); err != nil {
				logger.Warn("initial catalog sync failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Watch the data directory for out-of-band changes.
	g.Go(func() error {
		err := d.store.Watch(gCtx, logger, func(kind string, key store.Key) {
			evbus.Publish(bus.Event{Type: bus.EventStoreChanged, Data: map[string]string{
				"kind": kind,
				"key":  string(key),
			}})
		})
		if err != nil {
			logger.Warn("store watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// listEventType maps a list-management action to its bus event type.
func listEventType(action string) string {
	switch action {
	case "addCustom", "removeCustom":
		return bus.EventCustomListsUpdated
	default:
		return bus.EventListConfigUpdated
	}
}
