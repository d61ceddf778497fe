package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"syscall"

	"github.com/ondrel/curio/internal/checksum"
	"github.com/ondrel/curio/internal/storage"
)

// SchemaVersion is the version tag written by the current build. When the
// stored tag differs (or is absent) the migration hook runs before the tag
// is overwritten.
const SchemaVersion = "1.0"

// QuotaHook is invoked when a write fails because the underlying device is
// out of space. The store does not evict anything on its own.
type QuotaHook func(key Key, size int)

// MigrateFunc upgrades persisted records from oldVersion to the current
// schema. It runs at most once per construction, before the version tag is
// rewritten.
type MigrateFunc func(oldVersion string) error

// Store is the namespaced key/value layer. Reads never fail the caller:
// absent records, unreadable files, and malformed JSON all fall back to the
// supplied default. Writes report success as a boolean.
type Store struct {
	backend storage.Provider
	logger  *slog.Logger
	quota   QuotaHook
	migrate MigrateFunc

	// selfSums holds checksums of this process's own writes so the watcher
	// can tell them apart from external edits.
	selfMu   sync.Mutex
	selfSums map[Key]string
}

// Option configures a Store.
type Option func(*Store)

// WithQuotaHook overrides the default out-of-space handler (a warn log).
func WithQuotaHook(h QuotaHook) Option {
	return func(s *Store) { s.quota = h }
}

// WithMigration installs the schema migration hook.
func WithMigration(fn MigrateFunc) Option {
	return func(s *Store) { s.migrate = fn }
}

// New creates a Store over backend and reconciles the schema version tag.
func New(backend storage.Provider, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{backend: backend, logger: logger, selfSums: make(map[Key]string)}
	for _, opt := range opts {
		opt(s)
	}
	if s.quota == nil {
		s.quota = func(key Key, size int) {
			logger.Warn("store: capacity exceeded",
				slog.String("key", string(key)),
				slog.Int("size", size))
		}
	}
	s.checkSchemaVersion()
	return s
}

// checkSchemaVersion compares the stored tag with SchemaVersion and runs the
// migration hook on mismatch. The tag is only rewritten after the migration
// completes, so it always reflects the last successful migration.
func (s *Store) checkSchemaVersion() {
	stored, ok := s.readRaw(KeySchemaVersion)
	if ok && string(stored) == SchemaVersion {
		return
	}
	old := string(stored)
	if s.migrate != nil {
		if err := s.migrate(old); err != nil {
			s.logger.Error("store: migration failed",
				slog.String("from", old),
				slog.String("to", SchemaVersion),
				slog.String("error", err.Error()))
			return
		}
	}
	if !s.writeRaw(KeySchemaVersion, []byte(SchemaVersion)) {
		s.logger.Warn("store: could not persist schema version")
		return
	}
	s.logger.Info("store: schema version updated",
		slog.String("from", old),
		slog.String("to", SchemaVersion))
}

// Version returns the stored schema version tag, or the current one when no
// tag has been written yet.
func (s *Store) Version() string {
	if raw, ok := s.readRaw(KeySchemaVersion); ok && len(raw) > 0 {
		return string(raw)
	}
	return SchemaVersion
}

// Read unmarshals the record at key into a value of type T. Any failure
// (missing file, unreadable backend, malformed JSON) is logged and the
// default is returned instead.
func Read[T any](s *Store, key Key, def T) T {
	raw, ok := s.readRaw(key)
	if !ok {
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Warn("store: malformed record, using default",
			slog.String("key", string(key)),
			slog.String("error", err.Error()))
		return def
	}
	return out
}

// Write serializes v and stores it at key, reporting success.
func (s *Store) Write(key Key, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("store: marshal failed",
			slog.String("key", string(key)),
			slog.String("error", err.Error()))
		return false
	}
	return s.writeRaw(key, data)
}

// Remove deletes the record at key. Best effort: a missing record counts as
// success.
func (s *Store) Remove(key Key) bool {
	if err := s.backend.Delete(string(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true
		}
		s.logger.Warn("store: remove failed",
			slog.String("key", string(key)),
			slog.String("error", err.Error()))
		return false
	}
	return true
}

// Clear removes every given key (all namespaced keys when none are named).
func (s *Store) Clear(keys ...Key) bool {
	if len(keys) == 0 {
		keys = AllKeys()
	}
	ok := true
	for _, k := range keys {
		if !s.Remove(k) {
			ok = false
		}
	}
	return ok
}

func (s *Store) readRaw(key Key) ([]byte, bool) {
	data, err := s.backend.Read(string(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("store: read failed",
				slog.String("key", string(key)),
				slog.String("error", err.Error()))
		}
		return nil, false
	}
	return data, true
}

func (s *Store) writeRaw(key Key, data []byte) bool {
	if err := s.backend.Write(string(key), data); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			s.quota(key, len(data))
			return false
		}
		s.logger.Error("store: write failed",
			slog.String("key", string(key)),
			slog.String("error", err.Error()))
		return false
	}
	s.selfMu.Lock()
	s.selfSums[key] = checksum.Sum(data)
	s.selfMu.Unlock()
	return true
}

// lastWritten returns the checksum of this process's most recent write to key.
func (s *Store) lastWritten(key Key) string {
	s.selfMu.Lock()
	defer s.selfMu.Unlock()
	return s.selfSums[key]
}
