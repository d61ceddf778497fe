package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ondrel/curio/internal/checksum"
)

// ChangeCallback is called after an external edit to a record file is
// detected. kind is "updated" or "deleted".
type ChangeCallback func(kind string, key Key)

// Watch observes the data directory with fsnotify until ctx is cancelled
// and reports record files that changed underneath the running process
// (hand-edited files, restored backups, a second instance).
//
// Events are debounced and compared by checksum, so the store's own atomic
// writes do not echo back as external changes once the caller has observed
// the written content.
func (s *Store) Watch(ctx context.Context, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := s.backend.Root()
	if err := w.Add(root); err != nil {
		return err
	}

	known := make(map[Key]bool, len(AllKeys()))
	for _, k := range AllKeys() {
		known[k] = true
	}

	// Seed checksums from the current on-disk state.
	sums := make(map[Key]string)
	if metas, listErr := s.backend.List(""); listErr == nil {
		for _, m := range metas {
			if known[Key(m.Path)] {
				sums[Key(m.Path)] = m.Checksum
			}
		}
	}

	logger.Info("store: watcher started", slog.String("root", root))

	// Pending changed keys, flushed after a quiet period. Rapid rewrites of
	// the same record collapse into one callback.
	pending := make(map[Key]struct{})
	var flushTimer *time.Timer
	var flushCh <-chan time.Time

	scheduleFlush := func() {
		if flushTimer == nil {
			flushTimer = time.NewTimer(200 * time.Millisecond)
			flushCh = flushTimer.C
		} else {
			flushTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if flushTimer != nil {
				flushTimer.Stop()
			}
			logger.Info("store: watcher stopped")
			return nil

		case <-flushCh:
			for key := range pending {
				delete(pending, key)
				raw, ok := s.readRaw(key)
				if !ok {
					if _, had := sums[key]; had {
						delete(sums, key)
						logger.Debug("store: record removed externally", slog.String("key", string(key)))
						cb("deleted", key)
					}
					continue
				}
				cs := checksum.Sum(raw)
				if sums[key] == cs {
					continue
				}
				sums[key] = cs
				if cs == s.lastWritten(key) {
					// Our own persistence write echoing back.
					continue
				}
				logger.Debug("store: record changed externally", slog.String("key", string(key)))
				cb("updated", key)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			key := Key(filepath.Base(ev.Name))
			if !known[key] {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				pending[key] = struct{}{}
				scheduleFlush()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("store: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}
