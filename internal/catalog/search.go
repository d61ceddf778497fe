package catalog

import (
	"sync"
	"time"

	"github.com/ondrel/curio/internal/models"
)

// Searcher wraps the index with debounced, race-free search-as-you-type.
// Each call supersedes the previous one: a generation counter guarantees
// that a slow earlier query can never deliver its results after a newer
// query already has.
type Searcher struct {
	db       *DB
	debounce time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewSearcher creates a Searcher with the given quiet period.
func NewSearcher(db *DB, debounce time.Duration) *Searcher {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Searcher{db: db, debounce: debounce}
}

// Search runs an immediate query against the index.
func (s *Searcher) Search(query string, limit int) ([]models.Source, error) {
	return s.db.Search(query, limit)
}

// SearchDebounced schedules query to run after the quiet period and calls
// deliver with the results. A newer call cancels the pending one; results
// of a superseded query are dropped even if it was already executing.
func (s *Searcher) SearchDebounced(query string, limit int, deliver func(query string, results []models.Source, err error)) {
	s.mu.Lock()
	s.gen++
	myGen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		results, err := s.db.Search(query, limit)

		s.mu.Lock()
		stale := myGen != s.gen
		s.mu.Unlock()
		if stale {
			return
		}
		deliver(query, results, err)
	})
	s.mu.Unlock()
}

// Cancel discards any pending debounced query.
func (s *Searcher) Cancel() {
	s.mu.Lock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
}
