// Package collections holds the authoritative in-memory state for the
// user's collections. All mutation goes through the command surface; state
// changes are fanned out to subscribers (persistence, event bus) after the
// transition completes, keeping the transitions themselves pure.
package collections

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ondrel/curio/internal/models"
)

// Subscriber receives a snapshot of all collections after each mutation.
type Subscriber func(snapshot []models.Collection)

// Manager owns the ordered collection sequence plus the session-only active
// selector. Commands never return errors; malformed input is a no-op. A
// separate error slot is available for callers that want to surface one.
type Manager struct {
	mu       sync.RWMutex
	items    []models.Collection
	activeID string
	loading  bool
	lastErr  string
	subs     []Subscriber

	now   func() time.Time
	newID func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides collection id generation (tests).
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// NewManager returns a manager in its initial state: no collections, no
// active selector, loading until Load runs.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		loading: true,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load replaces state with the persisted snapshot and clears the loading
// flag. Subscribers are not notified: nothing changed from their point of
// view, and notifying here would write the snapshot straight back.
func (m *Manager) Load(items []models.Collection) {
	m.mu.Lock()
	m.items = cloneAll(items)
	m.loading = false
	m.mu.Unlock()
}

// Loading reports whether the initial load is still pending.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Subscribe registers fn to run after every mutation. Subscribers see a
// private copy of the state and run outside the manager's lock.
func (m *Manager) Subscribe(fn Subscriber) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

// All returns a copy of the collection sequence in order.
func (m *Manager) All() []models.Collection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneAll(m.items)
}

// Create appends a new collection built from draft. The id is kept when the
// draft carries one (import path) and generated otherwise; timestamps are
// always fresh. Validation is advisory: callers check draft.Validate()
// beforehand if they want to reject bad input, the command itself does not.
func (m *Manager) Create(draft models.Collection) models.Collection {
	m.mu.Lock()
	now := m.now()
	c := models.Collection{
		ID:          draft.ID,
		Name:        draft.Name,
		Description: draft.Description,
		Lists:       cloneLists(draft.Lists),
		Color:       draft.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.ID == "" {
		c.ID = m.newID()
	}
	if c.Lists == nil {
		c.Lists = []models.ListRef{}
	}
	m.items = append(m.items, c)
	m.mu.Unlock()
	m.notify()
	return c
}

// Update merges patch into the matching collection and refreshes UpdatedAt.
// Unknown ids are a no-op.
func (m *Manager) Update(id string, patch models.CollectionPatch) {
	m.mu.Lock()
	changed := false
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if patch.Name != nil {
			m.items[i].Name = *patch.Name
		}
		if patch.Description != nil {
			m.items[i].Description = *patch.Description
		}
		if patch.Color != nil {
			m.items[i].Color = *patch.Color
		}
		if patch.Lists != nil {
			m.items[i].Lists = cloneLists(*patch.Lists)
		}
		m.items[i].UpdatedAt = m.now()
		changed = true
		break
	}
	m.mu.Unlock()
	if changed {
		m.notify()
	}
}

// Delete removes the matching collection. If it was the active collection
// the active selector is cleared.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	changed := false
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			if m.activeID == id {
				m.activeID = ""
			}
			changed = true
			break
		}
	}
	m.mu.Unlock()
	if changed {
		m.notify()
	}
}

// AddList appends a list reference to a collection. Idempotent: a second
// add with the same repo leaves the collection untouched.
func (m *Manager) AddList(collectionID string, ref models.ListRef) {
	m.mu.Lock()
	changed := false
	for i := range m.items {
		if m.items[i].ID != collectionID {
			continue
		}
		if m.items[i].HasList(ref.Repo) {
			break
		}
		if ref.AddedAt.IsZero() {
			ref.AddedAt = m.now()
		}
		m.items[i].Lists = append(m.items[i].Lists, ref)
		m.items[i].UpdatedAt = m.now()
		changed = true
		break
	}
	m.mu.Unlock()
	if changed {
		m.notify()
	}
}

// RemoveList removes the list reference with the given repo. UpdatedAt is
// refreshed whether or not a match was found; removal of an absent repo
// still counts as a mutation of the collection.
func (m *Manager) RemoveList(collectionID, repo string) {
	m.mu.Lock()
	changed := false
	for i := range m.items {
		if m.items[i].ID != collectionID {
			continue
		}
		kept := m.items[i].Lists[:0]
		for _, l := range m.items[i].Lists {
			if l.Repo != repo {
				kept = append(kept, l)
			}
		}
		m.items[i].Lists = kept
		m.items[i].UpdatedAt = m.now()
		changed = true
		break
	}
	m.mu.Unlock()
	if changed {
		m.notify()
	}
}

// Reorder replaces the whole sequence with the caller-supplied ordering
// (drag-and-drop). The caller is responsible for passing the same set of
// collections; the command does not verify it.
func (m *Manager) Reorder(ordered []models.Collection) {
	m.mu.Lock()
	m.items = cloneAll(ordered)
	m.mu.Unlock()
	m.notify()
}

// SetActive changes the session-only active selector. Pass "" to clear.
// The selection is deliberately never persisted.
func (m *Manager) SetActive(id string) {
	m.mu.Lock()
	m.activeID = id
	m.mu.Unlock()
}

// Active returns the active collection id, or "" when none is selected.
func (m *Manager) Active() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeID
}

// SetError records a caller-facing error message.
func (m *Manager) SetError(msg string) {
	m.mu.Lock()
	m.lastErr = msg
	m.mu.Unlock()
}

// ClearError clears the error slot.
func (m *Manager) ClearError() { m.SetError("") }

// LastError returns the recorded error message, "" when none.
func (m *Manager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// notify delivers a snapshot to every subscriber. Skipped while the initial
// load is pending so startup state never overwrites stored data.
func (m *Manager) notify() {
	m.mu.RLock()
	if m.loading {
		m.mu.RUnlock()
		return
	}
	snapshot := cloneAll(m.items)
	subs := make([]Subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func cloneAll(items []models.Collection) []models.Collection {
	out := make([]models.Collection, len(items))
	for i, c := range items {
		c.Lists = cloneLists(c.Lists)
		out[i] = c
	}
	return out
}

func cloneLists(lists []models.ListRef) []models.ListRef {
	if lists == nil {
		return nil
	}
	out := make([]models.ListRef, len(lists))
	copy(out, lists)
	return out
}
