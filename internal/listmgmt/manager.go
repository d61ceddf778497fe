// Package listmgmt holds the in-memory state for source enable/disable
// flags, favorites, and user-added custom sources. Same container shape as
// the collections manager but an independent lifecycle and schema: the
// config and the custom list persist as two separate records.
package listmgmt

import (
	"sync"

	"github.com/ondrel/curio/internal/models"
)

// ConfigSubscriber receives the list config after each config mutation.
type ConfigSubscriber func(cfg models.ListConfig)

// CustomSubscriber receives the custom-list sequence after each mutation.
type CustomSubscriber func(lists []models.CustomList)

// Publisher receives a lightweight notification (action name + payload)
// after each successful mutation, for consumers that are not wired through
// the manager's own subscriptions.
type Publisher func(action string, payload any)

// Manager owns the disabled set, the favorites set, and the custom-source
// sequence. Each repo appears at most once per set.
type Manager struct {
	mu       sync.RWMutex
	disabled []string
	favs     []string
	custom   []models.CustomList
	loading  bool

	cfgSubs    []ConfigSubscriber
	customSubs []CustomSubscriber
	publish    Publisher
}

// NewManager returns a manager in its initial state, loading until Load runs.
// publish may be nil.
func NewManager(publish Publisher) *Manager {
	if publish == nil {
		publish = func(string, any) {}
	}
	return &Manager{loading: true, publish: publish}
}

// Load replaces state with the persisted records and clears the loading
// flag. Until it runs, mutations are applied in memory but never persisted,
// so startup state cannot overwrite stored data.
func (m *Manager) Load(cfg models.ListConfig, custom []models.CustomList) {
	m.mu.Lock()
	m.disabled = append([]string(nil), cfg.DisabledLists...)
	m.favs = append([]string(nil), cfg.FavoritesList...)
	m.custom = append([]models.CustomList(nil), custom...)
	m.loading = false
	m.mu.Unlock()
}

// Loading reports whether the initial load is still pending.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// SubscribeConfig registers fn to run after every disabled/favorites change.
func (m *Manager) SubscribeConfig(fn ConfigSubscriber) {
	m.mu.Lock()
	m.cfgSubs = append(m.cfgSubs, fn)
	m.mu.Unlock()
}

// SubscribeCustom registers fn to run after every custom-list change.
func (m *Manager) SubscribeCustom(fn CustomSubscriber) {
	m.mu.Lock()
	m.customSubs = append(m.customSubs, fn)
	m.mu.Unlock()
}

// Config returns a copy of the current list config.
func (m *Manager) Config() models.ListConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configLocked()
}

func (m *Manager) configLocked() models.ListConfig {
	return models.ListConfig{
		DisabledLists: append([]string{}, m.disabled...),
		FavoritesList: append([]string{}, m.favs...),
	}
}

// CustomLists returns a copy of the custom-source sequence in order.
func (m *Manager) CustomLists() []models.CustomList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.CustomList{}, m.custom...)
}

// IsDisabled reports whether repo is turned off.
func (m *Manager) IsDisabled(repo string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return contains(m.disabled, repo)
}

// IsFavorite reports whether repo is starred.
func (m *Manager) IsFavorite(repo string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return contains(m.favs, repo)
}

// Toggle flips repo's membership in the disabled set. Applying it twice
// returns the set to its prior state.
func (m *Manager) Toggle(repo string) {
	m.mu.Lock()
	m.disabled = xor(m.disabled, repo)
	m.mu.Unlock()
	m.notifyConfig("toggle", repo)
}

// EnableAll clears the disabled set entirely.
func (m *Manager) EnableAll() {
	m.mu.Lock()
	m.disabled = nil
	m.mu.Unlock()
	m.notifyConfig("enableAll", nil)
}

// DisableAll replaces the disabled set with the full caller-supplied repo
// set, typically every known source.
func (m *Manager) DisableAll(allRepos []string) {
	m.mu.Lock()
	m.disabled = dedupe(allRepos)
	m.mu.Unlock()
	m.notifyConfig("disableAll", allRepos)
}

// ToggleFavorite flips repo's membership in the favorites set.
func (m *Manager) ToggleFavorite(repo string) {
	m.mu.Lock()
	m.favs = xor(m.favs, repo)
	m.mu.Unlock()
	m.notifyConfig("toggleFavorite", repo)
}

// AddCustom appends a user-added source. No-op when the repo is already
// present.
func (m *Manager) AddCustom(entry models.CustomList) {
	m.mu.Lock()
	for _, c := range m.custom {
		if c.Repo == entry.Repo {
			m.mu.Unlock()
			return
		}
	}
	m.custom = append(m.custom, entry)
	m.mu.Unlock()
	m.notifyCustom("addCustom", entry)
}

// RemoveCustom removes the custom source with the given repo, if present.
func (m *Manager) RemoveCustom(repo string) {
	m.mu.Lock()
	changed := false
	for i, c := range m.custom {
		if c.Repo == repo {
			m.custom = append(m.custom[:i], m.custom[i+1:]...)
			changed = true
			break
		}
	}
	m.mu.Unlock()
	if changed {
		m.notifyCustom("removeCustom", repo)
	}
}

func (m *Manager) notifyConfig(action string, payload any) {
	m.mu.RLock()
	if m.loading {
		m.mu.RUnlock()
		return
	}
	cfg := m.configLocked()
	subs := make([]ConfigSubscriber, len(m.cfgSubs))
	copy(subs, m.cfgSubs)
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(cfg)
	}
	m.publish(action, payload)
}

func (m *Manager) notifyCustom(action string, payload any) {
	m.mu.RLock()
	if m.loading {
		m.mu.RUnlock()
		return
	}
	custom := append([]models.CustomList{}, m.custom...)
	subs := make([]CustomSubscriber, len(m.customSubs))
	copy(subs, m.customSubs)
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(custom)
	}
	m.publish(action, payload)
}

// xor removes repo when present, appends it otherwise.
func xor(set []string, repo string) []string {
	for i, r := range set {
		if r == repo {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, repo)
}

func contains(set []string, repo string) bool {
	for _, r := range set {
		if r == repo {
			return true
		}
	}
	return false
}

func dedupe(repos []string) []string {
	seen := make(map[string]struct{}, len(repos))
	var out []string
	for _, r := range repos {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
