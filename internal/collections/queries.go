package collections

import "github.com/ondrel/curio/internal/models"

// ByID returns the collection with the given id.
func (m *Manager) ByID(id string) (models.Collection, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.items {
		if c.ID == id {
			c.Lists = cloneLists(c.Lists)
			return c, true
		}
	}
	return models.Collection{}, false
}

// ListIsInCollection reports whether the collection contains repo.
func (m *Manager) ListIsInCollection(collectionID, repo string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.items {
		if c.ID == collectionID {
			return c.HasList(repo)
		}
	}
	return false
}

// ListIsInAnyCollection reports whether any collection contains repo.
func (m *Manager) ListIsInAnyCollection(repo string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.items {
		if c.HasList(repo) {
			return true
		}
	}
	return false
}

// CollectionsContaining returns every collection that contains repo, in
// sequence order.
func (m *Manager) CollectionsContaining(repo string) []models.Collection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Collection
	for _, c := range m.items {
		if c.HasList(repo) {
			c.Lists = cloneLists(c.Lists)
			out = append(out, c)
		}
	}
	return out
}
