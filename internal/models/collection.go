// Package models defines the domain types for curio.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field length limits for user-supplied collection metadata.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// DefaultPalette is the fixed set of swatch values offered for new
// collections. Color is not restricted to this set; any string is legal.
var DefaultPalette = []string{
	"#3b82f6", "#8b5cf6", "#ec4899", "#ef4444",
	"#f59e0b", "#10b981", "#06b6d4", "#6b7280",
}

// ListRef is a single catalog entry as stored inside a collection.
// Repo (owner/name) is the natural key; a ListRef has no identity outside
// its parent collection.
type ListRef struct {
	Repo    string    `json:"repo"`
	Name    string    `json:"name"`
	Cate    string    `json:"cate,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}

// Collection is a named, user-owned grouping of list references.
// Lists holds at most one entry per repo key.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Lists       []ListRef `json:"lists"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsDefault   bool      `json:"isDefault"`
}

// Validate checks the user-editable fields of a collection.
// Create commands treat the result as advisory; callers that want to
// surface problems run it beforehand.
func (c Collection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&c.Description, validation.RuneLength(0, MaxDescriptionLength)),
	)
}

// HasList reports whether the collection already contains repo.
func (c Collection) HasList(repo string) bool {
	for _, l := range c.Lists {
		if l.Repo == repo {
			return true
		}
	}
	return false
}

// CollectionPatch carries the updatable fields of a collection.
// Nil fields are left untouched by update commands.
type CollectionPatch struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Color       *string    `json:"color,omitempty"`
	Lists       *[]ListRef `json:"lists,omitempty"`
}
