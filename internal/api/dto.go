package api

import (
	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/recommend"
)

// CreateCollectionRequest is the request body for creating a collection.
type CreateCollectionRequest struct {
	Name        string `json:"name" example:"Frontend" validate:"required"`
	Description string `json:"description" example:"UI and styling lists"`
	Color       string `json:"color" example:"#3b82f6"`
}

// UpdateCollectionRequest carries a partial collection update. Absent
// fields are left untouched.
type UpdateCollectionRequest = models.CollectionPatch

// CollectionListResponse wraps the full collection set.
type CollectionListResponse struct {
	Collections []models.Collection `json:"collections" validate:"required"`
	Active      string              `json:"active,omitempty" example:"b3c1..."`
}

// ReorderRequest is the wholesale replacement order for collections.
type ReorderRequest struct {
	Collections []models.Collection `json:"collections" validate:"required"`
}

// ActiveRequest selects the active collection for this session.
type ActiveRequest struct {
	ID string `json:"id" example:"b3c1..."`
}

// AddListRequest is the request body for adding a list to a collection.
type AddListRequest struct {
	Repo string `json:"repo" example:"sindresorhus/awesome" validate:"required"`
	Name string `json:"name" example:"awesome"`
	Cate string `json:"cate" example:"General"`
}

// RepoRequest names a single list by its repo key.
type RepoRequest struct {
	Repo string `json:"repo" example:"sindresorhus/awesome" validate:"required"`
}

// DisableAllRequest carries the full repo set to disable.
type DisableAllRequest struct {
	Repos []string `json:"repos" validate:"required"`
}

// ListConfigResponse is the visibility and favorites state.
type ListConfigResponse struct {
	Config models.ListConfig `json:"config" validate:"required"`
}

// CustomListsResponse wraps user-added catalog entries.
type CustomListsResponse struct {
	Lists []models.CustomList `json:"lists" validate:"required"`
}

// ImportRequest carries raw file content for import. Filename is optional
// and only used as a format hint and fallback collection name.
type ImportRequest struct {
	Filename string `json:"filename" example:"lists.csv"`
	Content  string `json:"content" validate:"required"`
}

// ImportResponse reports the collections created by an import.
type ImportResponse struct {
	Imported    int                 `json:"imported" example:"2" validate:"required"`
	Collections []models.Collection `json:"collections" validate:"required"`
}

// SourceListResponse wraps a page of catalog sources.
type SourceListResponse struct {
	Sources []models.Source `json:"sources" validate:"required"`
	Total   int             `json:"total" example:"580" validate:"required"`
}

// SearchResponse wraps catalog search hits.
type SearchResponse struct {
	Results []models.Source `json:"results" validate:"required"`
}

// RecommendRequest asks for up to Limit suggestions.
type RecommendRequest struct {
	Limit int `json:"limit" example:"5"`
}

// RecommendResponse wraps recommendation results.
type RecommendResponse struct {
	Suggestions []recommend.Suggestion `json:"suggestions" validate:"required"`
}
