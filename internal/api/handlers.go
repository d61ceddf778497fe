package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ondrel/curio/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// repoParam extracts an owner/name repo key from the URL wildcard.
// Supports encoded slashes from OpenAPI clients (e.g. owner%2Fname).
func repoParam(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// ListCollections handles GET /api/collections.
//
//	@Summary		List all collections with the active selection
//	@Tags			collections
//	@Produce		json
//	@Success		200	{object}	CollectionListResponse
//	@Security		BearerAuth
//	@Router			/collections [get]
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CollectionListResponse{
		Collections: h.svc.Collections.All(),
		Active:      h.svc.Collections.Active(),
	})
}

// GetCollection handles GET /api/collections/{id}.
//
//	@Summary		Get a single collection
//	@Tags			collections
//	@Produce		json
//	@Param			id	path		string	true	"Collection id"
//	@Success		200	{object}	models.Collection
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/collections/{id} [get]
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	c, ok := h.svc.Collections.ByID(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCollection handles POST /api/collections.
//
//	@Summary		Create a collection
//	@Tags			collections
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateCollectionRequest	true	"Collection to create"
//	@Success		201		{object}	models.Collection
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/collections [post]
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	draft := models.Collection{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if err := draft.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.Collections.Create(draft))
}

// UpdateCollection handles PATCH /api/collections/{id}.
//
//	@Summary		Update collection fields
//	@Tags			collections
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Collection id"
//	@Param			body	body		UpdateCollectionRequest	true	"Fields to change"
//	@Success		200		{object}	models.Collection
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/collections/{id} [patch]
func (h *Handler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch UpdateCollectionRequest
	if !decodeBody(w, r, &patch) {
		return
	}
	if _, ok := h.svc.Collections.ByID(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.svc.Collections.Update(id, patch)
	c, _ := h.svc.Collections.ByID(id)
	writeJSON(w, http.StatusOK, c)
}

// DeleteCollection handles DELETE /api/collections/{id}.
//
//	@Summary		Delete a collection
//	@Tags			collections
//	@Param			id	path	string	true	"Collection id"
//	@Success		204	"Collection deleted"
//	@Security		BearerAuth
//	@Router			/collections/{id} [delete]
func (h *Handler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	h.svc.Collections.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ReorderCollections handles PUT /api/collections/order.
//
//	@Summary		Replace the collection ordering wholesale
//	@Tags			collections
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ReorderRequest	true	"Collections in the new order"
//	@Success		200		{object}	CollectionListResponse
//	@Security		BearerAuth
//	@Router			/collections/order [put]
func (h *Handler) ReorderCollections(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.svc.Collections.Reorder(req.Collections)
	writeJSON(w, http.StatusOK, CollectionListResponse{
		Collections: h.svc.Collections.All(),
		Active:      h.svc.Collections.Active(),
	})
}

// GetActive handles GET /api/collections/active.
//
//	@Summary		Get the active collection id for this session
//	@Tags			collections
//	@Produce		json
//	@Success		200	{object}	ActiveRequest
//	@Security		BearerAuth
//	@Router			/collections/active [get]
func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ActiveRequest{ID: h.svc.Collections.Active()})
}

// SetActive handles PUT /api/collections/active.
//
//	@Summary		Select the active collection (session only, never persisted)
//	@Tags			collections
//	@Accept			json
//	@Success		204	"Selection updated"
//	@Security		BearerAuth
//	@Router			/collections/active [put]
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req ActiveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.svc.Collections.SetActive(req.ID)
	w.WriteHeader(http.StatusNoContent)
}

// AddListToCollection handles POST /api/collections/{id}/lists.
//
//	@Summary		Add a list to a collection (idempotent by repo)
//	@Tags			collections
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Collection id"
//	@Param			body	body		AddListRequest	true	"List to add"
//	@Success		200		{object}	models.Collection
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/collections/{id}/lists [post]
func (h *Handler) AddListToCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req AddListRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Repo == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("repo is required"))
		return
	}
	if _, ok := h.svc.Collections.ByID(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.svc.Collections.AddList(id, models.ListRef{Repo: req.Repo, Name: req.Name, Cate: req.Cate})
	c, _ := h.svc.Collections.ByID(id)
	writeJSON(w, http.StatusOK, c)
}

// RemoveListFromCollection handles DELETE /api/collections/{id}/lists/*.
//
//	@Summary		Remove a list from a collection by repo key
//	@Tags			collections
//	@Param			id		path	string	true	"Collection id"
//	@Param			repo	path	string	true	"Repo key (owner/name)"
//	@Success		204		"List removed"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/collections/{id}/lists/{repo} [delete]
func (h *Handler) RemoveListFromCollection(w http.ResponseWriter, r *http.Request) {
	repo := repoParam(r)
	if repo == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("repo is required"))
		return
	}
	h.svc.Collections.RemoveList(chi.URLParam(r, "id"), repo)
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/stats.
//
//	@Summary		Report store usage (item counts and approximate bytes)
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	store.Stats
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store.Stats())
}

// Health handles GET /api/health.
//
//	@Summary		Liveness probe
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.svc.Store.Version(),
	})
}
