package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ondrel/curio/internal/recommend"
)

// ListSources handles GET /api/sources.
//
//	@Summary		List catalog sources with optional pagination and topic filter
//	@Tags			catalog
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Param			topic	query		string	false	"Filter by topic"
//	@Success		200		{object}	SourceListResponse
//	@Security		BearerAuth
//	@Router			/sources [get]
func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	topic := q.Get("topic")

	sources, total, err := h.svc.Catalog.ListSources(limit, offset, topic)
	if err != nil {
		slog.Error("list sources failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SourceListResponse{Sources: sources, Total: total})
}

// Topics handles GET /api/topics.
//
//	@Summary		List distinct catalog topics
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	map[string][]string
//	@Security		BearerAuth
//	@Router			/topics [get]
func (h *Handler) Topics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.svc.Catalog.Topics()
	if err != nil {
		slog.Error("list topics failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"topics": topics})
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across catalog sources
//	@Tags			catalog
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Searcher.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// SyncCatalog handles POST /api/catalog/sync.
//
//	@Summary		Refresh the local source index from the remote catalog
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	map[string]int
//	@Security		BearerAuth
//	@Router			/catalog/sync [post]
func (h *Handler) SyncCatalog(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.SyncCatalog(r.Context())
	if err != nil {
		slog.Error("catalog sync failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("catalog sync failed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"sources": n})
}

// Recommend handles POST /api/recommend.
//
//	@Summary		Suggest new lists based on current collections
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RecommendRequest	false	"Suggestion limit"
//	@Success		200		{object}	RecommendResponse
//	@Security		BearerAuth
//	@Router			/recommend [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	suggestions, err := h.svc.Recommend(r.Context(), req.Limit)
	if err != nil {
		slog.Error("recommend failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if suggestions == nil {
		suggestions = []recommend.Suggestion{}
	}
	writeJSON(w, http.StatusOK, RecommendResponse{Suggestions: suggestions})
}
