package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Collections CRUD and membership.
	r.Get("/collections", h.ListCollections)
	r.Post("/collections", h.CreateCollection)
	r.Put("/collections/order", h.ReorderCollections)
	r.Get("/collections/active", h.GetActive)
	r.Put("/collections/active", h.SetActive)
	r.Get("/collections/{id}", h.GetCollection)
	r.Patch("/collections/{id}", h.UpdateCollection)
	r.Delete("/collections/{id}", h.DeleteCollection)
	r.Post("/collections/{id}/lists", h.AddListToCollection)
	r.Delete("/collections/{id}/lists/*", h.RemoveListFromCollection)

	// List visibility and favorites.
	r.Get("/list-config", h.GetListConfig)
	r.Post("/list-config/toggle", h.ToggleList)
	r.Post("/list-config/enable-all", h.EnableAllLists)
	r.Post("/list-config/disable-all", h.DisableAllLists)
	r.Post("/list-config/favorites/toggle", h.ToggleFavorite)

	// Custom lists.
	r.Get("/custom-lists", h.ListCustom)
	r.Post("/custom-lists", h.AddCustom)
	r.Delete("/custom-lists/*", h.RemoveCustom)

	// Catalog.
	r.Get("/sources", h.ListSources)
	r.Get("/topics", h.Topics)
	r.Get("/search", h.Search)
	r.Post("/catalog/sync", h.SyncCatalog)
	r.Post("/recommend", h.Recommend)

	// Import and export.
	r.Post("/import", h.Import)
	r.Post("/import/backup", h.ImportBackup)
	r.Get("/export/collections", h.ExportCollections)
	r.Get("/export/collections/{id}", h.ExportCollection)
	r.Get("/export/backup", h.ExportBackup)

	// Settings.
	r.Get("/preferences", h.GetPreferences)
	r.Put("/preferences", h.PutPreferences)
	r.Get("/ai-settings", h.GetAISettings)
	r.Put("/ai-settings", h.PutAISettings)

	// System.
	r.Get("/stats", h.Stats)
	r.Get("/health", h.Health)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
