package api

import (
	"net/http"

	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/store"
)

// GetPreferences handles GET /api/preferences.
//
//	@Summary		Get UI preferences
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	models.Preferences
//	@Security		BearerAuth
//	@Router			/preferences [get]
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs := store.Read(h.svc.Store, store.KeyPreferences, models.DefaultPreferences())
	writeJSON(w, http.StatusOK, prefs)
}

// PutPreferences handles PUT /api/preferences.
//
//	@Summary		Replace UI preferences
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.Preferences	true	"New preferences"
//	@Success		200		{object}	models.Preferences
//	@Security		BearerAuth
//	@Router			/preferences [put]
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.Preferences
	if !decodeBody(w, r, &prefs) {
		return
	}
	h.svc.Store.Write(store.KeyPreferences, prefs)
	writeJSON(w, http.StatusOK, prefs)
}

// GetAISettings handles GET /api/ai-settings. The API key is never
// returned; only its presence is reported.
//
//	@Summary		Get AI settings with the key scrubbed
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	models.AISettings
//	@Security		BearerAuth
//	@Router			/ai-settings [get]
func (h *Handler) GetAISettings(w http.ResponseWriter, r *http.Request) {
	cfg := store.Read(h.svc.Store, store.KeyAISettings, models.DefaultAISettings())
	hasKey := cfg.APIKey != ""
	writeJSON(w, http.StatusOK, map[string]any{
		"provider":  cfg.Provider,
		"model":     cfg.Model,
		"enabled":   cfg.Enabled,
		"maxTokens": cfg.MaxTokens,
		"hasKey":    hasKey,
	})
}

// PutAISettings handles PUT /api/ai-settings. An empty incoming key keeps
// the stored one so clients can update other fields without re-entering it.
//
//	@Summary		Replace AI settings
//	@Tags			settings
//	@Accept			json
//	@Success		204	"Settings updated"
//	@Security		BearerAuth
//	@Router			/ai-settings [put]
func (h *Handler) PutAISettings(w http.ResponseWriter, r *http.Request) {
	var cfg models.AISettings
	if !decodeBody(w, r, &cfg) {
		return
	}
	if cfg.APIKey == "" {
		current := store.Read(h.svc.Store, store.KeyAISettings, models.DefaultAISettings())
		cfg.APIKey = current.APIKey
	}
	h.svc.Store.Write(store.KeyAISettings, cfg)
	w.WriteHeader(http.StatusNoContent)
}
