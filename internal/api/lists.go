package api

import (
	"net/http"

	"github.com/ondrel/curio/internal/models"
)

// GetListConfig handles GET /api/list-config.
//
//	@Summary		Get list visibility and favorites state
//	@Tags			lists
//	@Produce		json
//	@Success		200	{object}	ListConfigResponse
//	@Security		BearerAuth
//	@Router			/list-config [get]
func (h *Handler) GetListConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ListConfigResponse{Config: h.svc.Lists.Config()})
}

// ToggleList handles POST /api/list-config/toggle.
//
//	@Summary		Toggle a list between enabled and disabled
//	@Tags			lists
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RepoRequest	true	"List to toggle"
//	@Success		200		{object}	ListConfigResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/list-config/toggle [post]
func (h *Handler) ToggleList(w http.ResponseWriter, r *http.Request) {
	var req RepoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Repo == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("repo is required"))
		return
	}
	h.svc.Lists.Toggle(req.Repo)
	writeJSON(w, http.StatusOK, ListConfigResponse{Config: h.svc.Lists.Config()})
}

// EnableAllLists handles POST /api/list-config/enable-all.
//
//	@Summary		Clear the disabled set
//	@Tags			lists
//	@Produce		json
//	@Success		200	{object}	ListConfigResponse
//	@Security		BearerAuth
//	@Router			/list-config/enable-all [post]
func (h *Handler) EnableAllLists(w http.ResponseWriter, r *http.Request) {
	h.svc.Lists.EnableAll()
	writeJSON(w, http.StatusOK, ListConfigResponse{Config: h.svc.Lists.Config()})
}

// DisableAllLists handles POST /api/list-config/disable-all.
//
//	@Summary		Disable every named list
//	@Tags			lists
//	@Accept			json
//	@Produce		json
//	@Param			body	body		DisableAllRequest	true	"Repos to disable"
//	@Success		200		{object}	ListConfigResponse
//	@Security		BearerAuth
//	@Router			/list-config/disable-all [post]
func (h *Handler) DisableAllLists(w http.ResponseWriter, r *http.Request) {
	var req DisableAllRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.svc.Lists.DisableAll(req.Repos)
	writeJSON(w, http.StatusOK, ListConfigResponse{Config: h.svc.Lists.Config()})
}

// ToggleFavorite handles POST /api/list-config/favorites/toggle.
//
//	@Summary		Toggle a list in the favorites set
//	@Tags			lists
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RepoRequest	true	"List to toggle"
//	@Success		200		{object}	ListConfigResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/list-config/favorites/toggle [post]
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req RepoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Repo == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("repo is required"))
		return
	}
	h.svc.Lists.ToggleFavorite(req.Repo)
	writeJSON(w, http.StatusOK, ListConfigResponse{Config: h.svc.Lists.Config()})
}

// ListCustom handles GET /api/custom-lists.
//
//	@Summary		List user-added catalog entries
//	@Tags			lists
//	@Produce		json
//	@Success		200	{object}	CustomListsResponse
//	@Security		BearerAuth
//	@Router			/custom-lists [get]
func (h *Handler) ListCustom(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CustomListsResponse{Lists: h.svc.Lists.CustomLists()})
}

// AddCustom handles POST /api/custom-lists.
//
//	@Summary		Add a custom list to the catalog (no-op on duplicate repo)
//	@Tags			lists
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.CustomList	true	"List to add"
//	@Success		200		{object}	CustomListsResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/custom-lists [post]
func (h *Handler) AddCustom(w http.ResponseWriter, r *http.Request) {
	var req models.CustomList
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Repo == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("repo is required"))
		return
	}
	h.svc.Lists.AddCustom(req)
	writeJSON(w, http.StatusOK, CustomListsResponse{Lists: h.svc.Lists.CustomLists()})
}

// RemoveCustom handles DELETE /api/custom-lists/*.
//
//	@Summary		Remove a custom list by repo key
//	@Tags			lists
//	@Param			repo	path	string	true	"Repo key (owner/name)"
//	@Success		204		"List removed"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/custom-lists/{repo} [delete]
func (h *Handler) RemoveCustom(w http.ResponseWriter, r *http.Request) {
	repo := repoParam(r)
	if repo == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("repo is required"))
		return
	}
	h.svc.Lists.RemoveCustom(repo)
	w.WriteHeader(http.StatusNoContent)
}
