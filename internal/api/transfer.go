package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ondrel/curio/internal/apperr"
	"github.com/ondrel/curio/internal/exporter"
)

// Import handles POST /api/import.
//
//	@Summary		Import collections from JSON, CSV or Markdown content
//	@Tags			transfer
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ImportRequest	true	"File content and optional filename hint"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/import [post]
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	created, err := h.svc.Import(req.Content, req.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Imported: len(created), Collections: created})
}

// ImportBackup handles POST /api/import/backup.
//
//	@Summary		Restore a full backup from its JSON envelope
//	@Tags			transfer
//	@Accept			json
//	@Success		204	"Backup restored"
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/import/backup [post]
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 50<<20)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}
	if err := h.svc.ImportBackup(body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeArtifact streams an export artifact as a file download.
func writeArtifact(w http.ResponseWriter, a *exporter.Artifact) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Data); err != nil {
		slog.Error("artifact write failed", slog.String("error", err.Error()))
	}
}

func exportFormat(r *http.Request) exporter.Format {
	f := r.URL.Query().Get("format")
	if f == "" {
		return exporter.FormatJSON
	}
	return exporter.Format(f)
}

// ExportCollection handles GET /api/export/collections/{id}.
//
//	@Summary		Download one collection as json, markdown, html or csv
//	@Tags			transfer
//	@Param			id		path	string	true	"Collection id"
//	@Param			format	query	string	false	"Export format"	Enums(json, markdown, html, csv)
//	@Success		200		{file}	file
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/export/collections/{id} [get]
func (h *Handler) ExportCollection(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.ExportCollection(chi.URLParam(r, "id"), exportFormat(r))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrUnsupportedFormat):
			writeJSON(w, http.StatusBadRequest, errorBody("unsupported format"))
		default:
			slog.Error("export collection failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeArtifact(w, a)
}

// ExportCollections handles GET /api/export/collections.
//
//	@Summary		Download all collections as json or markdown
//	@Tags			transfer
//	@Param			format	query	string	false	"Export format"	Enums(json, markdown)
//	@Success		200		{file}	file
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/export/collections [get]
func (h *Handler) ExportCollections(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.ExportCollections(exportFormat(r))
	if err != nil {
		if errors.Is(err, apperr.ErrUnsupportedFormat) {
			writeJSON(w, http.StatusBadRequest, errorBody("unsupported format"))
		} else {
			slog.Error("export collections failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeArtifact(w, a)
}

// ExportBackup handles GET /api/export/backup.
//
//	@Summary		Download the full dataset as a JSON backup (API keys scrubbed)
//	@Tags			transfer
//	@Success		200	{file}	file
//	@Security		BearerAuth
//	@Router			/export/backup [get]
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.ExportBackup()
	if err != nil {
		slog.Error("export backup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeArtifact(w, a)
}
