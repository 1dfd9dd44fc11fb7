package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/docscaffold/internal/apperr"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Links handles GET /api/links.
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	links, err := h.svc.Links(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if links == nil {
		links = []string{}
	}
	writeJSON(w, http.StatusOK, LinksResponse{Links: links, Count: len(links)})
}

// ListDocuments handles GET /api/documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.Documents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentsResponse{Documents: docs})
}

// GetDocument handles GET /api/documents/{name} and returns raw markdown.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Document(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Scaffold handles POST /api/scaffold.
func (h *Handler) Scaffold(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Scaffold(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var accessErr *apperr.FileAccessError
	switch {
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrInvalidName):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.As(err, &accessErr) && errors.Is(err, fs.ErrNotExist):
		writeJSON(w, http.StatusNotFound, errorBody("index document not found"))
	default:
		slog.Error("api request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
