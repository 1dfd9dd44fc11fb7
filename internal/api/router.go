package api

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/links", h.Links)
	r.Get("/documents", h.ListDocuments)
	r.Get("/documents/{name}", h.GetDocument)
	r.Post("/scaffold", h.Scaffold)

	return r
}
