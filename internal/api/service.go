package api

import (
	"context"

	"github.com/starford/docscaffold/internal/models"
	"github.com/starford/docscaffold/internal/scaffold"
	"github.com/starford/docscaffold/internal/storage"
)

// Service coordinates the generator and the scaffold directory for the API layer.
type Service struct {
	gen   *scaffold.Generator
	store storage.Provider
}

// NewService creates a new API service.
func NewService(gen *scaffold.Generator, store storage.Provider) *Service {
	return &Service{gen: gen, store: store}
}

// Links returns the document names referenced by the index, in order.
func (s *Service) Links(_ context.Context) ([]string, error) {
	return s.gen.Links()
}

// Documents lists the scaffold directory.
func (s *Service) Documents(_ context.Context) ([]models.DocumentMetadata, error) {
	return s.store.List()
}

// Document returns the raw markdown of one scaffold document.
func (s *Service) Document(_ context.Context, name string) ([]byte, error) {
	return s.store.Read(name)
}

// Scaffold runs one pass.
func (s *Service) Scaffold(ctx context.Context) (*models.Report, error) {
	return s.gen.Run(ctx)
}
