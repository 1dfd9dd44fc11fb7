// Package storage defines the scaffold directory abstraction.
package storage

import "github.com/starford/docscaffold/internal/models"

// Provider is the interface for scaffold directory operations. Names are
// plain file names relative to the scaffold directory.
type Provider interface {
	// EnsureRoot creates the scaffold directory if it does not exist.
	EnsureRoot() error
	// Exists reports whether a document named name is present.
	Exists(name string) (bool, error)
	// Create writes content to a new document; it never replaces an existing one.
	Create(name string, content []byte) error
	// Read returns the raw bytes of the document.
	Read(name string) ([]byte, error)
	// List returns metadata for every .md document in the scaffold directory.
	List() ([]models.DocumentMetadata, error)
}
