// Package scaffold runs the scan-and-create pass: it reads the index document,
// makes sure the scaffold directory exists, and writes a placeholder for every
// referenced document that is missing.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/starford/docscaffold/internal/apperr"
	"github.com/starford/docscaffold/internal/models"
	"github.com/starford/docscaffold/internal/placeholder"
	"github.com/starford/docscaffold/internal/scanner"
	"github.com/starford/docscaffold/internal/storage"
)

// Generator ties an index document to a scaffold directory.
type Generator struct {
	indexPath string
	scanner   *scanner.Scanner
	store     storage.Provider
	todo      string
	logger    *slog.Logger

	mu sync.Mutex // one pass at a time
}

// NewGenerator creates a Generator. todo is the pending-content line written
// into new documents.
func NewGenerator(indexPath string, sc *scanner.Scanner, store storage.Provider, todo string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		indexPath: indexPath,
		scanner:   sc,
		store:     store,
		todo:      todo,
		logger:    logger,
	}
}

// IndexPath returns the index document path.
func (g *Generator) IndexPath() string {
	return g.indexPath
}

// Links scans the index document without touching the scaffold directory.
func (g *Generator) Links() ([]string, error) {
	return g.scanner.ScanFile(g.indexPath)
}

// Run performs one pass. The scan completes before anything is written; the
// first write failure aborts the pass.
func (g *Generator) Run(ctx context.Context) (*models.Report, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	names, err := g.scanner.ScanFile(g.indexPath)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("scaffold: index scanned",
		slog.String("index", g.indexPath),
		slog.Int("links", len(names)))

	if err := g.store.EnsureRoot(); err != nil {
		return nil, err
	}

	report := &models.Report{
		Processed: len(names),
		Created:   []string{},
		Skipped:   []string{},
	}
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		created, err := g.ensure(name)
		if err != nil {
			return report, err
		}
		if created {
			report.Created = append(report.Created, name)
			g.logger.Info("scaffold: created", slog.String("name", name))
			seen[name] = struct{}{}
			continue
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			report.Skipped = append(report.Skipped, name)
			g.logger.Debug("scaffold: exists", slog.String("name", name))
		}
	}
	return report, nil
}

// ensure creates name when absent. It returns false when the document
// already existed.
func (g *Generator) ensure(name string) (bool, error) {
	ok, err := g.store.Exists(name)
	if err != nil {
		return false, asWriteError(name, err)
	}
	if ok {
		return false, nil
	}
	if err := g.store.Create(name, placeholder.Render(name, g.todo)); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return false, nil
		}
		return false, asWriteError(name, err)
	}
	return true, nil
}

// asWriteError keeps a provider's *apperr.WriteError, which carries the
// resolved path, and wraps anything else under name.
func asWriteError(name string, err error) error {
	var writeErr *apperr.WriteError
	if errors.As(err, &writeErr) {
		return err
	}
	return &apperr.WriteError{Path: name, Err: fmt.Errorf("scaffold: %w", err)}
}
