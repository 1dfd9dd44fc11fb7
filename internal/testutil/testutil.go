// Package testutil provides shared test helpers for setting up an index
// document and a scaffold directory.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/docscaffold/internal/locale"
	"github.com/starford/docscaffold/internal/scaffold"
	"github.com/starford/docscaffold/internal/scanner"
	"github.com/starford/docscaffold/internal/storage"
)

// Workspace is a temporary project directory holding README.md and files/.
type Workspace struct {
	Dir       string
	IndexPath string
	FilesDir  string
	Store     *storage.FS
}

// NewWorkspace creates a temporary workspace. The scaffold directory is not
// created.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	dir := t.TempDir()
	filesDir := filepath.Join(dir, scanner.DefaultDir)
	store, err := storage.NewFS(filesDir)
	if err != nil {
		t.Fatal(err)
	}
	return &Workspace{
		Dir:       dir,
		IndexPath: filepath.Join(dir, "README.md"),
		FilesDir:  filesDir,
		Store:     store,
	}
}

// WriteIndex replaces the index document with lines joined by "\n".
func (w *Workspace) WriteIndex(t *testing.T, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(w.IndexPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Generator returns an English Generator over the workspace with a silent logger.
func (w *Workspace) Generator() *scaffold.Generator {
	return scaffold.NewGenerator(w.IndexPath, scanner.Default, w.Store, locale.New("en").PlaceholderLine(), DiscardLogger())
}

// ReadDoc returns the content of a scaffold document, failing the test if absent.
func (w *Workspace) ReadDoc(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(w.FilesDir, name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
