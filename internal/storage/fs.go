package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/starford/docscaffold/internal/apperr"
	"github.com/starford/docscaffold/internal/checksum"
	"github.com/starford/docscaffold/internal/models"
	"github.com/starford/docscaffold/internal/parser"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to the scaffold directory
}

// NewFS creates a provider rooted at dir. The directory does not need to
// exist yet; see EnsureRoot.
func NewFS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute scaffold directory path.
func (f *FS) Root() string {
	return f.root
}

// EnsureRoot creates the scaffold directory (and parents) when missing. A
// non-directory at the same path is an error.
func (f *FS) EnsureRoot() error {
	info, err := os.Stat(f.root)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return &apperr.DirectoryCreateError{Path: f.root, Err: errors.New("exists and is not a directory")}
	case !errors.Is(err, fs.ErrNotExist):
		return &apperr.DirectoryCreateError{Path: f.root, Err: err}
	}
	if err := os.MkdirAll(f.root, 0o755); err != nil {
		return &apperr.DirectoryCreateError{Path: f.root, Err: err}
	}
	return nil
}

// safePath resolves a document name against the root and rejects anything
// that is not a plain file name directly inside it.
func (f *FS) safePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.IsAbs(name) {
		return "", fmt.Errorf("storage: %w: %q", apperr.ErrInvalidName, name)
	}
	return filepath.Join(f.root, name), nil
}

// Exists reports whether name is present. Stat failures other than "not
// exist" are returned as *apperr.WriteError on the resolved path.
func (f *FS) Exists(name string) (bool, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &apperr.WriteError{Path: abs, Err: err}
	}
	return true, nil
}

// Create writes content to a new file using an exclusive create, then fsyncs
// it. An existing file yields apperr.ErrAlreadyExists and is left untouched.
func (f *FS) Create(name string, content []byte) error {
	abs, err := f.safePath(name)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("storage: create %s: %w", name, apperr.ErrAlreadyExists)
		}
		return &apperr.WriteError{Path: abs, Err: err}
	}

	success := false
	defer func() {
		if !success {
			_ = file.Close()
			_ = os.Remove(abs)
		}
	}()

	if _, err := file.Write(content); err != nil {
		return &apperr.WriteError{Path: abs, Err: err}
	}
	if err := file.Sync(); err != nil {
		return &apperr.WriteError{Path: abs, Err: err}
	}
	if err := file.Close(); err != nil {
		return &apperr.WriteError{Path: abs, Err: err}
	}
	success = true
	return nil
}

// Read returns the raw bytes of a document.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage: read %s: %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// List returns metadata for the .md files directly inside the root, sorted by
// name. A missing root lists as empty.
func (f *FS) List() ([]models.DocumentMetadata, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.DocumentMetadata{}, nil
		}
		return nil, fmt.Errorf("storage: list: %w", err)
	}

	out := make([]models.DocumentMetadata, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("storage: list: %w", err)
		}
		data, err := os.ReadFile(filepath.Join(f.root, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("storage: list: %w", err)
		}
		out = append(out, models.DocumentMetadata{
			Name:      e.Name(),
			Title:     parser.Title(data),
			Checksum:  checksum.Sum(data),
			UpdatedAt: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ Provider = (*FS)(nil)
