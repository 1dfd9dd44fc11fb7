package internal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/docscaffold/internal/apperr"
)

// inTempDir switches to an empty working directory for the test.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func runOnce(t *testing.T, cfg *Config) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), WithConfig(cfg), WithOutput(&out), WithLogOutput(io.Discard))
	return out.String(), err
}

func TestRun_DefaultsEndToEnd(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile("README.md", []byte("[A](./files/0001.md)\n[B](./files/0002.md)\n"), 0o644))

	out, err := runOnce(t, NewDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "Generated 2 document files (if any were missing).\n", out)

	data, err := os.ReadFile(filepath.Join(dir, "files", "0001.md"))
	require.NoError(t, err)
	assert.Equal(t, "# 0001\n\nTODO: Fill in the document content.\n", string(data))
	_, err = os.Stat(filepath.Join(dir, "files", "0002.md"))
	assert.NoError(t, err)
}

func TestRun_SecondRunChangesNothing(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("README.md", []byte("[A](./files/0001.md)\n"), 0o644))

	_, err := runOnce(t, NewDefaultConfig())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join("files", "0001.md"), []byte("edited"), 0o644))

	out, err := runOnce(t, NewDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "Generated 1 document files (if any were missing).\n", out)

	data, err := os.ReadFile(filepath.Join("files", "0001.md"))
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))
}

func TestRun_ChineseLocale(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("README.md", []byte("[A](./files/0001.md)\n"), 0o644))

	cfg := NewDefaultConfig()
	cfg.App.Locale = "zh"
	out, err := runOnce(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, "已生成 1 个文档文件（如有缺失）。\n", out)

	data, err := os.ReadFile(filepath.Join("files", "0001.md"))
	require.NoError(t, err)
	assert.Equal(t, "# 0001\n\nTODO: 补充文档内容。\n", string(data))
}

func TestRun_MissingIndex(t *testing.T) {
	inTempDir(t)

	out, err := runOnce(t, NewDefaultConfig())
	require.Error(t, err)
	assert.Empty(t, out)

	var accessErr *apperr.FileAccessError
	assert.True(t, errors.As(err, &accessErr))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, statErr := os.Stat("files")
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_CustomScaffoldDir(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("INDEX.md", []byte("[A](./docs/0003.md)\n[B](./files/0004.md)\n"), 0o644))

	cfg := NewDefaultConfig()
	cfg.Index.Path = "INDEX.md"
	cfg.Scaffold.Dir = "docs"
	out, err := runOnce(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Generated 1 document files (if any were missing).\n", out)

	_, err = os.Stat(filepath.Join("docs", "0003.md"))
	assert.NoError(t, err)
	_, err = os.Stat("files")
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ConfigRequired(t *testing.T) {
	err := Run(context.Background())
	assert.EqualError(t, err, "config is required")
}

func TestRun_WatchStopsOnCancel(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("README.md", []byte("[A](./files/0001.md)\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	var out safeBuffer
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, WithConfig(NewDefaultConfig()), WithWatch(true), WithOutput(&out), WithLogOutput(io.Discard))
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join("files", "0001.md"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Contains(t, out.String(), "Generated 1 document files")
}

// safeBuffer is a bytes.Buffer safe for the watch goroutine and the test.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
