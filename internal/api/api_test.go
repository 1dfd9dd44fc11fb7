package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/docscaffold/internal/models"
	"github.com/starford/docscaffold/internal/testutil"
)

// testEnv sets up a temp workspace and router. An empty token disables auth.
func testEnv(t *testing.T, token string) (*testutil.Workspace, http.Handler) {
	t.Helper()
	ws := testutil.NewWorkspace(t)
	svc := NewService(ws.Generator(), ws.Store)
	return ws, NewRouter(svc, token != "", token)
}

func do(t *testing.T, h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLinks(t *testing.T) {
	ws, h := testEnv(t, "")
	ws.WriteIndex(t, "[A](./files/0001.md)", "[B](./files/0002.md)", "[A](./files/0001.md)")

	rec := do(t, h, http.MethodGet, "/links", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LinksResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"0001.md", "0002.md", "0001.md"}, resp.Links)
	assert.Equal(t, 3, resp.Count)

	_, err := os.Stat(ws.FilesDir)
	assert.True(t, os.IsNotExist(err), "listing links must not create the scaffold dir")
}

func TestLinks_EmptyIndex(t *testing.T) {
	ws, h := testEnv(t, "")
	ws.WriteIndex(t, "# nothing")

	rec := do(t, h, http.MethodGet, "/links", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"links":[],"count":0}`, rec.Body.String())
}

func TestLinks_MissingIndex(t *testing.T) {
	_, h := testEnv(t, "")
	rec := do(t, h, http.MethodGet, "/links", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScaffoldThenList(t *testing.T) {
	ws, h := testEnv(t, "")
	ws.WriteIndex(t, "[A](./files/0001.md)", "[B](./files/0002.md)")

	rec := do(t, h, http.MethodPost, "/scaffold", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, []string{"0001.md", "0002.md"}, report.Created)

	rec = do(t, h, http.MethodGet, "/documents", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var docs DocumentsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&docs))
	require.Len(t, docs.Documents, 2)
	assert.Equal(t, "0001.md", docs.Documents[0].Name)
	assert.NotEmpty(t, docs.Documents[0].Checksum)
}

func TestGetDocument(t *testing.T) {
	ws, h := testEnv(t, "")
	require.NoError(t, os.MkdirAll(ws.FilesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.FilesDir, "0005.md"), []byte("# 0005\n"), 0o644))

	rec := do(t, h, http.MethodGet, "/documents/0005.md", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "# 0005\n", string(body))
}

func TestGetDocument_NotFound(t *testing.T) {
	_, h := testEnv(t, "")
	for _, target := range []string{"/documents/9999.md", "/documents/..%2Fsecret.md"} {
		rec := do(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestAuth_TokenRequired(t *testing.T) {
	ws, h := testEnv(t, "secret")
	ws.WriteIndex(t, "[A](./files/0001.md)")

	rec := do(t, h, http.MethodPost, "/scaffold", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/scaffold", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, err := os.Stat(ws.FilesDir)
	assert.True(t, os.IsNotExist(err), "unauthorized request must not write")

	rec = do(t, h, http.MethodPost, "/scaffold", "secret")
	assert.Equal(t, http.StatusOK, rec.Code)
}
