package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arteralabs/artera/internal/config"
	"github.com/arteralabs/artera/internal/server"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *server.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Storage.Root = t.TempDir()
	cfg.Storage.DefaultFolders = nil
	cfg.RateLimit.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	srv, err := server.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func doJSON(t *testing.T, srv *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func uploadRequest(t *testing.T, folderPath, filename string, content []byte, extra map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	require.NoError(t, writer.WriteField("folder_path", folderPath))
	for key, value := range extra {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/files/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["storage_root_exists"])
}

func TestAPIInfo(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "GET", "/api", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Artera Storage API", body["message"])
	assert.Equal(t, "running", body["status"])
}

func TestCreateFolder(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/folders/create", gin.H{"path": "projects/alpha"})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "projects/alpha", body["path"])
	assert.Contains(t, body["message"], "projects/alpha")
}

func TestCreateFolderInvalid(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing path", gin.H{}, http.StatusBadRequest},
		{"traversal", gin.H{"path": "../outside"}, http.StatusBadRequest},
		{"absolute", gin.H{"path": "/etc/passwd"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, srv, "POST", "/api/folders/create", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDeleteFolder(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/folders/create", gin.H{"path": "doomed/inner"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, "DELETE", "/api/folders/delete", gin.H{"path": "doomed"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, "DELETE", "/api/folders/delete", gin.H{"path": "doomed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteFolderNonRecursiveConflict(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/folders/create", gin.H{"path": "busy/inner"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, "DELETE", "/api/folders/delete", gin.H{"path": "busy", "recursive": false})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUploadFile(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/folders/create", gin.H{"path": "docs"})
	require.Equal(t, http.StatusCreated, w.Code)

	req := uploadRequest(t, "docs", "hello.txt", []byte("hello world"), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "docs/hello.txt", body["path"])
	assert.Contains(t, body["content_type"], "text/plain")
}

func TestUploadFileConflict(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/folders/create", gin.H{"path": "docs"})
	require.Equal(t, http.StatusCreated, w.Code)

	req := uploadRequest(t, "docs", "f.txt", []byte("one"), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = uploadRequest(t, "docs", "f.txt", []byte("two"), map[string]string{"overwrite": "false"})
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUploadFileMissingFolder(t *testing.T) {
	srv := newTestServer(t, nil)

	req := uploadRequest(t, "nowhere", "f.txt", []byte("x"), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteFile(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/folders/create", gin.H{"path": "docs"})
	require.Equal(t, http.StatusCreated, w.Code)

	req := uploadRequest(t, "docs", "f.txt", []byte("x"), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	w = doJSON(t, srv, "DELETE", "/api/files/delete?file_path=docs/f.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, "DELETE", "/api/files/delete?file_path=docs/f.txt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteFileRequiresQueryParam(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "DELETE", "/api/files/delete", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrderingAndCount(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/folders/create", gin.H{"path": "Zfolder"})
	require.Equal(t, http.StatusCreated, w.Code)

	req := uploadRequest(t, "Zfolder", "a.txt", []byte("x"), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	w = doJSON(t, srv, "GET", "/api/files/list?recursive=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["total_count"])

	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	second := items[1].(map[string]any)
	assert.Equal(t, "folder", first["type"])
	assert.Nil(t, first["size"])
	assert.Equal(t, "Zfolder/a.txt", second["relative_path"])
	assert.Equal(t, float64(1), second["size"])
}

func TestListErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "GET", "/api/files/list?path=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, "GET", "/api/files/list?recursive=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTree(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/folders/create", gin.H{"path": "a/b"})
	require.Equal(t, http.StatusCreated, w.Code)

	req := uploadRequest(t, "a/b", "leaf.txt", []byte("x"), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	w = doJSON(t, srv, "GET", "/api/files/tree", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total_files"])
	assert.Equal(t, float64(2), body["total_folders"])

	tree, ok := body["tree"].([]any)
	require.True(t, ok)
	require.Len(t, tree, 1)
	root := tree[0].(map[string]any)
	assert.Equal(t, "a", root["name"])
	assert.NotNil(t, root["children"])
}

func TestLoginAndVerify(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/auth/login", gin.H{"username": "alice", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, ok := body["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	assert.Equal(t, "bearer", body["token_type"])

	req := httptest.NewRequest("GET", "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	verified := decodeBody(t, rec)
	assert.Equal(t, true, verified["valid"])
	assert.Equal(t, "alice", verified["username"])
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "POST", "/api/auth/login", gin.H{"username": "", "password": ""})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyWithoutToken(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doJSON(t, srv, "GET", "/api/auth/verify", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestAuthGatesMutationsWhenEnabled(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.Enabled = true
	})

	// Reads stay open.
	w := doJSON(t, srv, "GET", "/api/files/list", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Mutations require a token.
	w = doJSON(t, srv, "POST", "/api/folders/create", gin.H{"path": "secure"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// With a token the mutation goes through.
	w = doJSON(t, srv, "POST", "/api/auth/login", gin.H{"username": "admin", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeBody(t, w)["access_token"].(string)

	raw, err := json.Marshal(gin.H{"path": "secure"})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/folders/create", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRootServesFallbackHTML(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.StaticDir = "does-not-exist"
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "Artera Storage API")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	// Generate a request so the counters have something to report.
	w := doJSON(t, srv, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "artera_http_requests_total")
}
