package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"filedex/models"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	mu    sync.Mutex
	files []models.FileMetadata
	err   error
	calls int
}

func (f *fakeLoader) Load(ctx context.Context) ([]models.FileMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.files, f.err
}

func (f *fakeLoader) Source() string { return "fake" }

func testFiles(n int) []models.FileMetadata {
	files := make([]models.FileMetadata, 0, n)
	for i := range n {
		name := fmt.Sprintf("file-%02d.pdf", i)
		files = append(files, models.FileMetadata{
			Name:         name,
			Path:         name,
			Size:         models.NewSize(int64(1024 * (i + 1))),
			LastModified: "2024-01-02T03:04:05.000Z",
			DownloadURL:  "https://raw.example.com/" + name,
			FileType:     "pdf",
		})
	}
	return files
}

func newTestServer(t *testing.T, loader *fakeLoader) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := New(&Config{}, loader)
	require.NoError(t, err)
	return s
}

func get(s *Server, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestIndexRendersFirstPage(t *testing.T) {
	s := newTestServer(t, &fakeLoader{files: testFiles(42)})

	w := get(s, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "file-00.pdf")
	assert.Contains(t, body, "file-14.pdf")
	assert.NotContains(t, body, "file-15.pdf")
	assert.Contains(t, body, "Showing 1-15 of 42 files")
	assert.Contains(t, body, "1.00 KB")
	assert.Contains(t, body, "02/01/2024 03:04:05")
	assert.Equal(t, colorSchemeHint, w.Header().Get("Accept-CH"))
}

func TestIndexSearchSortAndPage(t *testing.T) {
	s := newTestServer(t, &fakeLoader{files: testFiles(42)})

	w := get(s, "/?q=FILE-4&sort=nameDesc&size=20&page=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Showing 1-2 of 2 files")
	assert.Less(t, strings.Index(body, "file-41.pdf"), strings.Index(body, "file-40.pdf"))

	w = get(s, "/?size=20&page=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Showing 41-42 of 42 files")

	// out of range pages are clamped
	w = get(s, "/?size=20&page=99", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Showing 41-42 of 42 files")
}

func TestIndexNoMatches(t *testing.T) {
	s := newTestServer(t, &fakeLoader{files: testFiles(3)})

	w := get(s, "/?q=nothing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No files found.")
	assert.NotContains(t, w.Body.String(), "pagination-controls")
}

func TestIndexLoadErrorThenRetry(t *testing.T) {
	loader := &fakeLoader{err: errors.New("HTTP error: status 404")}
	s := newTestServer(t, loader)

	w := get(s, "/", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load files")
	assert.Contains(t, w.Body.String(), "Reload")
	assert.Contains(t, w.Body.String(), "status 404")

	loader.mu.Lock()
	loader.err = nil
	loader.files = testFiles(1)
	loader.mu.Unlock()

	w = get(s, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "file-00.pdf")
}

func TestDocumentIsLoadedOnce(t *testing.T) {
	loader := &fakeLoader{files: testFiles(2)}
	s := newTestServer(t, loader)

	get(s, "/", nil)
	get(s, "/?sort=size", nil)
	get(s, "/", nil)
	assert.Equal(t, 1, loader.calls)

	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	get(s, "/", nil)
	assert.Equal(t, 2, loader.calls)
}

func TestDocumentEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeLoader{files: testFiles(2)})

	w := get(s, "/files_metadata.json", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var files []models.FileMetadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	assert.Len(t, files, 2)
	assert.Equal(t, "file-01.pdf", files[1].Name)
}

func TestThemeDefaultsToSystem(t *testing.T) {
	s := newTestServer(t, &fakeLoader{files: testFiles(1)})

	w := get(s, "/", http.Header{colorSchemeHint: {"dark"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-theme="system"`)
	assert.Contains(t, w.Body.String(), `content="light dark"`)
}

func TestThemeSelectionPersists(t *testing.T) {
	s := newTestServer(t, &fakeLoader{files: testFiles(1)})

	form := url.Values{"theme": {"dark"}, "return": {"/?page=1"}}
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?page=1", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "theme", cookies[0].Name)
	assert.Equal(t, "dark", cookies[0].Value)

	// an explicit choice ignores the OS signal
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	req.Header.Set(colorSchemeHint, "light")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-theme="dark"`)
}

func TestSafeReturn(t *testing.T) {
	assert.Equal(t, "/?q=a", safeReturn("/?q=a"))
	assert.Equal(t, "/", safeReturn(""))
	assert.Equal(t, "/", safeReturn("https://evil.example.com"))
	assert.Equal(t, "/", safeReturn("//evil.example.com"))
	assert.Equal(t, "/", safeReturn(`/\evil.example.com`))
}
