package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ziadkadry99/ferrisdoc/internal/ferris"
)

func bookDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file location")
	}
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "sample_book")
}

func newTestServer(t *testing.T, allowAll bool) *Server {
	t.Helper()
	return New(Config{
		BookDir:  bookDir(t),
		Include:  []string{"**/*.html"},
		Exclude:  []string{"print.html"},
		AllowAll: allowAll,
	}, ferris.NewAnnotator("en"))
}

func get(t *testing.T, srv *Server, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := get(t, newTestServer(t, false), "/healthz", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, true)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestServeAnnotatedPage(t *testing.T) {
	srv := newTestServer(t, false)
	pagePath := filepath.Join(bookDir(t), "ch04-01-what-is-ownership.html")
	before, err := os.ReadFile(pagePath)
	if err != nil {
		t.Fatal(err)
	}

	w := get(t, srv, "/ch04-01-what-is-ownership.html", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Ferris-Status"); got != "annotated" {
		t.Errorf("X-Ferris-Status = %q, want annotated", got)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := w.Body.String()
	if strings.Count(body, `class="ferris-container"`) != 2 {
		t.Errorf("expected two containers, body:\n%s", body)
	}
	if !strings.Contains(body, `title="This code panics!"`) {
		t.Error("missing english tooltip")
	}

	after, err := os.ReadFile(pagePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("serving a page must not modify it on disk")
	}
}

func TestServeETag(t *testing.T) {
	srv := newTestServer(t, false)
	first := get(t, srv, "/ch04-01-what-is-ownership.html", nil)
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	second := get(t, srv, "/ch04-01-what-is-ownership.html", map[string]string{"If-None-Match": etag})
	if second.Code != http.StatusNotModified {
		t.Errorf("expected 304, got %d", second.Code)
	}
}

func TestServeIndexAndUnmarkedPage(t *testing.T) {
	w := get(t, newTestServer(t, false), "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Ferris-Status"); got != "no-markers" {
		t.Errorf("X-Ferris-Status = %q, want no-markers", got)
	}
	if !strings.Contains(w.Body.String(), "介紹") {
		t.Error("index body not served")
	}
}

func TestServeExcludedPagePassesThrough(t *testing.T) {
	w := get(t, newTestServer(t, false), "/print.html", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "ferris-container") {
		t.Error("excluded page was annotated")
	}
}

func TestServeStaticAsset(t *testing.T) {
	w := get(t, newTestServer(t, false), "/css/ferris.css", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	want, err := os.ReadFile(filepath.Join(bookDir(t), "css", "ferris.css"))
	if err != nil {
		t.Fatal(err)
	}
	if w.Body.String() != string(want) {
		t.Error("asset body differs from file on disk")
	}
	if w.Header().Get("X-Ferris-Status") != "" {
		t.Error("assets should not carry annotation status")
	}
}

func TestServeNotFound(t *testing.T) {
	srv := newTestServer(t, false)
	for _, target := range []string{"/missing.html", "/../../../etc/passwd", "/img"} {
		if w := get(t, srv, target, nil); w.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", target, w.Code)
		}
	}
}

func TestKindsEndpoint(t *testing.T) {
	w := get(t, newTestServer(t, false), "/api/kinds", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var kinds []kindResponse
	if err := json.Unmarshal(w.Body.Bytes(), &kinds); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(kinds) != 3 {
		t.Fatalf("kinds = %d, want 3", len(kinds))
	}
	if kinds[0].Marker != "does_not_compile" || kinds[0].Icon != "img/ferris/does_not_compile.svg" {
		t.Errorf("first kind = %+v", kinds[0])
	}
}

func TestServePartiallyAnnotatedPage(t *testing.T) {
	dir := t.TempDir()
	page := `<!DOCTYPE html><html class="panics"><head></head><body>` +
		`<div><pre class="does_not_compile">let x: i32 = "no";</pre></div></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "broken.html"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := New(Config{BookDir: dir, Include: []string{"**/*.html"}}, ferris.NewAnnotator("en"))

	w := get(t, srv, "/broken.html", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Ferris-Status"); got != "partial" {
		t.Errorf("X-Ferris-Status = %q, want partial", got)
	}
	if !strings.Contains(w.Body.String(), "img/ferris/does_not_compile.svg") {
		t.Error("icons from the kinds that succeeded were dropped")
	}
}
