package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ziadkadry99/ferrisdoc/internal/book"
	"github.com/ziadkadry99/ferrisdoc/internal/walker"
)

// handleBook serves a file from the book directory. HTML pages matching the
// include patterns are annotated before they are written out.
func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	full := filepath.Join(s.cfg.BookDir, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		rel = path.Join(rel, "index.html")
		full = filepath.Join(full, "index.html")
		if info, err = os.Stat(full); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
	}

	if !s.annotates(rel) {
		http.ServeFile(w, r, full)
		return
	}

	src, err := os.ReadFile(full)
	if err != nil {
		http.Error(w, "reading page", http.StatusInternalServerError)
		return
	}

	out, status, _, err := book.AnnotateHTML(s.annotator, src, true)
	if err != nil {
		log.Printf("server: annotate %s: %v", rel, err)
		if out == nil {
			// The page is still usable without icons.
			out = src
		}
	}

	sum := sha256.Sum256(out)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("X-Ferris-Status", string(status))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, path.Base(rel), info.ModTime().Truncate(time.Second), bytes.NewReader(out))
}

func (s *Server) annotates(rel string) bool {
	if !strings.HasSuffix(strings.ToLower(rel), ".html") {
		return false
	}
	return walker.MatchesInclude(rel, s.cfg.Include) && !walker.MatchesExclude(rel, s.cfg.Exclude)
}

type kindResponse struct {
	Marker string `json:"marker"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
}

// handleKinds lists the annotation kinds with the labels in use.
func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	kinds := s.annotator.Kinds()
	resp := make([]kindResponse, len(kinds))
	for i, k := range kinds {
		resp[i] = kindResponse{Marker: k.Marker, Label: k.Label, Icon: k.IconPath()}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
