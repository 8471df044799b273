package mcp

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/ferrisdoc/internal/book"
	"github.com/ziadkadry99/ferrisdoc/internal/ferris"
)

// annotatorFor returns the server annotator unless a different locale was
// requested.
func (s *Server) annotatorFor(locale string) *ferris.Annotator {
	if locale == "" || locale == s.locale {
		return s.annotator
	}
	return ferris.NewAnnotator(locale)
}

// handleAnnotateHTML annotates inline HTML.
func (s *Server) handleAnnotateHTML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := request.RequireString("html")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: html"), nil
	}

	a := s.annotatorFor(request.GetString("locale", ""))
	out, status, stats, err := book.AnnotateHTML(a, []byte(src), request.GetBool("skip_annotated", true))
	if out == nil {
		return mcp.NewToolResultError(fmt.Sprintf("annotation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatAnnotation(status, stats, err, out)), nil
}

// handleAnnotatePage annotates a page read from the book directory.
func (s *Server) handleAnnotatePage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rel, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	if s.bookDir == "" {
		return mcp.NewToolResultError("no book directory configured. Set book_dir in .ferrisdoc.yml."), nil
	}

	clean := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(rel)), "/")
	src, err := os.ReadFile(filepath.Join(s.bookDir, filepath.FromSlash(clean)))
	if err != nil {
		if os.IsNotExist(err) {
			return mcp.NewToolResultError(fmt.Sprintf("page %q not found in %s", clean, s.bookDir)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("reading page: %v", err)), nil
	}

	out, status, stats, err := book.AnnotateHTML(s.annotator, src, true)
	if out == nil {
		return mcp.NewToolResultError(fmt.Sprintf("annotation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatAnnotation(status, stats, err, out)), nil
}

// handleListKinds lists the annotation kinds.
func (s *Server) handleListKinds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("| Marker | Tooltip | Icon |\n|---|---|---|\n")
	for _, k := range s.annotatorFor(request.GetString("locale", "")).Kinds() {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", k.Marker, k.Label, k.IconPath())
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleClassifyBlock reports line count and icon size for a code sample.
func (s *Server) handleClassifyBlock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: code"), nil
	}
	lines := ferris.LineCount(code)
	size := ferris.SizeFor(lines)
	return mcp.NewToolResultText(fmt.Sprintf("lines: %d\nsize: %s\nclass: %s", lines, size, size.Class())), nil
}

func formatAnnotation(status book.PageStatus, stats ferris.Stats, err error, out []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "status: %s\n", status)
	if err != nil {
		fmt.Fprintf(&b, "error: %v\n", err)
	}
	for _, m := range ferris.Markers() {
		if n := stats[m]; n > 0 {
			fmt.Fprintf(&b, "%s: %d\n", m, n)
		}
	}
	b.WriteString("\n")
	b.Write(out)
	return b.String()
}
