package book

import (
	"bytes"
	"fmt"

	"github.com/ziadkadry99/ferrisdoc/internal/dom/htmldoc"
	"github.com/ziadkadry99/ferrisdoc/internal/ferris"
)

// PageStatus describes what happened to a single page.
type PageStatus string

const (
	StatusAnnotated PageStatus = "annotated"
	StatusPartial   PageStatus = "partial"
	StatusNoMarkers PageStatus = "no-markers"
	StatusSkipped   PageStatus = "already-annotated"
	StatusCopied    PageStatus = "copied"
	StatusFailed    PageStatus = "failed"
)

// PageResult is the outcome of processing one file.
type PageResult struct {
	RelPath    string
	SourceHash string
	Status     PageStatus
	Icons      ferris.Stats
	Err        error
}

// AnnotateHTML runs the annotator over a full HTML page. When the page has
// nothing to annotate, or skipAnnotated is set and it already carries
// icons, the input is returned unchanged so the page is not re-serialized.
//
// If some kinds fail, the page is still rendered with the icons the other
// kinds attached and returned as StatusPartial along with the error.
func AnnotateHTML(a *ferris.Annotator, src []byte, skipAnnotated bool) ([]byte, PageStatus, ferris.Stats, error) {
	doc, err := htmldoc.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, StatusFailed, nil, err
	}

	if !ferris.HasMarkers(doc) {
		return src, StatusNoMarkers, nil, nil
	}
	if skipAnnotated && ferris.Annotated(doc) {
		return src, StatusSkipped, nil, nil
	}

	stats, attachErr := a.Initialize(doc)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, StatusFailed, stats, fmt.Errorf("rendering page: %w", err)
	}
	if attachErr != nil {
		return buf.Bytes(), StatusPartial, stats, attachErr
	}
	return buf.Bytes(), StatusAnnotated, stats, nil
}
