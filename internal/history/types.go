// Package history records annotation runs in SQLite so earlier results can
// be listed and compared.
package history

import "time"

// Run is one `ferrisdoc annotate` invocation.
type Run struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	BookDir        string
	OutputDir      string
	Locale         string
	PagesScanned   int
	PagesAnnotated int
	PagesSkipped   int
	PagesFailed    int
	Icons          int
}

// Page is the outcome for a single page within a run.
type Page struct {
	RunID              string
	RelPath            string
	SourceHash         string
	Status             string
	DoesNotCompile     int
	Panics             int
	NotDesiredBehavior int
	Error              string
}
