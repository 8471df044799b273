package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/ferrisdoc/internal/book"
	"github.com/ziadkadry99/ferrisdoc/internal/db"
	"github.com/ziadkadry99/ferrisdoc/internal/ferris"
)

// timeLayout is fixed width so stored timestamps sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store provides access to recorded runs.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// FromResult converts a processor result into a Run and its pages. Copied
// assets are not recorded.
func FromResult(res *book.Result, started, finished time.Time, bookDir, outputDir, locale string) (Run, []Page) {
	run := Run{
		StartedAt:      started,
		FinishedAt:     finished,
		BookDir:        bookDir,
		OutputDir:      outputDir,
		Locale:         locale,
		PagesScanned:   res.Scanned,
		PagesAnnotated: res.Annotated,
		PagesSkipped:   res.Skipped,
		PagesFailed:    len(res.Errors),
		Icons:          res.Icons.Total(),
	}

	var pages []Page
	for _, pg := range res.Pages {
		if pg.Status == book.StatusCopied {
			continue
		}
		p := Page{
			RelPath:            pg.RelPath,
			SourceHash:         pg.SourceHash,
			Status:             string(pg.Status),
			DoesNotCompile:     pg.Icons[ferris.MarkerDoesNotCompile],
			Panics:             pg.Icons[ferris.MarkerPanics],
			NotDesiredBehavior: pg.Icons[ferris.MarkerNotDesiredBehavior],
		}
		if pg.Err != nil {
			p.Error = pg.Err.Error()
		}
		pages = append(pages, p)
	}
	return run, pages
}

// Record inserts a run and its pages in one transaction. If run.ID is empty
// a UUID is generated. The run ID is returned.
func (s *Store) Record(ctx context.Context, run Run, pages []Page) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, started_at, finished_at, book_dir, output_dir, locale,
			pages_scanned, pages_annotated, pages_skipped, pages_failed, icons
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		run.BookDir,
		run.OutputDir,
		run.Locale,
		run.PagesScanned,
		run.PagesAnnotated,
		run.PagesSkipped,
		run.PagesFailed,
		run.Icons,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, p := range pages {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_pages (
				run_id, rel_path, source_hash, status,
				does_not_compile, panics, not_desired_behavior, error
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, p.RelPath, p.SourceHash, p.Status,
			p.DoesNotCompile, p.Panics, p.NotDesiredBehavior, p.Error,
		)
		if err != nil {
			return "", fmt.Errorf("inserting page %s: %w", p.RelPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.ID, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, book_dir, output_dir, locale,
			   pages_scanned, pages_annotated, pages_skipped, pages_failed, icons
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished string
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.BookDir, &r.OutputDir, &r.Locale,
			&r.PagesScanned, &r.PagesAnnotated, &r.PagesSkipped, &r.PagesFailed, &r.Icons); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if r.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Pages returns the recorded pages of a run ordered by path.
func (s *Store) Pages(ctx context.Context, runID string) ([]Page, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, rel_path, source_hash, status,
			   does_not_compile, panics, not_desired_behavior, error
		FROM run_pages WHERE run_id = ? ORDER BY rel_path`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.RunID, &p.RelPath, &p.SourceHash, &p.Status,
			&p.DoesNotCompile, &p.Panics, &p.NotDesiredBehavior, &p.Error); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
