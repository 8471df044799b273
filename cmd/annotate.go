package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ferrisdoc/internal/book"
	"github.com/ziadkadry99/ferrisdoc/internal/db"
	"github.com/ziadkadry99/ferrisdoc/internal/ferris"
	"github.com/ziadkadry99/ferrisdoc/internal/history"
	"github.com/ziadkadry99/ferrisdoc/internal/progress"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Add Ferris icons to every page of a rendered book",
	Long: `Walks the book directory, annotates each HTML page that contains marked
code blocks and writes the result in place, or under --output when given.
Pages that already carry icons are skipped unless --force is set.`,
	RunE: runAnnotate,
}

func init() {
	addBookFlags(annotateCmd)
	annotateCmd.Flags().String("output", "", "write annotated pages here instead of rewriting the book")
	annotateCmd.Flags().Bool("force", false, "annotate pages that already carry icons")
	annotateCmd.Flags().Bool("fail-on-error", true, "exit non-zero when any page fails")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if force, _ := cmd.Flags().GetBool("force"); force {
		cfg.SkipAnnotated = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := book.NewProcessor(book.Options{
		BookDir:        cfg.BookDir,
		OutputDir:      cfg.OutputDir,
		Include:        cfg.Include,
		Exclude:        cfg.Exclude,
		MaxConcurrency: cfg.MaxConcurrency,
		SkipAnnotated:  cfg.SkipAnnotated,
		Reporter:       progress.NewReporter(),
	}, ferris.NewAnnotator(cfg.Locale))

	started := time.Now()
	res, err := proc.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.HistoryDB != "" {
		if err := recordRun(context.WithoutCancel(ctx), cfg.HistoryDB, res, started, cfg.BookDir, cfg.OutputDir, cfg.Locale); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record run history: %v\n", err)
		}
	}

	if verbose {
		for _, pg := range res.Pages {
			if pg.Status == book.StatusCopied {
				continue
			}
			fmt.Printf("  %-18s %s", pg.Status, pg.RelPath)
			if n := pg.Icons.Total(); n > 0 {
				fmt.Printf(" (%d icons)", n)
			}
			fmt.Println()
		}
	}

	dest := cfg.BookDir
	if !cfg.InPlace() {
		dest = cfg.OutputDir
	}
	fmt.Printf("Annotated %d of %d pages in %s (%d icons, %d already annotated)\n",
		res.Annotated, res.Scanned, dest, res.Icons.Total(), res.Skipped)
	for _, m := range ferris.Markers() {
		if n := res.Icons[m]; n > 0 {
			fmt.Printf("  %-22s %d\n", m, n)
		}
	}

	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
		if failOnError, _ := cmd.Flags().GetBool("fail-on-error"); failOnError {
			return fmt.Errorf("%d pages failed", len(res.Errors))
		}
	}
	return nil
}

func recordRun(ctx context.Context, path string, res *book.Result, started time.Time, bookDir, outputDir, locale string) error {
	database, err := db.Open(path)
	if err != nil {
		return err
	}
	defer database.Close()

	run, pages := history.FromResult(res, started, time.Now(), bookDir, outputDir, locale)
	_, err = history.NewStore(database).Record(ctx, run, pages)
	return err
}
