package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ferrisdoc/internal/config"
	"github.com/ziadkadry99/ferrisdoc/internal/db"
	"github.com/ziadkadry99/ferrisdoc/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded annotate runs",
	Long:  `Lists recent annotate runs, or the per-page results of one run when a run ID is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.HistoryDB == "" {
		return fmt.Errorf("history is disabled (history_db is empty)")
	}
	if _, err := os.Stat(cfg.HistoryDB); os.IsNotExist(err) {
		fmt.Println("No runs recorded yet. Run `ferrisdoc annotate` first.")
		return nil
	}

	database, err := db.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer database.Close()
	store := history.NewStore(database)
	ctx := context.Background()

	if len(args) == 1 {
		pages, err := store.Pages(ctx, args[0])
		if err != nil {
			return err
		}
		if len(pages) == 0 {
			return fmt.Errorf("no pages recorded for run %s", args[0])
		}
		for _, p := range pages {
			fmt.Printf("%-18s %-48s dnc=%d panics=%d ndb=%d", p.Status, p.RelPath, p.DoesNotCompile, p.Panics, p.NotDesiredBehavior)
			if p.Error != "" {
				fmt.Printf("  error: %s", p.Error)
			}
			fmt.Println()
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		dest := r.BookDir
		if r.OutputDir != "" {
			dest = r.OutputDir
		}
		fmt.Printf("%s  %s  %-6s %3d/%-3d pages  %3d icons  %d failed  -> %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Locale,
			r.PagesAnnotated, r.PagesScanned, r.Icons, r.PagesFailed, dest)
	}
	return nil
}
