package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ferrisdoc/internal/ferris"
	"github.com/ziadkadry99/ferrisdoc/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a rendered book with icons added on the fly",
	Long:  `Starts a local HTTP server for the book directory. HTML pages are annotated as they are requested; files on disk are never modified.`,
	RunE:  runServe,
}

func init() {
	addBookFlags(serveCmd)
	serveCmd.Flags().Int("port", 0, "port for the local server (overrides server.port)")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.BookDir); err != nil {
		return fmt.Errorf("book directory %s: %w\nRun `mdbook build` first", cfg.BookDir, err)
	}

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		BookDir:  cfg.BookDir,
		Include:  cfg.Include,
		Exclude:  cfg.Exclude,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, ferris.NewAnnotator(cfg.Locale))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	fmt.Printf("Serving %s at %s — press Ctrl+C to stop\n", cfg.BookDir, url)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go openBrowser(url)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sig:
		fmt.Println("\nShutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
