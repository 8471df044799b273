package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ferrisdoc/internal/config"
)

// loadConfig loads the config, applies flag overrides and validates it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `ferrisdoc init` to create a config file", err)
	}

	flags := cmd.Flags()
	if flags.Lookup("book") != nil && flags.Changed("book") {
		cfg.BookDir, _ = flags.GetString("book")
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.OutputDir, _ = flags.GetString("output")
	}
	if flags.Lookup("locale") != nil && flags.Changed("locale") {
		cfg.Locale, _ = flags.GetString("locale")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// addBookFlags registers the flags shared by commands that read a book.
func addBookFlags(cmd *cobra.Command) {
	cmd.Flags().String("book", "", "rendered book directory (overrides book_dir)")
	cmd.Flags().String("locale", "", "tooltip language, zh-TW or en (overrides locale)")
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
