package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/ferrisdoc/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the annotator as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		bookDir := cfg.BookDir
		if _, err := os.Stat(bookDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: book directory %s not found; annotate_page will be unavailable\n", bookDir)
			bookDir = ""
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "ferrisdoc MCP server started on stdio (book=%s, locale=%s)\n", cfg.BookDir, cfg.Locale)

		srv := mcpserver.NewServer(bookDir, cfg.Locale)
		return srv.Serve()
	},
}

func init() {
	addBookFlags(mcpCmd)
	rootCmd.AddCommand(mcpCmd)
}
