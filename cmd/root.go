package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ferrisdoc/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ferrisdoc",
	Short: "Mark failing code samples in a rendered Rust book with Ferris icons",
	Long: `ferrisdoc scans the HTML pages of a rendered book for code blocks tagged
does_not_compile, panics or not_desired_behavior and places a Ferris icon next
to each one, sized by the length of the sample. Pages can be annotated in
bulk, served with icons added on the fly, or handed to AI agents over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
