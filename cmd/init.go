package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ferrisdoc/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ferrisdoc configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure ferrisdoc for your book and writes a .ferrisdoc.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
