package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ferrisdoc/internal/ferris"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the marker classes and their tooltips",
	Run: func(cmd *cobra.Command, args []string) {
		locale, _ := cmd.Flags().GetString("locale")
		fmt.Printf("Locale: %s (available: %s)\n\n", ferris.ResolveLocale(locale), strings.Join(ferris.SupportedLocales(), ", "))
		for _, k := range ferris.Kinds(locale) {
			fmt.Printf("  %-22s %-32s %s\n", k.Marker, k.IconPath(), k.Label)
		}
	},
}

func init() {
	kindsCmd.Flags().String("locale", "", "tooltip language")
	rootCmd.AddCommand(kindsCmd)
}
