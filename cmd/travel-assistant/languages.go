package main

import (
	"github.com/spf13/cobra"

	"github.com/mshogin/travel-assistant/internal/presentation/tui"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported display languages",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tui.NewPrinter(cmd.OutOrStdout(), nil, tui.NewStyler()).PrintLanguages()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
