package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mshogin/travel-assistant/internal/infrastructure/config"
)

var rootCmd = &cobra.Command{
	Use:   "travel-assistant",
	Short: "Multilingual AI travel itinerary planner",
	Long: `travel-assistant plans day-by-day trips with a language-AI provider:
it detects the language of the destination, generates an itinerary and
translates it into the preferred display language.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "config.yaml", "Path to configuration file")
}

// loadConfig reads and validates the configuration named by --config.
// It is the only source of a non-zero exit status.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
