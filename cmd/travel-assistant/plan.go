package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mshogin/travel-assistant/internal/domain/models"
	"github.com/mshogin/travel-assistant/internal/presentation/tui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a trip and print the itinerary",
	Long: `Runs language detection, itinerary generation and translation once
and prints the result. Provider failures never abort the run: each step
falls back to a default and --debug shows what happened.`,
	Example: `  travel-assistant plan --destination Jaipur --days 3 --interest Culture --interest Food --language hi`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		debug, _ := cmd.Flags().GetBool("debug")
		raw, _ := cmd.Flags().GetBool("raw")

		logger, err := openLogger(cfg.Logging, debug)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		trip := models.TripRequest{
			PreferredLanguage: cfg.Workflow.DefaultLanguage,
			IncludeTips:       cfg.Workflow.IncludeTips,
		}
		trip.Destination, _ = cmd.Flags().GetString("destination")
		trip.Duration, _ = cmd.Flags().GetInt("days")
		trip.Interests, _ = cmd.Flags().GetStringArray("interest")
		budget, _ := cmd.Flags().GetString("budget")
		trip.Budget = models.Budget(budget)
		if cmd.Flags().Changed("language") {
			trip.PreferredLanguage, _ = cmd.Flags().GetString("language")
		}
		if cmd.Flags().Changed("tips") {
			trip.IncludeTips, _ = cmd.Flags().GetBool("tips")
		}

		if !models.IsSupportedLanguage(models.BaseLanguage(trip.PreferredLanguage)) {
			logger.Warn("unsupported display language, translating with the default locale", map[string]interface{}{
				"language": trip.PreferredLanguage,
				"locale":   models.DefaultLocale,
			})
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app := newApplication(cfg, logger)
		result := app.workflow.Plan(ctx, trip)

		// Plan normalizes its own copy; show the values that were used
		trip.Normalize()

		render := tui.PlainRenderer
		style := tui.NewPlainStyler()
		if !raw {
			render = tui.NewRenderer("", tui.DefaultWordWrap)
			style = tui.NewStyler()
		}

		printer := tui.NewPrinter(cmd.OutOrStdout(), render, style)
		printer.Debug = debug
		printer.PrintResult(trip, result)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringP("destination", "d", "", "Destination to plan for")
	planCmd.Flags().IntP("days", "n", 3, "Trip duration in days (1-30)")
	planCmd.Flags().StringArrayP("interest", "i", nil, "Interest to include (repeatable)")
	planCmd.Flags().StringP("budget", "b", string(models.BudgetModerate), "Budget level: Budget, Moderate or Luxury")
	planCmd.Flags().StringP("language", "l", models.DefaultLanguage, "Preferred display language code")
	planCmd.Flags().Bool("tips", true, "Add a practical tips section; unset uses workflow.include_tips")
	planCmd.Flags().Bool("debug", false, "Print every step outcome with raw failure bodies")
	planCmd.Flags().Bool("raw", false, "Print plain text without markdown rendering")
}
