package main

import (
	"github.com/mshogin/travel-assistant/internal/application/services"
	"github.com/mshogin/travel-assistant/internal/infrastructure/config"
	"github.com/mshogin/travel-assistant/internal/infrastructure/logging"
	"github.com/mshogin/travel-assistant/internal/infrastructure/metrics"
	"github.com/mshogin/travel-assistant/internal/infrastructure/providers"
)

// application holds the wired components shared by the commands.
type application struct {
	config   *config.Config
	logger   *logging.StructuredLogger
	metrics  *metrics.StepMetrics
	workflow *services.ItineraryWorkflow
}

// newApplication builds the provider adapters and the workflow from cfg.
func newApplication(cfg *config.Config, logger *logging.StructuredLogger) *application {
	if err := cfg.CheckCredentials(); err != nil {
		logger.Warn("provider calls will fall back to defaults", map[string]interface{}{
			"error": err.Error(),
		})
	}

	stepMetrics := metrics.NewStepMetrics()
	client := providers.NewSarvamClient(cfg.Provider)

	workflow := services.NewItineraryWorkflow(
		providers.NewSarvamDetector(client),
		providers.NewSarvamGenerator(client, cfg.Generation),
		providers.NewSarvamTranslator(client),
		services.WithLogger(logger),
		services.WithObserver(stepMetrics),
		services.WithDefaultLanguage(cfg.Workflow.DefaultLanguage),
		services.WithPlaceholder(cfg.Generation.Placeholder),
		services.WithTranslationMode(cfg.Translation.Mode),
	)

	return &application{
		config:   cfg,
		logger:   logger,
		metrics:  stepMetrics,
		workflow: workflow,
	}
}

// openLogger creates the logger described by cfg, at debug level when requested.
func openLogger(cfg config.LoggingConfig, debug bool) (*logging.StructuredLogger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if debug {
		level = logging.DebugLevel
	}
	return logging.Open(cfg.Output, level)
}
