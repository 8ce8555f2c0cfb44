package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mshogin/travel-assistant/internal/presentation/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves the itinerary workflow as a JSON API with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// CLI overrides
		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger, err := openLogger(cfg.Logging, false)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		app := newApplication(cfg, logger)
		handler := api.NewHandler(app.workflow, cfg, logger)

		srv := &http.Server{
			Addr:         cfg.Addr(),
			Handler:      api.NewRouter(handler, app.metrics.Handler(), cfg.Server.CORSOrigins),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server starting", map[string]interface{}{
				"addr":     srv.Addr,
				"model":    cfg.Generation.Model,
				"base_url": cfg.Provider.BaseURL,
			})
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server error", err)
			}

		case sig := <-shutdown:
			logger.Info("shutdown started", map[string]interface{}{"signal": sig.String()})

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", err, map[string]interface{}{
					"timeout_ms": cfg.Server.ShutdownTimeout.Milliseconds(),
				})
				if err := srv.Close(); err != nil {
					logger.Error("failed to close server", err)
				}
			}
			logger.Info("server stopped")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "Server host (overrides config)")
	serveCmd.Flags().IntP("port", "p", 0, "Server port (overrides config)")
}
