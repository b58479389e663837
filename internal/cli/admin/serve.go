package admin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloo-solutions/suggestscore/internal/api/handlers"
	"github.com/cloo-solutions/suggestscore/internal/cli"
	"github.com/cloo-solutions/suggestscore/internal/config"
	"github.com/cloo-solutions/suggestscore/internal/logging"
	"github.com/cloo-solutions/suggestscore/internal/metrics"
	"github.com/cloo-solutions/suggestscore/internal/server"
	"github.com/cloo-solutions/suggestscore/internal/telemetry"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the suggestscore API server, exposing GET /estimate and GET /health",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides SUGGESTSCORE_PORT)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if portFlag, _ := cmd.Flags().GetString("port"); portFlag != "" {
		cfg.Port = portFlag
	}

	logger := logging.New(logging.Options{
		Debug:   cfg.Debug,
		Console: cfg.IsDev(),
	})

	if cfg.HasSentry() {
		// Full sampling in development, 10% elsewhere
		sampleRate := 0.1
		if cfg.IsDev() {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("telemetry init failed, continuing without tracing")
		} else {
			defer shutdownTelemetry()
		}
	}

	var recorder *metrics.Recorder
	routerCfg := server.RouterConfig{Logger: logger}
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
		routerCfg.MetricsHandler = recorder.Handler()
	}

	estimationSvc := cli.NewEstimationService(cfg, recorder)
	routerCfg.EstimateHandler = handlers.NewEstimateHandler(estimationSvc, cfg.RequestTimeout)

	router := server.NewRouter(routerCfg)

	// In-flight estimations inherit baseCtx and are aborted if the drain overruns
	baseCtx, cancelInFlight := context.WithCancel(context.Background())
	defer cancelInFlight()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("vendor", cfg.VendorBaseURL).
			Int("max_concurrency", cfg.MaxConcurrency).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		cancelInFlight()
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server exited")
	return nil
}
