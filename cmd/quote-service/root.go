package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-generator-api/internal/bootstrap"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/config"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/logging"
)

// profileEnvVar selects the config profile when --profile is not given.
const profileEnvVar = "APP_ENVIRONMENT"

type rootOptions struct {
	profile string
	port    int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "quote-service",
		Short:         "Quote Generator API server",
		Long:          `quote-service serves inspirational quotes over HTTP with request ids, structured logs and Prometheus metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.Flags().StringVar(&opts.profile, "profile", "", "Config profile to load from configs/ (default $"+profileEnvVar+" or local)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (overrides config and $PORT)")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("quote-service %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		},
	}
}

// resolveProfile picks the flag, then the environment, then local.
func resolveProfile(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(profileEnvVar); env != "" {
		return env
	}
	return "local"
}

// loadConfig loads and validates configuration, applying flag overrides.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(resolveProfile(opts.profile))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func run(ctx context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	svc, err := bootstrap.New(ctx, cfg, logger, bootstrap.BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	})
	if err != nil {
		return fmt.Errorf("building service: %w", err)
	}

	serverErr := svc.Server.Start()

	return waitForShutdown(ctx, logger, svc, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or the server
// fails, then drains in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	svc *bootstrap.Service,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			return shutdownAfterFailure(ctx, svc, fmt.Errorf("server error: %w", err), shutdownTimeout)
		}
		return nil

	case <-sigCtx.Done():
		logger.Info("received shutdown signal", slog.String("cause", context.Cause(sigCtx).Error()))
	}

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := svc.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

// shutdownAfterFailure releases the service after the server has failed.
func shutdownAfterFailure(ctx context.Context, svc *bootstrap.Service, cause error, timeout time.Duration) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := svc.Shutdown(shutdownCtx); err != nil {
		return errors.Join(cause, fmt.Errorf("shutdown: %w", err))
	}

	return cause
}
