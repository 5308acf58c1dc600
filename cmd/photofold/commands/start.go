package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/photofold/photofold/internal/logger"
	"github.com/photofold/photofold/internal/telemetry"
	"github.com/photofold/photofold/pkg/access"
	"github.com/photofold/photofold/pkg/api"
	"github.com/photofold/photofold/pkg/config"
	"github.com/photofold/photofold/pkg/content"
	contentfs "github.com/photofold/photofold/pkg/content/fs"
	contents3 "github.com/photofold/photofold/pkg/content/s3"
	"github.com/photofold/photofold/pkg/download"
	"github.com/photofold/photofold/pkg/library/models"
	"github.com/photofold/photofold/pkg/library/store"
	"github.com/photofold/photofold/pkg/memorylane"
	"github.com/photofold/photofold/pkg/metrics"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the photofold server",
	Long: `Start the photofold API server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/photofold/config.yaml.

Examples:
  # Start with default config location
  photofold start

  # Start with custom config file
  photofold start --config /etc/photofold/config.yaml

  # Start with environment variable overrides
  PHOTOFOLD_LOGGING_LEVEL=DEBUG photofold start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx, cfg.TelemetryInitConfig("photofold", Version))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	profilingShutdown, err := telemetry.InitProfiling(cfg.ProfilingInitConfig("photofold", Version))
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}

	// Metrics registry must exist before collectors are created
	var downloadMetrics *metrics.DownloadMetrics
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		downloadMetrics = metrics.NewDownloadMetrics()
		logger.Info("Metrics enabled")
	} else {
		logger.Info("Metrics collection disabled")
	}

	libraryStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer func() {
		if err := libraryStore.Close(); err != nil {
			logger.Error("library database close error", "error", err)
		}
	}()
	logger.Info("Library database ready", "type", cfg.Database.Type)

	if err := bootstrapAdmin(ctx, libraryStore, cfg.Admin); err != nil {
		return fmt.Errorf("failed to bootstrap admin user: %w", err)
	}

	contentStore, err := newContentStore(ctx, &cfg.Content)
	if err != nil {
		return fmt.Errorf("failed to open content store: %w", err)
	}
	logger.Info("Content store ready", "type", cfg.Content.Type)

	gate := access.NewGate(libraryStore)

	downloadService := download.NewService(libraryStore, gate, contentStore, download.Config{
		PageSize:   cfg.Download.PageSize,
		TargetSize: cfg.Download.TargetSize.Bytes(),
		Metrics:    downloadMetrics,
	})

	memoryLane := memorylane.New(libraryStore, downloadMetrics)

	apiServer, err := api.NewServer(cfg.API, api.Deps{
		Users:      libraryStore,
		Store:      libraryStore,
		Download:   downloadService,
		MemoryLane: memoryLane,
	})
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	// Live log level adjustments from config file edits
	go func() {
		if err := config.Watch(ctx, GetConfigFile()); err != nil {
			logger.Warn("config watcher stopped", "error", err)
		}
	}()

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		if err := <-serverDone; err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("Server stopped")
	}

	return nil
}

// bootstrapAdmin creates the configured admin user on first start. A user
// that already exists is left untouched.
func bootstrapAdmin(ctx context.Context, s *store.GORMStore, cfg config.AdminConfig) error {
	if cfg.PasswordHash == "" {
		return nil
	}

	if _, err := s.GetUser(ctx, cfg.Username); err == nil {
		return nil
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return err
	}

	if _, err := s.CreateUser(ctx, &models.User{
		Username:     cfg.Username,
		PasswordHash: cfg.PasswordHash,
		Email:        cfg.Email,
		Role:         string(models.RoleAdmin),
		Enabled:      true,
	}); err != nil {
		return err
	}

	logger.Info("Admin user created", "username", cfg.Username)
	return nil
}

// newContentStore builds the configured content backend.
func newContentStore(ctx context.Context, cfg *config.ContentConfig) (content.Store, error) {
	switch cfg.Type {
	case "filesystem":
		return contentfs.New(cfg.Root)
	case "s3":
		return contents3.New(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown content store type: %s", cfg.Type)
	}
}
