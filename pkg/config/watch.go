package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/photofold/photofold/internal/logger"
)

// Watch monitors the config file and applies runtime-adjustable settings
// when it changes. Currently only the logging level is applied live; all
// other settings need a restart.
//
// Watch blocks until the context is cancelled.
func Watch(ctx context.Context, configPath string) error {
	if configPath == "" {
		configPath = GetDefaultConfigPath()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(configPath); err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}

	logger.Debug("watching config file for changes", "path", configPath)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			cfg, err := Load(configPath)
			if err != nil {
				logger.Warn("config reload failed, keeping current settings", "error", err)
				continue
			}

			logger.SetLevel(cfg.Logging.Level)
			logger.Info("log level applied from config change", "level", cfg.Logging.Level)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", "error", err)
		}
	}
}
