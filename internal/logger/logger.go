// Package logger provides package-level structured logging for photofold,
// built on log/slog with a colored text handler for terminals and a JSON
// handler for machine consumption.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Config holds logger configuration.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or a file path
}

var (
	mu       sync.RWMutex
	levelVar = new(slog.LevelVar)
	output   io.Writer = os.Stdout
	format             = "text"
	useColor           = isTerminal(os.Stdout.Fd())
	slogger            = slog.New(NewColorTextHandler(os.Stdout, levelVar, isTerminal(os.Stdout.Fd())))
)

// Init configures the global logger. Output can be "stdout", "stderr", or a
// file path. Unset fields keep their current values.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if cfg.Output != "" {
		switch strings.ToLower(cfg.Output) {
		case "stdout":
			output = os.Stdout
			useColor = isTerminal(os.Stdout.Fd())
		case "stderr":
			output = os.Stderr
			useColor = isTerminal(os.Stderr.Fd())
		default:
			f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %q: %w", cfg.Output, err)
			}
			output = f
			useColor = false
		}
	}

	if cfg.Level != "" {
		levelVar.Set(parseLevel(cfg.Level))
	}
	if cfg.Format != "" {
		format = strings.ToLower(cfg.Format)
	}

	rebuild()
	return nil
}

// InitWithWriter points the logger at a custom writer. Primarily for tests.
func InitWithWriter(w io.Writer, level, fmtName string, color bool) {
	mu.Lock()
	defer mu.Unlock()

	output = w
	useColor = color
	if level != "" {
		levelVar.Set(parseLevel(level))
	}
	if fmtName != "" {
		format = strings.ToLower(fmtName)
	}
	rebuild()
}

// SetLevel changes the minimum log level at runtime. Invalid levels are
// ignored. Safe to call from config watchers.
func SetLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
		levelVar.Set(parseLevel(level))
	}
}

// rebuild swaps the handler; callers must hold mu.
func rebuild() {
	if format == "json" {
		slogger = slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: levelVar}))
		return
	}
	slogger = slog.New(NewColorTextHandler(output, levelVar, useColor))
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slogger
}

// Debug logs at debug level with structured key/value fields.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs at info level with structured key/value fields.
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs at warn level with structured key/value fields.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs at error level with structured key/value fields.
func Error(msg string, args ...any) { get().Error(msg, args...) }

// With returns a logger carrying pre-bound attributes.
func With(args ...any) *slog.Logger { return get().With(args...) }

// Duration returns milliseconds elapsed since start, for duration fields.
func Duration(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
