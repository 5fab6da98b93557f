// Package log builds the application's file-backed slog logger. The TUI
// owns the terminal once it starts, so nothing here may write to stdout
// or stderr: output goes to the configured file, or nowhere at all.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvidela/duet/internal/config"
)

// Setup opens (creating if needed) the configured log file and returns
// a JSON logger writing to it at the configured level.
func Setup(cfg *config.LoggingConfig) (*slog.Logger, error) {
	path, err := expandHome(cfg.File)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	return slog.New(slog.NewJSONHandler(f, opts)), nil
}

// Discard returns a logger whose output goes nowhere, used when the log
// file cannot be opened and in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
