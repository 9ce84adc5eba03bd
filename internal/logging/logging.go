// Package logging builds the application's slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level      string // debug, info, warn or error
	Format     string // "text" or "json"
	File       string // optional log file, rotated by size
	MaxSizeMB  int    // default 10
	MaxBackups int    // default 3
	MaxAgeDays int    // default 28
	Compress   bool
}

// Logger is an slog.Logger that may own a rotating log file.
type Logger struct {
	*slog.Logger
	rotator *lumberjack.Logger
}

// New creates a logger writing to console and, when cfg.File is set, to a
// rotating file. If the file's directory cannot be created the logger falls
// back to console only.
func New(cfg Config, console io.Writer) *Logger {
	if console == nil {
		console = os.Stderr
	}

	var output io.Writer = console
	var rotator *lumberjack.Logger

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err == nil {
			rotator = &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    orDefault(cfg.MaxSizeMB, 10),
				MaxBackups: orDefault(cfg.MaxBackups, 3),
				MaxAge:     orDefault(cfg.MaxAgeDays, 28),
				Compress:   cfg.Compress,
				LocalTime:  true,
			}
			output = io.MultiWriter(console, rotator)
		}
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{Logger: slog.New(handler), rotator: rotator}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close closes the log file if one is open.
func (l *Logger) Close() error {
	if l.rotator != nil {
		return l.rotator.Close()
	}
	return nil
}

// Component returns a child logger tagged with component=name.
func (l *Logger) Component(name string) *slog.Logger {
	return l.With("component", name)
}

// ParseLevel converts a level name to an slog.Level. Unknown names are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
