package logging

import (
	"io"
	"log/slog"

	"tinyurl.local/internal/platform/config"
)

// New builds the process logger: JSON by default, text when LOG_FORMAT=text.
func New(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler
	if cfg.LogFormat == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("service", cfg.ServiceName)
}

// Setup is New plus slog.SetDefault.
func Setup(w io.Writer, cfg config.Config) *slog.Logger {
	logger := New(w, cfg)
	slog.SetDefault(logger)
	return logger
}
