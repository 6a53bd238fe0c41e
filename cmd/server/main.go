package main

import (
	"log/slog"
	"os"

	"github.com/bhel/hrm/internal/config"
	"github.com/bhel/hrm/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	logger.Info("starting hrm server",
		"environment", cfg.App.Environment,
		"listen_addr", cfg.Server.ListenAddr,
	)

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("creating server", "error", err)
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger: debug text output in development,
// info-level JSON in production, with LOG_LEVEL overriding either default.
func newLogger(cfg *config.Config) *slog.Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	if cfg.IsDev() {
		level.Set(slog.LevelDebug)
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(lvl)); err != nil {
			slog.Error("invalid LOG_LEVEL, using default", "value", lvl, "error", err)
		} else {
			level.Set(l)
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
