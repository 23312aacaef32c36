package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"github.com/vancomm/minefield/internal/app"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/database"
	"github.com/vancomm/minefield/internal/mines"
)

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if config.Debug() {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: level,
		})
	}
	return slog.New(handler)
}

func main() {
	if err := config.Load(); err != nil {
		slog.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger()
	mines.Log = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := app.New(logger, database.Migrations)

	if err := a.Start(ctx); err != nil {
		logger.Error("failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
