package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/database"
)

func main() {
	if err := config.Load(); err != nil {
		slog.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	db, migrator, err := database.ConnectAndMigrate(ctx, database.Migrations)
	if err != nil {
		logger.Error("failed to connect to db", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		logger.Error("failed to check migration version", slog.Any("error", err))
		return
	}
	logger.Info("migration successful", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
}
