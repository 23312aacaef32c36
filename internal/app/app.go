package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/database"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/records"
	"github.com/vancomm/minefield/internal/repository"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	store      records.Store
	ws         *config.WebSocket
	migrations fs.FS

	limit     int
	showMines bool
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	router := http.NewServeMux()

	app := &App{
		logger:     logger,
		router:     router,
		migrations: migrations,
	}

	return app
}

func (a *App) setupStore(ctx context.Context) error {
	if !config.DatabaseConfigured() {
		a.logger.Info("no database configured, keeping highscores in memory")
		a.store = records.NewMemory(a.logger, a.limit)
		return nil
	}

	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	a.store = repository.NewStore(db)
	return nil
}

// Handler builds the routes and middleware around them.
func (a *App) Handler() http.Handler {
	a.loadRoutes()
	return middleware.Wrap(
		a.router,
		middleware.Cors(),
		middleware.StripPrefix(config.BasePath()),
		middleware.Logging(a.logger),
	)
}

func (a *App) Start(ctx context.Context) error {
	limit, err := config.HighscoresLimit()
	if err != nil {
		return err
	}
	a.limit = limit
	a.showMines = config.ShowMines()

	if err := a.setupStore(ctx); err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	addr := config.Addr()
	server := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.logger.Info("server listening",
		slog.String("addr", addr), slog.Bool("showMines", a.showMines))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
