// Package server wires configuration, storage, services and the HTTP
// endpoint into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pentalign/backend/internal/cryptox"
	"github.com/pentalign/backend/internal/logging"
	"github.com/pentalign/backend/internal/server/auth"
	"github.com/pentalign/backend/internal/server/config"
	"github.com/pentalign/backend/internal/server/httpapi"
	"github.com/pentalign/backend/internal/server/repositories/repomanager"
	"github.com/pentalign/backend/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// NewApp builds the application: logger, database, migrations, token codec
// and services. A missing or weak signing secret fails here, before the
// server accepts any request.
func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	codec, err := auth.NewCodec(cfg.SecretKey, nil)
	if err != nil {
		return nil, fmt.Errorf("signing key init error: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	refresh := services.NewRefreshTokenService(db, repos, cfg.RefreshTokenValidityDuration, nil)
	authService := services.NewAuthService(db, repos, codec, cryptox.NewBcryptHasher(0), refresh, cfg)

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, authService, codec)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
