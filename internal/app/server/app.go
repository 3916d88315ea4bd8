package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"iotracker/internal/app/server/api"
	"iotracker/internal/app/server/config"
	"iotracker/internal/domain/sensor"
	"iotracker/internal/domain/user"
	"iotracker/internal/infrastructure/storage"
)

type App struct {
	cfg     *config.Config
	log     *slog.Logger
	storage *storage.Storage
	server  *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	var validator user.Validator = user.NewValidator()
	if cfg.Auth.StrongPasswords {
		validator = user.NewStrongValidator()
	}

	services := api.Services{
		Users:   user.NewService(st.Users, validator, log),
		Sensors: sensor.NewService(st.Sensors, cfg.Ingest.Owner, cfg.Ingest.Location, log),
		DB:      st,
	}

	return &App{
		cfg:     cfg,
		log:     log,
		storage: st,
		server: &http.Server{
			Addr:    cfg.Server.RunAddress,
			Handler: api.New(services, log),
		},
	}, nil
}

// Run блокируется до SIGINT/SIGTERM или отмены ctx, затем корректно гасит сервер.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.log.Info("starting server", "address", app.server.Addr, "ingest_owner", app.cfg.Ingest.Owner)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.log.Info("shutting down")
	case err := <-errCh:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown: %w", err))
	}
	if err := app.storage.Close(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("close storage: %w", err))
	}

	return runErr
}
