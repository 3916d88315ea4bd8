package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"iotracker/internal/app/server/config"
	"iotracker/internal/domain/sensor"
	"iotracker/internal/domain/user"
	"iotracker/internal/infrastructure/storage/postgres"
	"iotracker/internal/infrastructure/storage/sqlite"
)

// Storage набор репозиториев поверх выбранного по DATABASE_URI драйвера.
type Storage struct {
	Users   user.Repository
	Sensors sensor.Repository

	ping  func(ctx context.Context) error
	close func() error
}

// Ping проверяет соединение с базой.
func (s *Storage) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open применяет миграции и открывает хранилище.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	dialect, err := cfg.DB.Dialect()
	if err != nil {
		return nil, err
	}

	switch dialect {
	case config.DialectPostgres:
		pg, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return &Storage{
			Users:   postgres.NewUserRepository(pg.Pool(), log),
			Sensors: postgres.NewSensorRepository(pg.Pool(), log),
			ping:    pg.Pool().Ping,
			close:   pg.Close,
		}, nil
	case config.DialectSQLite:
		lite, err := sqlite.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return &Storage{
			Users:   sqlite.NewUserRepository(lite.DB(), log),
			Sensors: sqlite.NewSensorRepository(lite.DB(), log),
			ping:    lite.DB().PingContext,
			close:   lite.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}
