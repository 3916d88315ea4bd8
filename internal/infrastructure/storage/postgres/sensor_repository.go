package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"iotracker/internal/domain/sensor"
)

type SensorRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSensorRepository(pool *pgxpool.Pool, log *slog.Logger) *SensorRepository {
	return &SensorRepository{
		pool: pool,
		log:  log.With("component", "sensor_repository"),
	}
}

func (r *SensorRepository) Create(ctx context.Context, rec *sensor.Record) (int64, error) {
	const query = `
		INSERT INTO sensor_data (user_login, device_id, bpm, temperature, speed, time_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		rec.UserLogin, rec.DeviceID, rec.BPM, rec.Temperature, rec.Speed, rec.Time,
	).Scan(&rec.ID)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return 0, sensor.ErrUnknownOwner
		}
		r.log.Error("failed to create record",
			"user_login", rec.UserLogin, "device_id", rec.DeviceID, "error", err)
		return 0, fmt.Errorf("create record: %w", err)
	}

	return rec.ID, nil
}

func (r *SensorRepository) ListByUser(ctx context.Context, login string) ([]sensor.Record, error) {
	const query = `
		SELECT id, user_login, device_id, bpm, temperature, speed, time_ms
		FROM sensor_data
		WHERE user_login = $1
		ORDER BY time_ms, id`

	rows, err := r.pool.Query(ctx, query, login)
	if err != nil {
		r.log.Error("failed to list records", "user_login", login, "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (sensor.Record, error) {
		var rec sensor.Record
		err := row.Scan(&rec.ID, &rec.UserLogin, &rec.DeviceID,
			&rec.BPM, &rec.Temperature, &rec.Speed, &rec.Time)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	return records, nil
}
