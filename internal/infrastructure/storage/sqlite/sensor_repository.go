package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"iotracker/internal/domain/sensor"
)

type SensorRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSensorRepository(db *sql.DB, log *slog.Logger) *SensorRepository {
	return &SensorRepository{
		db:  db,
		log: log.With("component", "sensor_repository"),
	}
}

func (r *SensorRepository) Create(ctx context.Context, rec *sensor.Record) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sensor_data (user_login, device_id, bpm, temperature, speed, time_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.UserLogin, rec.DeviceID, rec.BPM, rec.Temperature, rec.Speed, rec.Time)
	if err != nil {
		if extendedCode(err) == sqlite3.ErrConstraintForeignKey {
			return 0, sensor.ErrUnknownOwner
		}
		r.log.Error("failed to create record",
			"user_login", rec.UserLogin, "device_id", rec.DeviceID, "error", err)
		return 0, fmt.Errorf("create record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id

	return id, nil
}

func (r *SensorRepository) ListByUser(ctx context.Context, login string) ([]sensor.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_login, device_id, bpm, temperature, speed, time_ms
		FROM sensor_data
		WHERE user_login = ?
		ORDER BY time_ms, id`, login)
	if err != nil {
		r.log.Error("failed to list records", "user_login", login, "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []sensor.Record
	for rows.Next() {
		var rec sensor.Record
		if err := rows.Scan(&rec.ID, &rec.UserLogin, &rec.DeviceID,
			&rec.BPM, &rec.Temperature, &rec.Speed, &rec.Time); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
