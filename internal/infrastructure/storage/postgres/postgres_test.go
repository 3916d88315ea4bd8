package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"iotracker/internal/app/server/config"
	"iotracker/internal/domain/sensor"
	"iotracker/internal/domain/user"
)

// Тесты работают с реальной БД: TEST_DATABASE_URI=postgres://... go test ./...
func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	uri := os.Getenv("TEST_DATABASE_URI")
	if uri == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	cfg := &config.Config{}
	cfg.DB.DatabaseURI = uri

	ctx := context.Background()
	s, err := New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Pool().Exec(ctx, `TRUNCATE sensor_data, users RESTART IDENTITY`)
	require.NoError(t, err)
	return s
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	s := newTestStorage(t)
	repo := NewUserRepository(s.Pool(), slog.Default())
	ctx := context.Background()

	created, err := repo.Create(ctx, "alexis", "hash")
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, "alexis", "other")
	assert.ErrorIs(t, err, user.ErrDuplicateLogin)

	found, err := repo.FindByLogin(ctx, "alexis")
	require.NoError(t, err)
	assert.Equal(t, "hash", found.Password)

	_, err = repo.FindByLogin(ctx, "Alexis")
	assert.ErrorIs(t, err, user.ErrNotFound)

	var n int
	require.NoError(t, s.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE login = 'alexis'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSensorRepository_CreateAndList(t *testing.T) {
	s := newTestStorage(t)
	users := NewUserRepository(s.Pool(), slog.Default())
	repo := NewSensorRepository(s.Pool(), slog.Default())
	ctx := context.Background()

	_, err := users.Create(ctx, "alexis", "hash")
	require.NoError(t, err)

	now := time.Now().UnixMilli()
	second := &sensor.Record{UserLogin: "alexis", DeviceID: "dev1", BPM: 80, Temperature: 22, Speed: 10, Time: now + 1000}
	first := &sensor.Record{UserLogin: "alexis", DeviceID: "dev1", BPM: 72, Temperature: 21, Speed: 15, Time: now}

	_, err = repo.Create(ctx, second)
	require.NoError(t, err)
	_, err = repo.Create(ctx, first)
	require.NoError(t, err)

	_, err = repo.Create(ctx, &sensor.Record{UserLogin: "ghost", DeviceID: "dev1", Time: now})
	assert.ErrorIs(t, err, sensor.ErrUnknownOwner)

	got, err := repo.ListByUser(ctx, "alexis")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, *first, got[0])
	assert.Equal(t, *second, got[1])
}
