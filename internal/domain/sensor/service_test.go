package sensor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, rec *Record) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, login string) ([]Record, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

const validUplink = `{"end_device_ids":{"device_id":"dev1"},"received_at":"2024-01-03T10:00:00Z","uplink_message":{"decoded_payload":{"bpm":72,"temperature":21,"speed":15}}}`

func TestService_Ingest(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, "alexis", time.UTC, slog.Default())

	start := time.Now()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rec *Record) bool {
		return rec.UserLogin == "alexis" && rec.DeviceID == "dev1" &&
			rec.BPM == 72 && rec.Temperature == 21 && rec.Speed == 15 &&
			rec.Time >= start.UnixMilli()
	})).Return(int64(7), nil).Once()

	rec, err := svc.Ingest(context.Background(), []byte(validUplink))
	require.NoError(t, err)
	assert.Equal(t, int64(7), rec.ID)
	assert.GreaterOrEqual(t, rec.Time, start.UnixMilli())

	repo.AssertExpectations(t)
}

func TestService_Ingest_UsesServiceClockNotReceivedAt(t *testing.T) {
	repo := new(MockRepository)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo, "alexis", time.UTC, slog.Default()).WithClock(func() time.Time { return fixed })

	repo.On("Create", mock.Anything, mock.AnythingOfType("*sensor.Record")).Return(int64(1), nil)

	rec, err := svc.Ingest(context.Background(), []byte(validUplink))
	require.NoError(t, err)
	assert.Equal(t, fixed.UnixMilli(), rec.Time)
}

func TestService_Ingest_MalformedStoresNothing(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, "alexis", time.UTC, slog.Default())

	_, err := svc.Ingest(context.Background(), []byte(`{"end_device_ids":{"device_id":"dev1"},"uplink_message":{}}`))
	assert.ErrorIs(t, err, ErrMalformed)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Ingest_StoreErrors(t *testing.T) {
	tests := []struct {
		name       string
		storeErr   error
		wantIs     error
		wantString string
	}{
		{name: "unknown owner", storeErr: ErrUnknownOwner, wantIs: ErrUnknownOwner},
		{name: "database down", storeErr: errors.New("conn closed"), wantString: "store record: conn closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, "alexis", time.UTC, slog.Default())
			repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), tt.storeErr)

			_, err := svc.Ingest(context.Background(), []byte(validUplink))
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantString != "" {
				assert.EqualError(t, err, tt.wantString)
			}
		})
	}
}

func TestService_QueryRange(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, "alexis", time.UTC, slog.Default())

	at := func(y int, m time.Month, d, h int) int64 {
		return time.Date(y, m, d, h, 0, 0, 0, time.UTC).UnixMilli()
	}
	stored := []Record{
		{ID: 4, UserLogin: "alexis", BPM: 90, Time: at(2024, 1, 7, 23)},
		{ID: 1, UserLogin: "alexis", BPM: 60, Time: at(2023, 12, 31, 23)},
		{ID: 2, UserLogin: "alexis", BPM: 70, Time: at(2024, 1, 1, 0)},
		{ID: 5, UserLogin: "alexis", BPM: 99, Time: at(2024, 1, 8, 0)},
		{ID: 3, UserLogin: "alexis", BPM: 80, Time: at(2024, 1, 3, 12)},
	}
	repo.On("ListByUser", mock.Anything, "alexis").Return(stored, nil)

	r, err := NewDateRange(date(2024, 1, 1), date(2024, 1, 7))
	require.NoError(t, err)

	got, err := svc.QueryRange(context.Background(), "alexis", r)
	require.NoError(t, err)

	ids := make([]int64, 0, len(got))
	for _, rec := range got {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []int64{2, 3, 4}, ids)
}

func TestService_QueryRange_LocalDate(t *testing.T) {
	repo := new(MockRepository)
	paris := time.FixedZone("CET", 3600)
	svc := NewService(repo, "alexis", paris, slog.Default())

	// 31 декабря 23:30 UTC = 1 января 00:30 по CET
	rec := Record{ID: 1, Time: time.Date(2023, 12, 31, 23, 30, 0, 0, time.UTC).UnixMilli()}
	repo.On("ListByUser", mock.Anything, "alexis").Return([]Record{rec}, nil)

	got, err := svc.QueryRange(context.Background(), "alexis", WeekOf(time.Date(2024, 1, 1, 0, 0, 0, 0, paris)))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_QueryRange_StoreError(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, "alexis", time.UTC, slog.Default())
	repo.On("ListByUser", mock.Anything, "alexis").Return(nil, errors.New("timeout"))

	got, err := svc.QueryRange(context.Background(), "alexis", WeekOf(date(2024, 1, 1)))
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestService_List_SortsAscending(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, "alexis", time.UTC, slog.Default())
	repo.On("ListByUser", mock.Anything, "alexis").Return([]Record{
		{ID: 2, Time: 200}, {ID: 1, Time: 100}, {ID: 3, Time: 200},
	}, nil)

	got, err := svc.List(context.Background(), "alexis")
	require.NoError(t, err)
	assert.Equal(t, []Record{{ID: 1, Time: 100}, {ID: 2, Time: 200}, {ID: 3, Time: 200}}, got)
}

func TestNewService_DefaultLocation(t *testing.T) {
	svc := NewService(new(MockRepository), "alexis", nil, slog.Default())
	assert.Equal(t, time.Local, svc.Location())
}
