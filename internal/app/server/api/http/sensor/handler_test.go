package sensor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"iotracker/internal/domain/sensor"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Ingest(ctx context.Context, raw []byte) (sensor.Record, error) {
	args := m.Called(ctx, raw)
	return args.Get(0).(sensor.Record), args.Error(1)
}

func (m *MockService) List(ctx context.Context, login string) ([]sensor.Record, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sensor.Record), args.Error(1)
}

func (m *MockService) QueryRange(ctx context.Context, login string, r sensor.DateRange) ([]sensor.Record, error) {
	args := m.Called(ctx, login, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sensor.Record), args.Error(1)
}

func (m *MockService) Location() *time.Location {
	return time.UTC
}

func newTestAPI(t *testing.T, svc sensor.Servicer) humatest.TestAPI {
	_, api := humatest.New(t)
	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	h.now = func() time.Time { return time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC) }
	h.SetupRoutes(api)
	return api
}

func rangeIs(want string) any {
	return mock.MatchedBy(func(r sensor.DateRange) bool { return r.String() == want })
}

const uplink = `{"end_device_ids":{"device_id":"dev1"},"uplink_message":{"decoded_payload":{"bpm":72,"temperature":21,"speed":15}}}`

func TestHandler_Ingest(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "accepted", expectedStatus: http.StatusAccepted},
		{
			name:           "malformed",
			serviceErr:     fmt.Errorf("%w: invalid fields: uplink_message.decoded_payload.bpm (required)", sensor.ErrMalformed),
			expectedStatus: http.StatusBadRequest,
		},
		{name: "store failure", serviceErr: errors.New("disk full"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Ingest", mock.Anything, []byte(uplink)).Return(sensor.Record{ID: 7}, tt.serviceErr)
			api := newTestAPI(t, svc)

			resp := api.Post("/data", "Content-Type: application/json", strings.NewReader(uplink))

			assert.Equal(t, tt.expectedStatus, resp.Code)
			if tt.serviceErr == nil {
				var body IngestResponse
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				assert.Equal(t, IngestResponse{Status: "Ok", ID: 7}, body)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Query(t *testing.T) {
	records := []sensor.Record{
		{ID: 1, UserLogin: "alexis", DeviceID: "dev1", BPM: 70, Temperature: 20, Speed: 5, Time: 1_704_103_200_000},
		{ID: 2, UserLogin: "alexis", DeviceID: "dev1", BPM: 80, Temperature: 22, Speed: 9, Time: 1_704_189_600_000},
	}
	body := `[{"bpm":70,"temperature":20,"speed":5,"time":1704103200000},{"bpm":80,"temperature":22,"speed":9,"time":1704189600000}]`

	t.Run("no range lists everything", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, "alexis").Return(records, nil)
		api := newTestAPI(t, svc)

		resp := api.Get("/data?user=alexis")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, body, resp.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, "bob").Return([]sensor.Record{}, nil)
		api := newTestAPI(t, svc)

		resp := api.Get("/data?user=bob")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[]`, resp.Body.String())
	})

	t.Run("week period", func(t *testing.T) {
		svc := new(MockService)
		svc.On("QueryRange", mock.Anything, "alexis", rangeIs("2024-01-01..2024-01-07")).Return(records, nil)
		api := newTestAPI(t, svc)

		resp := api.Get("/data?user=alexis&period=week&date=2024-01-03")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, body, resp.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("month period defaults to today", func(t *testing.T) {
		svc := new(MockService)
		svc.On("QueryRange", mock.Anything, "alexis", rangeIs("2024-02-01..2024-02-29")).Return([]sensor.Record{}, nil)
		api := newTestAPI(t, svc)

		resp := api.Get("/data?user=alexis&period=month")

		assert.Equal(t, http.StatusOK, resp.Code)
		svc.AssertExpectations(t)
	})

	t.Run("explicit from and to", func(t *testing.T) {
		svc := new(MockService)
		svc.On("QueryRange", mock.Anything, "alexis", rangeIs("2024-01-02..2024-01-02")).Return(records[1:], nil)
		api := newTestAPI(t, svc)

		resp := api.Get("/data?user=alexis&from=2024-01-02&to=2024-01-02")

		assert.Equal(t, http.StatusOK, resp.Code)
		svc.AssertExpectations(t)
	})

	t.Run("store failure is not an empty list", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, "alexis").Return(nil, errors.New("db down"))
		api := newTestAPI(t, svc)

		resp := api.Get("/data?user=alexis")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

func TestHandler_Query_BadRange(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "unknown period", query: "/data?user=alexis&period=year"},
		{name: "bad date", query: "/data?user=alexis&period=week&date=03-01-2024"},
		{name: "only from", query: "/data?user=alexis&from=2024-01-01"},
		{name: "reversed", query: "/data?user=alexis&from=2024-01-05&to=2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			api := newTestAPI(t, svc)

			resp := api.Get(tt.query)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
			svc.AssertNotCalled(t, "QueryRange", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Query_MissingUser(t *testing.T) {
	api := newTestAPI(t, new(MockService))

	resp := api.Get("/data")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
