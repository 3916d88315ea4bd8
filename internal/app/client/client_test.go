package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"iotracker/internal/app/client/config"
	"iotracker/internal/domain/sensor"
)

// fakeServer минимальная имитация API трекера.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	users := map[string]string{"alexis": "pw1"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		if _, ok := users[c.Login]; ok {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"title":"Conflict","status":409,"detail":"login already exists"}`)
			return
		}
		users[c.Login] = c.Password
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"status":"Ok"}`)
	})
	mux.HandleFunc("POST /authenticate", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		if pw, ok := users[c.Login]; !ok || pw != c.Password {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"title":"Unauthorized","status":401,"detail":"invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"status":"Ok"}`)
	})
	mux.HandleFunc("GET /data", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("user") == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"title":"Internal Server Error","status":500,"detail":"failed to load records"}`)
			return
		}
		assert.Equal(t, "2024-01-01", q.Get("from"))
		assert.Equal(t, "2024-01-07", q.Get("to"))
		_, _ = io.WriteString(w, `[{"bpm":72,"temperature":21,"speed":15,"time":1704103200000}]`)
	})
	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"OK"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, serverURL string) *App {
	t.Helper()
	cfg := &config.Config{
		ServerAddress:  serverURL,
		DataPath:       t.TempDir() + "/state.db",
		RequestTimeout: 2 * time.Second,
	}
	app, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestApp_RegisterAndLogin(t *testing.T) {
	srv := fakeServer(t)
	app := newTestApp(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, app.CheckConnection(ctx))

	require.NoError(t, app.Register(ctx, "bob", "secret"))
	assert.ErrorIs(t, app.Register(ctx, "bob", "secret"), ErrDuplicateLogin)

	_, err := app.Login(ctx, "bob", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = app.Session()
	assert.ErrorIs(t, err, ErrNoSession)

	sess, err := app.Login(ctx, "bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, "bob", sess.Login)

	stored, err := app.Session()
	require.NoError(t, err)
	assert.Equal(t, "bob", stored.Login)

	require.NoError(t, app.Logout())
	_, err = app.Session()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestApp_Readings(t *testing.T) {
	srv := fakeServer(t)
	app := newTestApp(t, srv.URL)
	ctx := context.Background()

	readings, r, err := app.Readings(ctx, Session{Login: "alexis"}, sensor.PeriodWeek, "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01..2024-01-07", r.String())
	require.Len(t, readings, 1)
	assert.Equal(t, Reading{BPM: 72, Temperature: 21, Speed: 15, Time: 1704103200000}, readings[0])

	_, _, err = app.Readings(ctx, Session{Login: "broken"}, sensor.PeriodWeek, "2024-01-03")
	assert.ErrorIs(t, err, ErrUnknown)

	_, _, err = app.Readings(ctx, Session{}, sensor.PeriodWeek, "2024-01-03")
	assert.ErrorIs(t, err, ErrNoSession)

	_, _, err = app.Readings(ctx, Session{Login: "alexis"}, sensor.Period("year"), "2024-01-03")
	assert.ErrorIs(t, err, sensor.ErrInvalidRange)
}

func TestApp_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	app := newTestApp(t, url)

	_, err := app.Login(context.Background(), "alexis", "pw1")
	assert.ErrorIs(t, err, ErrServerUnreachable)
	assert.Contains(t, Describe(err), "Сервер недоступен")
}

func TestApp_Calendar(t *testing.T) {
	app := newTestApp(t, "localhost:0")

	_, err := app.MarkDay("2024-03-05", true)
	require.NoError(t, err)
	_, err = app.MarkDay("2024-03-01", true)
	require.NoError(t, err)
	past, err := app.MarkDay("2024-03-05", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-05"}, past)

	_, err = app.MarkDay("2024-04-10", false)
	require.NoError(t, err)

	_, err = app.MarkDay("05.03.2024", false)
	assert.ErrorIs(t, err, sensor.ErrInvalidRange)

	past, future, err := app.Calendar()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-05"}, past)
	assert.Equal(t, []string{"2024-04-10"}, future)
}

func TestJoinDays(t *testing.T) {
	assert.Equal(t, "", JoinDays(nil))
	assert.Equal(t, "2024-01-01,2024-02-01", JoinDays([]string{"2024-02-01", " 2024-01-01", "2024-02-01", ""}))
	assert.Equal(t, []string{}, SplitDays(""))
	assert.Equal(t, []string{"a", "b"}, SplitDays("a,b"))
}
