//POST /register          # Регистрация
//POST /authenticate      # Проверка логина и пароля
//POST /data              # Uplink от сетевого сервера
//GET  /data?user=...     # Показания пользователя
//GET  /api/v1/health     # Health check
//GET  /metrics           # Prometheus

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	healthAPI "iotracker/internal/app/server/api/http/health"
	"iotracker/internal/app/server/api/http/middleware"
	"iotracker/internal/app/server/api/http/middleware/logger"
	"iotracker/internal/app/server/api/http/middleware/metrics"
	sensorAPI "iotracker/internal/app/server/api/http/sensor"
	userAPI "iotracker/internal/app/server/api/http/user"
	"iotracker/internal/domain/sensor"
	"iotracker/internal/domain/user"
)

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Sensor *sensorAPI.Handler
}

// Services доменные сервисы, которые публикует API.
type Services struct {
	Users   user.Servicer
	Sensors sensor.Servicer
	DB      healthAPI.Pinger
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(services Services, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(middleware.Recovery(log))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	mux.Handle("/metrics", promhttp.Handler())

	config := huma.DefaultConfig("IoT Tracker API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(services, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Sensor.SetupRoutes(API)

	return mux
}

func handlers(services Services, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(services.DB, log, middlewares.GetAllAndClear())

	middlewares.Add(metrics.Middleware())
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(services.Users, log, middlewares.GetAllAndClear())

	middlewares.Add(metrics.Middleware())
	middlewares.Add(loggerMW.Middleware())
	sensorHandler := sensorAPI.NewHandler(services.Sensors, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Sensor: sensorHandler,
	}
}
