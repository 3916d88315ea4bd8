// Package metrics содержит prometheus-метрики сервиса.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы операций для лейбла outcome.
const (
	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

var (
	// RegistrationsTotal попытки регистрации по исходу.
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iotracker_registrations_total",
			Help: "Total number of registration attempts",
		},
		[]string{"outcome"},
	)

	// AuthenticationsTotal попытки входа по исходу.
	AuthenticationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iotracker_authentications_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"outcome"},
	)

	// UplinksTotal принятые и отклоненные uplink сообщения.
	UplinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iotracker_uplinks_total",
			Help: "Total number of received sensor uplinks",
		},
		[]string{"outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "iotracker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint", "status"},
	)
)

func RecordRegistration(outcome string) {
	RegistrationsTotal.WithLabelValues(outcome).Inc()
}

func RecordAuthentication(outcome string) {
	AuthenticationsTotal.WithLabelValues(outcome).Inc()
}

func RecordUplink(outcome string) {
	UplinksTotal.WithLabelValues(outcome).Inc()
}

// RecordAPIRequest endpoint должен быть шаблоном пути, а не сырым URL.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, endpoint, strconv.Itoa(status)).Observe(duration.Seconds())
}
