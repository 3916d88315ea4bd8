package middleware

import (
	"net/http"
	"runtime/debug"

	"golang.org/x/exp/slog"
)

// Recovery перехватывает panic в хендлерах, логирует стек и отвечает 500.
// Ставится на chi-роутер до huma, поэтому работает с net/http.
func Recovery(log *slog.Logger) func(http.Handler) http.Handler {
	log = log.With(slog.String("component", "recovery"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// ErrAbortHandler отдаем net/http как есть
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"stack", string(debug.Stack()),
				)

				w.Header().Set("Content-Type", "application/problem+json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"title":"Internal Server Error","status":500}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
