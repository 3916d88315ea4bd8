package metrics

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	appmetrics "iotracker/internal/metrics"
)

// Middleware пишет длительность запроса в гистограмму.
// endpoint берется из шаблона операции, чтобы query не размножал лейблы.
func Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		endpoint := ctx.URL().Path
		if op := ctx.Operation(); op != nil {
			endpoint = op.Path
		}
		appmetrics.RecordAPIRequest(ctx.Method(), endpoint, ctx.Status(), time.Since(start))
	}
}
