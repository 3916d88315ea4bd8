package sensor

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"iotracker/internal/domain/sensor"
	"iotracker/internal/metrics"
)

type Handler struct {
	service    sensor.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	now        func() time.Time
}

func NewHandler(service sensor.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With(slog.String("component", "sensor_handler")),
		middleware: middleware,
		now:        time.Now,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.ingestOp(), h.ingest)
	huma.Register(api, h.queryOp(), h.query)
}

func (h *Handler) ingest(ctx context.Context, input *ingestInput) (*ingestOutput, error) {
	rec, err := h.service.Ingest(ctx, input.RawBody)
	if err != nil {
		if errors.Is(err, sensor.ErrMalformed) {
			metrics.RecordUplink(metrics.OutcomeInvalid)
			return nil, huma.Error400BadRequest(err.Error())
		}
		metrics.RecordUplink(metrics.OutcomeError)
		h.log.Error("ingest failed", "error", err)
		return nil, huma.Error500InternalServerError("failed to store uplink")
	}

	metrics.RecordUplink(metrics.OutcomeSuccess)
	return &ingestOutput{Body: IngestResponse{Status: "Ok", ID: rec.ID}}, nil
}

func (h *Handler) query(ctx context.Context, input *queryInput) (*queryOutput, error) {
	r, ranged, err := h.rangeOf(input)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	var records []sensor.Record
	if ranged {
		records, err = h.service.QueryRange(ctx, input.User, r)
	} else {
		records, err = h.service.List(ctx, input.User)
	}
	if err != nil {
		h.log.Error("query failed", "user", input.User, "error", err)
		return nil, huma.Error500InternalServerError("failed to load records")
	}

	return &queryOutput{Body: toReadings(records)}, nil
}

// rangeOf собирает интервал из query. period имеет приоритет над from/to,
// без параметров интервала возвращаются все записи.
func (h *Handler) rangeOf(input *queryInput) (sensor.DateRange, bool, error) {
	loc := h.service.Location()

	if input.Period != "" {
		day := h.now().In(loc)
		if input.Date != "" {
			d, err := sensor.ParseDate(input.Date, loc)
			if err != nil {
				return sensor.DateRange{}, false, err
			}
			day = d
		}
		r, err := sensor.RangeFor(sensor.Period(input.Period), day)
		return r, err == nil, err
	}

	if input.From == "" && input.To == "" {
		return sensor.DateRange{}, false, nil
	}
	if input.From == "" || input.To == "" {
		return sensor.DateRange{}, false, errors.New("both from and to are required")
	}

	from, err := sensor.ParseDate(input.From, loc)
	if err != nil {
		return sensor.DateRange{}, false, err
	}
	to, err := sensor.ParseDate(input.To, loc)
	if err != nil {
		return sensor.DateRange{}, false, err
	}

	r, err := sensor.NewDateRange(from, to)
	return r, err == nil, err
}
