package user

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"iotracker/internal/domain/user"
	"iotracker/internal/metrics"
)

type Handler struct {
	service    user.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With(slog.String("component", "user_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.authenticateOp(), h.authenticate)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	_, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	switch {
	case err == nil:
		metrics.RecordRegistration(metrics.OutcomeSuccess)
	case errors.Is(err, user.ErrDuplicateLogin):
		metrics.RecordRegistration(metrics.OutcomeDuplicate)
		return nil, huma.Error409Conflict("login already exists")
	case errors.Is(err, user.ErrInvalidInput):
		metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, huma.Error422UnprocessableEntity(err.Error())
	default:
		metrics.RecordRegistration(metrics.OutcomeError)
		h.log.Error("register failed", "login", input.Body.Login, "error", err)
		return nil, huma.Error500InternalServerError("registration failed")
	}

	return &registerOutput{Body: StatusResponse{Status: "Ok"}}, nil
}

func (h *Handler) authenticate(ctx context.Context, input *authenticateInput) (*authenticateOutput, error) {
	_, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	switch {
	case err == nil:
		metrics.RecordAuthentication(metrics.OutcomeSuccess)
	case errors.Is(err, user.ErrInvalidCredentials):
		metrics.RecordAuthentication(metrics.OutcomeRejected)
		return nil, huma.Error401Unauthorized("invalid credentials")
	default:
		metrics.RecordAuthentication(metrics.OutcomeError)
		h.log.Error("authenticate failed", "login", input.Body.Login, "error", err)
		return nil, huma.Error500InternalServerError("authentication failed")
	}

	return &authenticateOutput{Body: StatusResponse{Status: "Ok"}}, nil
}
