package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "user-register",
		Method:        http.MethodPost,
		Path:          "/register",
		Summary:       "Регистрация пользователя",
		Tags:          []string{"users"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusConflict, http.StatusUnprocessableEntity, http.StatusInternalServerError},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) authenticateOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-authenticate",
		Method:      http.MethodPost,
		Path:        "/authenticate",
		Summary:     "Проверка логина и пароля",
		Tags:        []string{"users"},
		Errors:      []int{http.StatusUnauthorized, http.StatusInternalServerError},
		Middlewares: h.middleware,
	}
}
