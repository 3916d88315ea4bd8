package sensor

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) ingestOp() huma.Operation {
	return huma.Operation{
		OperationID:   "sensor-ingest",
		Method:        http.MethodPost,
		Path:          "/data",
		Summary:       "Прием uplink от сетевого сервера",
		Description:   "Принимает envelope в формате The Things Network и сохраняет decoded_payload.",
		Tags:          []string{"sensor"},
		DefaultStatus: http.StatusAccepted,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) queryOp() huma.Operation {
	return huma.Operation{
		OperationID: "sensor-query",
		Method:      http.MethodGet,
		Path:        "/data",
		Summary:     "Показания пользователя",
		Description: "Возвращает показания по возрастанию времени. Интервал задается from/to или period/date.",
		Tags:        []string{"sensor"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
		Middlewares: h.middleware,
	}
}
