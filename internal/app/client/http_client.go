package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/exp/slog"

	"iotracker/internal/app/client/config"
	"iotracker/internal/domain/sensor"
)

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With("component", "http_client"),
		baseURL:   cfg.BaseURL(),
		userAgent: "IoTracker-Client/1.0",
	}
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) Register(ctx context.Context, login, password string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/register", credentials{Login: login, Password: password})
	if err != nil {
		return err
	}
	var out statusResponse
	return h.parseResponse(resp, &out)
}

func (h *httpClient) Authenticate(ctx context.Context, login, password string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/authenticate", credentials{Login: login, Password: password})
	if err != nil {
		return err
	}
	var out statusResponse
	return h.parseResponse(resp, &out)
}

// Readings запрашивает показания пользователя за интервал дат.
func (h *httpClient) Readings(ctx context.Context, login string, r sensor.DateRange) ([]Reading, error) {
	q := url.Values{}
	q.Set("user", login)
	q.Set("from", r.Start.Format(sensor.DateLayout))
	q.Set("to", r.End.Format(sensor.DateLayout))

	resp, err := h.doRequest(ctx, http.MethodGet, "/data?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	readings := []Reading{}
	if err := h.parseResponse(resp, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.log.Debug("Отправка запроса", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnreachable, err)
	}

	return resp, nil
}

// parseResponse переводит статус ответа в типизированную ошибку клиента.
func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: ошибка чтения ответа: %v", ErrServerUnreachable, err)
	}

	h.log.Debug("Получен ответ", "status", resp.StatusCode, "body", string(body))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusConflict:
		return ErrDuplicateLogin
	case resp.StatusCode >= 400:
		var p problem
		if err := json.Unmarshal(body, &p); err == nil && p.Detail != "" {
			return fmt.Errorf("%w: %d %s", ErrUnknown, resp.StatusCode, p.Detail)
		}
		return fmt.Errorf("%w: статус %d", ErrUnknown, resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("%w: ошибка парсинга ответа: %v", ErrUnknown, err)
		}
	}

	return nil
}
