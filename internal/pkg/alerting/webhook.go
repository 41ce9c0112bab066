package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/Kargones/hanadb-exporter/internal/pkg/urlutil"
)

// maxResponseBodySize — максимальный размер тела HTTP ответа для диагностики (1 KB).
const maxResponseBodySize = 1024

// WebhookAlerter реализует Alerter для отправки через HTTP webhook.
// Каждый URL получает ровно одну попытку доставки.
type WebhookAlerter struct {
	config      WebhookConfig
	rateLimiter *RateLimiter
	logger      logging.Logger
	httpClient  HTTPClient
	hostname    string
}

// WebhookPayload представляет JSON payload для webhook.
type WebhookPayload struct {
	ErrorCode string    `json:"error_code"`
	Message   string    `json:"message"`
	TraceID   string    `json:"trace_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Exporter  string    `json:"exporter"`
	Query     string    `json:"query,omitempty"`
	Severity  string    `json:"severity"`
	Source    string    `json:"source"`
	Hostname  string    `json:"hostname,omitempty"`
}

// httpError представляет ответ webhook с не-2xx статусом.
type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// NewWebhookAlerter создаёт WebhookAlerter.
// rateLimiter может быть nil — тогда частота не ограничивается.
func NewWebhookAlerter(config WebhookConfig, rateLimiter *RateLimiter, logger logging.Logger) (*WebhookAlerter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultWebhookTimeout
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &WebhookAlerter{
		config:      config,
		rateLimiter: rateLimiter,
		logger:      logger,
		httpClient:  &http.Client{Timeout: timeout},
		hostname:    hostname,
	}, nil
}

// SetHTTPClient устанавливает кастомный HTTPClient (для тестирования).
func (w *WebhookAlerter) SetHTTPClient(client HTTPClient) {
	w.httpClient = client
}

// Send отправляет алерт на все URL. Ошибки логируются, возвращается nil.
func (w *WebhookAlerter) Send(ctx context.Context, alert Alert) error {
	if w.rateLimiter != nil && !w.rateLimiter.Allow(alert.ErrorCode) {
		w.logger.Debug("алерт подавлен rate limiter", "error_code", alert.ErrorCode)
		return nil
	}

	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now()
	}
	body, err := json.Marshal(w.createPayload(alert))
	if err != nil {
		w.logger.Error("ошибка сериализации алерта", "error", err.Error())
		return nil
	}

	successCount := 0
	for i, url := range w.config.URLs {
		if ctx.Err() != nil {
			w.logger.Debug("отправка webhook алерта отменена",
				"error_code", alert.ErrorCode,
				"remaining_urls", len(w.config.URLs)-i,
			)
			return nil
		}

		if err := w.sendRequest(ctx, url, body); err != nil {
			w.logger.Error("ошибка отправки webhook алерта",
				"error", err.Error(),
				"url", urlutil.MaskURL(url),
				"error_code", alert.ErrorCode,
			)
			continue
		}
		successCount++
	}

	if successCount > 0 {
		w.logger.Info("webhook алерт отправлен",
			"error_code", alert.ErrorCode,
			"severity", alert.Severity.String(),
			"urls_success", successCount,
			"urls_total", len(w.config.URLs),
		)
	} else {
		w.logger.Warn("webhook алерт не доставлен ни на один URL",
			"error_code", alert.ErrorCode,
			"urls_total", len(w.config.URLs),
		)
	}
	return nil
}

func (w *WebhookAlerter) createPayload(alert Alert) WebhookPayload {
	return WebhookPayload{
		ErrorCode: alert.ErrorCode,
		Message:   alert.Message,
		TraceID:   alert.TraceID,
		Timestamp: alert.Timestamp,
		Exporter:  alert.Exporter,
		Query:     alert.Query,
		Severity:  alert.Severity.String(),
		Source:    constants.AppName,
		Hostname:  w.hostname,
	}
}

func (w *WebhookAlerter) sendRequest(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constants.UserAgent())
	for key, value := range w.config.Headers {
		req.Header.Set(key, value)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Дренируем body для переиспользования keep-alive соединений.
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	return &httpError{StatusCode: resp.StatusCode, Body: string(respBody)}
}
