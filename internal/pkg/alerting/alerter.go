// Package alerting отправляет алерты о сбоях сбора и отправки данных.
// Канал доставки — HTTP webhook; частота ограничивается RateLimiter по коду ошибки.
package alerting

import (
	"context"
	"net/http"
	"time"
)

// Severity определяет уровень критичности алерта.
type Severity int

const (
	// SeverityInfo — информационный алерт.
	SeverityInfo Severity = iota
	// SeverityWarning — предупреждающий алерт.
	SeverityWarning
	// SeverityCritical — критический алерт.
	SeverityCritical
)

// String возвращает строковое представление Severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Alert представляет данные для отправки алерта.
type Alert struct {
	// ErrorCode — код ошибки для rate limiting и идентификации (например INGEST.FAILED).
	ErrorCode string

	// Message — человекочитаемое сообщение об ошибке.
	Message string

	// TraceID — идентификатор цикла сбора для корреляции логов.
	TraceID string

	// Timestamp — время возникновения ошибки.
	Timestamp time.Time

	// Exporter — тип экспортёра (prometheus, azure).
	Exporter string

	// Query — начало текста запроса, если ошибка относится к запросу.
	Query string

	// Severity — уровень критичности алерта.
	Severity Severity
}

// Alerter определяет интерфейс для отправки алертов.
// Реализации: WebhookAlerter, NopAlerter.
//
// Send всегда возвращает nil: ошибки доставки логируются и не прерывают сбор.
// Повторная отправка алерта с тем же ErrorCode в пределах окна RateLimiter подавляется.
type Alerter interface {
	Send(ctx context.Context, alert Alert) error
}

// HTTPClient определяет интерфейс HTTP клиента для тестирования.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
