package tracing

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

var (
	// ErrTracingEndpoint — endpoint не задан или не является http(s) URL с host.
	ErrTracingEndpoint = errors.New("tracing: endpoint должен быть http(s) URL с host, например http://jaeger:4318")

	// ErrTracingTimeoutInvalid — timeout экспорта должен быть положительным.
	ErrTracingTimeoutInvalid = errors.New("tracing: timeout должен быть положительным")

	// ErrTracingSamplingRateInvalid — sampling rate вне диапазона [0.0, 1.0].
	ErrTracingSamplingRateInvalid = errors.New("tracing: sampling rate должен быть от 0.0 до 1.0")
)

// Config — настройки TracerProvider экспортёра.
// Значения по умолчанию задаёт секция tracing конфигурации приложения.
type Config struct {
	Enabled bool

	// Endpoint — OTLP HTTP collector. Схема http отключает TLS.
	Endpoint string

	// ServiceName, Version и Environment попадают в resource attributes.
	ServiceName string
	Version     string
	Environment string

	// Timeout — таймаут отправки батча spans.
	Timeout time.Duration

	// SamplingRate — доля сэмплируемых проходов сбора (0.0 — ни один, 1.0 — все).
	SamplingRate float64
}

// Validate проверяет настройки включённого трейсинга.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if _, _, err := c.target(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return ErrTracingTimeoutInvalid
	}
	if c.SamplingRate < 0.0 || c.SamplingRate > 1.0 {
		return fmt.Errorf("%w, получено: %g", ErrTracingSamplingRateInvalid, c.SamplingRate)
	}
	return nil
}

// target возвращает host:port для otlptracehttp и признак отправки без TLS.
func (c *Config) target() (host string, insecure bool, err error) {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Host == "" {
		return "", false, fmt.Errorf("%w, получено: %q", ErrTracingEndpoint, c.Endpoint)
	}
	switch u.Scheme {
	case "http":
		return u.Host, true, nil
	case "https":
		return u.Host, false, nil
	default:
		return "", false, fmt.Errorf("%w, получено: %q", ErrTracingEndpoint, c.Endpoint)
	}
}
