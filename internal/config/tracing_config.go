package config

import (
	"time"

	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/pkg/tracing"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled включает отправку трейсов в OTLP бэкенд.
	Enabled bool `yaml:"enabled" env:"HE_TRACING_ENABLED" env-default:"false"`

	// Endpoint — URL OTLP HTTP endpoint (например, http://jaeger:4318).
	// Схема http отправляет spans без TLS, https — с TLS.
	Endpoint string `yaml:"endpoint" env:"HE_TRACING_ENDPOINT"`

	// ServiceName — имя сервиса для resource attributes.
	ServiceName string `yaml:"serviceName" env:"HE_TRACING_SERVICE_NAME" env-default:"hanadb-exporter"`

	// Environment — окружение (production, staging, development).
	Environment string `yaml:"environment" env:"HE_TRACING_ENVIRONMENT" env-default:"production"`

	// Timeout — таймаут для экспорта трейсов.
	Timeout time.Duration `yaml:"timeout" env:"HE_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate — доля сэмплируемых трейсов (0.0 — ни один, 1.0 — все).
	SamplingRate float64 `yaml:"samplingRate" env:"HE_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

// ToTracing возвращает настройки пакета tracing.
func (t TracingConfig) ToTracing() tracing.Config {
	return tracing.Config{
		Enabled:      t.Enabled,
		Endpoint:     t.Endpoint,
		ServiceName:  t.ServiceName,
		Version:      constants.Version,
		Environment:  t.Environment,
		Timeout:      t.Timeout,
		SamplingRate: t.SamplingRate,
	}
}
