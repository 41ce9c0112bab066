package config

import (
	"time"

	"github.com/Kargones/hanadb-exporter/internal/pkg/metrics"
)

// SelfMetricsConfig содержит настройки собственных метрик экспортёра.
type SelfMetricsConfig struct {
	// Enabled — регистрировать ли собственные метрики.
	Enabled bool `yaml:"enabled" env:"HE_SELF_METRICS_ENABLED" env-default:"true"`

	// PushgatewayURL — URL Pushgateway; пусто — метрики только на /metrics.
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"HE_PUSHGATEWAY_URL"`

	// JobName — имя job в Pushgateway.
	JobName string `yaml:"jobName" env:"HE_PUSHGATEWAY_JOB" env-default:"hanadb-exporter"`

	// Timeout — таймаут запросов к Pushgateway.
	Timeout time.Duration `yaml:"timeout" env:"HE_PUSHGATEWAY_TIMEOUT" env-default:"10s"`

	// InstanceLabel — переопределение instance label (по умолчанию hostname).
	InstanceLabel string `yaml:"instanceLabel" env:"HE_PUSHGATEWAY_INSTANCE"`
}

// ToMetrics возвращает настройки пакета metrics.
func (m SelfMetricsConfig) ToMetrics() metrics.Config {
	return metrics.Config{
		Enabled:        m.Enabled,
		PushgatewayURL: m.PushgatewayURL,
		JobName:        m.JobName,
		Timeout:        m.Timeout,
		InstanceLabel:  m.InstanceLabel,
	}
}
