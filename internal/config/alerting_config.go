package config

import (
	"time"

	"github.com/Kargones/hanadb-exporter/internal/pkg/alerting"
)

// AlertingConfig содержит настройки алертинга.
type AlertingConfig struct {
	// Enabled — включён ли алертинг.
	Enabled bool `yaml:"enabled" env:"HE_ALERTING_ENABLED" env-default:"false"`

	// RateLimitWindow — минимальный интервал между алертами с одним кодом.
	RateLimitWindow time.Duration `yaml:"rateLimitWindow" env:"HE_ALERTING_RATE_LIMIT_WINDOW" env-default:"5m"`

	Webhook WebhookConfig `yaml:"webhook"`
}

// WebhookConfig содержит настройки webhook канала.
type WebhookConfig struct {
	Enabled bool `yaml:"enabled" env:"HE_ALERTING_WEBHOOK_ENABLED" env-default:"false"`

	// URLs — адреса webhook, в env через запятую.
	URLs []string `yaml:"urls" env:"HE_ALERTING_WEBHOOK_URLS" env-separator:","`

	// Headers — дополнительные HTTP заголовки.
	Headers map[string]string `yaml:"headers"`

	Timeout time.Duration `yaml:"timeout" env:"HE_ALERTING_WEBHOOK_TIMEOUT" env-default:"10s"`
}

// ToAlerting возвращает настройки пакета alerting.
func (a AlertingConfig) ToAlerting() alerting.Config {
	return alerting.Config{
		Enabled:         a.Enabled,
		RateLimitWindow: a.RateLimitWindow,
		Webhook: alerting.WebhookConfig{
			Enabled: a.Webhook.Enabled,
			URLs:    a.Webhook.URLs,
			Headers: a.Webhook.Headers,
			Timeout: a.Webhook.Timeout,
		},
	}
}
