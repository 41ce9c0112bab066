package alerting

import (
	"net/url"
	"time"
)

// Значения по умолчанию для конфигурации alerting.
const (
	// DefaultRateLimitWindow — интервал между алертами одного типа по умолчанию.
	DefaultRateLimitWindow = 5 * time.Minute

	// DefaultWebhookTimeout — таймаут HTTP запросов по умолчанию.
	DefaultWebhookTimeout = 10 * time.Second
)

// Config содержит настройки для пакета alerting.
type Config struct {
	// Enabled — включён ли алертинг (по умолчанию false).
	Enabled bool

	// RateLimitWindow — минимальный интервал между алертами одного типа.
	// По умолчанию: 5 минут.
	RateLimitWindow time.Duration

	// Webhook — конфигурация webhook канала.
	Webhook WebhookConfig
}

// WebhookConfig содержит настройки webhook канала.
type WebhookConfig struct {
	// Enabled — включён ли webhook канал.
	Enabled bool

	// URLs — список URL для отправки webhook.
	URLs []string

	// Headers — дополнительные HTTP заголовки.
	Headers map[string]string

	// Timeout — таймаут HTTP запросов.
	Timeout time.Duration
}

// DefaultConfig возвращает конфигурацию с значениями по умолчанию.
// Alerting отключён по умолчанию.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		RateLimitWindow: DefaultRateLimitWindow,
		Webhook: WebhookConfig{
			Enabled: false,
			Timeout: DefaultWebhookTimeout,
		},
	}
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	return c.Webhook.Validate()
}

// Validate проверяет корректность WebhookConfig.
func (w *WebhookConfig) Validate() error {
	if !w.Enabled {
		return nil
	}
	if len(w.URLs) == 0 {
		return ErrWebhookURLRequired
	}
	for _, rawURL := range w.URLs {
		u, err := url.Parse(rawURL)
		if err != nil || u.Host == "" {
			return ErrWebhookURLInvalid
		}
		// Только http и https: file://, ftp:// и прочие схемы запрещены.
		if u.Scheme != "http" && u.Scheme != "https" {
			return ErrWebhookURLInvalid
		}
	}
	for key, value := range w.Headers {
		if containsInvalidHTTPHeaderChars(key) || containsInvalidHTTPHeaderChars(value) {
			return ErrWebhookHeaderInvalid
		}
	}
	return nil
}

// containsInvalidHTTPHeaderChars: по RFC 7230 в заголовке разрешён HTAB,
// остальные control characters запрещены.
func containsInvalidHTTPHeaderChars(s string) bool {
	for _, r := range s {
		if r == 0x09 {
			continue
		}
		if r <= 0x1f || r == 0x7f {
			return true
		}
	}
	return false
}
