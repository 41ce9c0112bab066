package alerting

import (
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
)

// NewAlerter создаёт Alerter на основе конфигурации.
// Если alerting отключён или webhook канал не настроен — возвращает NopAlerter.
func NewAlerter(config Config, logger logging.Logger) (Alerter, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if !config.Enabled {
		return NewNopAlerter(), nil
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if !config.Webhook.Enabled {
		logger.Warn("alerting включён, но нет настроенных каналов — используется NopAlerter")
		return NewNopAlerter(), nil
	}

	window := config.RateLimitWindow
	if window == 0 {
		window = DefaultRateLimitWindow
	}

	return NewWebhookAlerter(config.Webhook, NewRateLimiter(window), logger)
}
