package metrics

import (
	"net/url"
	"os"
	"time"
)

// Config — настройки собственных метрик экспортёра.
// Метрики всегда отдаются на /metrics. Pushgateway нужен, когда между
// проходами azure экспортёра никто не делает scrape.
type Config struct {
	Enabled bool

	// PushgatewayURL, например http://pushgateway:9091. Пусто — push выключен.
	PushgatewayURL string

	// JobName — job в Pushgateway.
	JobName string

	// Timeout одного push.
	Timeout time.Duration

	// InstanceLabel — grouping label instance; пусто — hostname.
	InstanceLabel string
}

func (c *Config) pushEnabled() bool {
	return c.Enabled && c.PushgatewayURL != ""
}

// Validate проверяет push настройки, если Pushgateway задан.
func (c *Config) Validate() error {
	if !c.pushEnabled() {
		return nil
	}
	if u, err := url.Parse(c.PushgatewayURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}
	if c.JobName == "" {
		return ErrJobNameRequired
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// instance возвращает значение grouping label instance.
func (c *Config) instance() (string, error) {
	if c.InstanceLabel != "" {
		return c.InstanceLabel, nil
	}
	return os.Hostname()
}

// DefaultConfig — метрики включены, push выключен.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		JobName: "hanadb-exporter",
		Timeout: 10 * time.Second,
	}
}
