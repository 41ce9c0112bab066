package config

import (
	"io"

	"github.com/Kargones/hanadb-exporter/internal/pkg/urlutil"

	"gopkg.in/yaml.v3"
)

// Redacted возвращает копию конфигурации со скрытыми секретами.
func (c *Config) Redacted() Config {
	out := *c
	out.Database.Password = mask(c.Database.Password, urlutil.MaskSecret)
	out.Database.DSN = mask(c.Database.DSN, urlutil.MaskDSN)
	out.Azure.SharedKey = mask(c.Azure.SharedKey, urlutil.MaskSecret)
	out.Azure.URI = mask(c.Azure.URI, urlutil.MaskURL)
	out.SelfMetrics.PushgatewayURL = mask(c.SelfMetrics.PushgatewayURL, urlutil.MaskURL)
	if len(c.Alerting.Webhook.URLs) > 0 {
		out.Alerting.Webhook.URLs = make([]string, len(c.Alerting.Webhook.URLs))
		for i, u := range c.Alerting.Webhook.URLs {
			out.Alerting.Webhook.URLs[i] = urlutil.MaskURL(u)
		}
	}
	if len(c.Alerting.Webhook.Headers) > 0 {
		out.Alerting.Webhook.Headers = make(map[string]string, len(c.Alerting.Webhook.Headers))
		for k, v := range c.Alerting.Webhook.Headers {
			out.Alerting.Webhook.Headers[k] = urlutil.MaskSecret(v)
		}
	}
	return out
}

// mask оставляет пустые значения пустыми.
func mask(v string, fn func(string) string) string {
	if v == "" {
		return ""
	}
	return fn(v)
}

// Dump записывает конфигурацию в YAML без секретов.
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	redacted := c.Redacted()
	if err := enc.Encode(&redacted); err != nil {
		return err
	}
	return enc.Close()
}
