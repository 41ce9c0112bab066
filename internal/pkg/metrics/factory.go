package metrics

import (
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRecorder создаёт Recorder на основе конфигурации.
// Если метрики отключены (Config.Enabled = false) — возвращает NopRecorder,
// иначе PrometheusRecorder, зарегистрированный в registry.
func NewRecorder(config Config, registry *prometheus.Registry, logger logging.Logger) (Recorder, error) {
	if !config.Enabled {
		return NewNopRecorder(), nil
	}

	return NewPrometheusRecorder(config, registry, logger)
}
