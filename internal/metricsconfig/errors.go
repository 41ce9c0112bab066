package metricsconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig — общий признак ошибки конфигурации метрик (errors.Is).
	ErrConfig = errors.New("metrics config")

	// ErrNotMapping — верхний уровень конфигурации не является объектом.
	ErrNotMapping = errors.New("верхний уровень должен быть объектом {\"<query>\": {...}}")

	// ErrUnsupportedMetricType — признак неподдерживаемого типа метрики (errors.Is).
	ErrUnsupportedMetricType = errors.New("unsupported metric type")
)

// ConfigError описывает ошибку разбора конфигурации.
// Query содержит начало текста запроса, который не удалось разобрать
// (пусто для ошибок верхнего уровня).
type ConfigError struct {
	Query string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Query == "" {
		return fmt.Sprintf("metrics config: %v", e.Err)
	}
	return fmt.Sprintf("metrics config: query %q ...: %v", e.Query, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is позволяет проверять любую ошибку разбора через errors.Is(err, ErrConfig).
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// UnsupportedMetricTypeError — метрика объявлена с типом, который экспортёр не умеет строить.
type UnsupportedMetricTypeError struct {
	Metric string
	Type   string
}

func (e *UnsupportedMetricTypeError) Error() string {
	return fmt.Sprintf("metric %s: type %q not implemented", e.Metric, e.Type)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrUnsupportedMetricType).
func (e *UnsupportedMetricTypeError) Is(target error) bool {
	return target == ErrUnsupportedMetricType
}
