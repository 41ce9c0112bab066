// Package metricsconfig описывает набор запросов и метрик экспортёра.
//
// Конфигурация строится один раз функцией Load/LoadFile и дальше только читается:
// оркестратор сбора получает неизменяемый снимок, при перезагрузке снимок
// заменяется целиком.
package metricsconfig

import "slices"

// MetricType — тип метрики в том виде, как он записан в конфигурации.
type MetricType string

// TypeGauge — единственный поддерживаемый тип метрики.
const TypeGauge MetricType = "gauge"

// Kind — закрытое перечисление поддерживаемых видов метрик.
type Kind int

const (
	// KindGauge — мгновенное значение без накопления.
	KindGauge Kind = iota + 1
)

// String возвращает имя вида метрики.
func (k Kind) String() string {
	switch k {
	case KindGauge:
		return string(TypeGauge)
	default:
		return "unknown"
	}
}

// Metric описывает одну метрику, получаемую из результата запроса.
type Metric struct {
	// Name — имя метрики, уникальное в пределах запроса.
	Name string `json:"name"`
	// Description — текст HELP.
	Description string `json:"description"`
	// Labels — имена колонок, значения которых становятся label-ами (порядок важен).
	Labels []string `json:"labels"`
	// Value — имя колонки с числовым значением. Пустое значение недопустимо,
	// но проверяется при проекции, а не при загрузке.
	Value string `json:"value"`
	// Unit — единица измерения, добавляется суффиксом к имени метрики.
	Unit string `json:"unit"`
	// Type — тип метрики из конфигурации.
	Type MetricType `json:"type"`
	// Enabled — участвует ли метрика в сборе (по умолчанию true).
	Enabled bool `json:"enabled"`
}

// Kind разрешает Type в закрытое перечисление.
// Для неподдерживаемого типа возвращает *UnsupportedMetricTypeError.
func (m Metric) Kind() (Kind, error) {
	switch m.Type {
	case TypeGauge:
		return KindGauge, nil
	default:
		return 0, &UnsupportedMetricTypeError{Metric: m.Name, Type: string(m.Type)}
	}
}

// Query — SQL запрос и метрики, строящиеся по его результату.
type Query struct {
	// Text — текст SQL запроса, естественный ключ.
	Text string `json:"-"`
	// Enabled — выполняется ли запрос (по умолчанию true).
	Enabled bool `json:"enabled"`
	// Metrics — метрики в порядке объявления.
	Metrics []Metric `json:"metrics"`
}

// queryPrefixLen — сколько символов запроса показывать в логах и ошибках.
const queryPrefixLen = 50

// Prefix возвращает начало текста запроса для логов и ошибок.
func (q Query) Prefix() string {
	return textPrefix(q.Text)
}

func textPrefix(text string) string {
	runes := []rune(text)
	if len(runes) > queryPrefixLen {
		return string(runes[:queryPrefixLen])
	}
	return text
}

// Config — упорядоченный неизменяемый набор запросов.
type Config struct {
	queries []Query
}

// Queries возвращает копию списка запросов в порядке загрузки.
func (c *Config) Queries() []Query {
	if c == nil {
		return nil
	}
	return slices.Clone(c.queries)
}

// Len возвращает количество запросов.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.queries)
}

// Query ищет запрос по тексту.
func (c *Config) Query(text string) (Query, bool) {
	if c == nil {
		return Query{}, false
	}
	for _, q := range c.queries {
		if q.Text == text {
			return q, true
		}
	}
	return Query{}, false
}
