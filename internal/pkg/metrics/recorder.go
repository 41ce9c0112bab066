// Package metrics предоставляет собственные метрики экспортёра
// (длительность проходов, запросов, счётчики ошибок и отправок)
// и их отправку в Prometheus Pushgateway.
//
//   - Interface Segregation: Recorder для абстракции
//   - Factory pattern: NewRecorder выбирает реализацию на основе конфигурации
//   - Graceful degradation: NopRecorder при отключённых метриках
package metrics

import (
	"context"
	"time"
)

// Стадии, по которым считаются ошибки сбора.
const (
	StageQuery      = "query"
	StageProjection = "projection"
	StageIngest     = "ingest"
)

// Recorder определяет интерфейс для записи собственных метрик экспортёра.
// Реализации: PrometheusRecorder (активный) и NopRecorder (no-op).
type Recorder interface {
	// ObservePass записывает длительность полного прохода по запросам.
	// exporter — тип экспортёра (prometheus, azure).
	ObservePass(exporter string, duration time.Duration, success bool)

	// ObserveQuery записывает длительность выполнения одного запроса.
	ObserveQuery(duration time.Duration, success bool)

	// RecordError увеличивает счётчик ошибок на стадии stage.
	RecordError(stage string)

	// RecordIngest записывает результат отправки данных в Log Analytics.
	RecordIngest(success bool)

	// Push отправляет метрики в Pushgateway, если он настроен.
	// Ошибки логируются внутри реализации, метод всегда возвращает nil.
	Push(ctx context.Context) error
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
