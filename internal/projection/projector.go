// Package projection превращает табличный результат запроса в значения метрики.
package projection

import (
	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb"
	"github.com/Kargones/hanadb-exporter/internal/metricsconfig"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
)

// Sample — одно значение метрики, полученное из строки результата.
type Sample struct {
	// LabelValues — значения label-ов в порядке Metric.Labels.
	LabelValues []string
	// Value — числовое значение.
	Value float64
}

// Projector строит Sample по описанию метрики и результату запроса.
type Projector struct {
	logger logging.Logger
}

// New создаёт Projector. При nil logger используется NopLogger.
func New(logger logging.Logger) *Projector {
	return &Projector{logger: logging.ForComponent(logger, "projection")}
}

// Project возвращает по одному Sample на каждую строку результата в порядке строк.
//
// Пустой metric.Value — ошибка независимо от числа строк. Отсутствие любой
// колонки из labels или value в result.Columns, как и строка без нужной
// ячейки, — ошибка для всей метрики.
// Строки с NULL в колонке value пропускаются.
func (p *Projector) Project(metric metricsconfig.Metric, result *sqldb.RawResult) ([]Sample, error) {
	if metric.Value == "" {
		return nil, &MissingValueColumnError{Metric: metric.Name}
	}
	if result == nil {
		result = &sqldb.RawResult{}
	}

	index := result.ColumnIndex()

	labelIdx := make([]int, len(metric.Labels))
	for i, label := range metric.Labels {
		idx, ok := index[label]
		if !ok {
			return nil, &MissingLabelColumnError{Metric: metric.Name, Column: label}
		}
		labelIdx[i] = idx
	}

	valueIdx, ok := index[metric.Value]
	if !ok {
		return nil, &MissingValueColumnError{Metric: metric.Name, Column: metric.Value}
	}

	samples := make([]Sample, 0, len(result.Rows))
	for rowNum, row := range result.Rows {
		if valueIdx >= len(row) {
			return nil, &ShortRowError{Metric: metric.Name, Row: rowNum, Column: metric.Value, Cells: len(row)}
		}
		for i, idx := range labelIdx {
			if idx >= len(row) {
				return nil, &ShortRowError{Metric: metric.Name, Row: rowNum, Column: metric.Labels[i], Cells: len(row)}
			}
		}

		raw := row[valueIdx]
		if raw == nil {
			p.logger.Debug("пропуск строки с NULL значением",
				"metric", metric.Name, "column", metric.Value, "row", rowNum)
			continue
		}

		value, ok := toFloat(raw)
		if !ok {
			return nil, &NonNumericValueError{Metric: metric.Name, Column: metric.Value, Row: rowNum, Value: raw}
		}

		labels := make([]string, len(labelIdx))
		for i, idx := range labelIdx {
			labels[i] = labelValue(row[idx])
		}
		samples = append(samples, Sample{LabelValues: labels, Value: value})
	}

	p.logger.Debug("метрика построена", "metric", metric.Name, "samples", len(samples))
	return samples, nil
}
