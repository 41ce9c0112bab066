// Package collection выполняет проход по настроенным запросам.
//
// Проход ленивый и однократный: Pass возвращает итератор, каждый вызов которого
// заново выполняет все включённые запросы в порядке конфигурации. Отключённые
// запросы только логируются. Решение, что делать с ошибкой запроса, принимает
// потребитель (экспортёр).
package collection

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb"
	"github.com/Kargones/hanadb-exporter/internal/metricsconfig"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/Kargones/hanadb-exporter/internal/pkg/metrics"
	"github.com/Kargones/hanadb-exporter/internal/pkg/tracing"
)

// ErrNoConfig возвращается при создании оркестратора без конфигурации.
var ErrNoConfig = errors.New("collection: metrics config is required")

// QueryResult — результат одного запроса прохода.
// При ошибке запроса Result равен nil, Query заполнен всегда.
type QueryResult struct {
	Query    metricsconfig.Query
	Result   *sqldb.RawResult
	Duration time.Duration
}

// Orchestrator выполняет запросы конфигурации через QueryExecutor.
type Orchestrator struct {
	config   atomic.Pointer[metricsconfig.Config]
	executor sqldb.QueryExecutor
	recorder metrics.Recorder
	logger   logging.Logger
}

// New создаёт Orchestrator. recorder и logger могут быть nil.
func New(cfg *metricsconfig.Config, executor sqldb.QueryExecutor, recorder metrics.Recorder, logger logging.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}
	if executor == nil {
		return nil, errors.New("collection: query executor is required")
	}
	if recorder == nil {
		recorder = metrics.NewNopRecorder()
	}
	o := &Orchestrator{
		executor: executor,
		recorder: recorder,
		logger:   logging.ForComponent(logger, "collection"),
	}
	o.config.Store(cfg)
	return o, nil
}

// Config возвращает текущий снимок конфигурации.
func (o *Orchestrator) Config() *metricsconfig.Config {
	return o.config.Load()
}

// Reload заменяет снимок конфигурации. Уже начатые проходы дочитывают старый снимок.
func (o *Orchestrator) Reload(cfg *metricsconfig.Config) error {
	if cfg == nil {
		return ErrNoConfig
	}
	o.config.Store(cfg)
	o.logger.Info("конфигурация метрик заменена", "queries", cfg.Len())
	return nil
}

// Pass возвращает итератор по результатам включённых запросов.
// Каждый включённый запрос выполняется ровно один раз за итерацию.
// Ошибка запроса отдаётся вместе с QueryResult; остановка итерации
// потребителем прекращает проход.
func (o *Orchestrator) Pass(ctx context.Context) iter.Seq2[*QueryResult, error] {
	return func(yield func(*QueryResult, error) bool) {
		snapshot := o.config.Load()

		for _, q := range snapshot.Queries() {
			if !q.Enabled {
				o.logger.Info("запрос отключён, пропуск", "query", q.Prefix())
				continue
			}

			if err := ctx.Err(); err != nil {
				yield(&QueryResult{Query: q}, err)
				return
			}

			res, err := o.execute(ctx, q)
			if !yield(res, err) {
				return
			}
		}
	}
}

func (o *Orchestrator) execute(ctx context.Context, q metricsconfig.Query) (*QueryResult, error) {
	ctx, span := tracing.StartSpan(ctx, "collection.query", tracing.AttrQuery.String(q.Prefix()))

	o.logger.Debug("выполнение запроса", "query", q.Prefix())
	start := time.Now()
	result, err := o.executor.Execute(ctx, q.Text)
	duration := time.Since(start)

	o.recorder.ObserveQuery(duration, err == nil)
	if err != nil {
		o.recorder.RecordError(metrics.StageQuery)
		o.logger.Error("ошибка выполнения запроса",
			"query", q.Prefix(), "duration_ms", duration.Milliseconds(), "error", err.Error())
		tracing.EndSpan(span, err)
		return &QueryResult{Query: q, Duration: duration}, err
	}

	if result == nil {
		result = &sqldb.RawResult{}
	}
	span.SetAttributes(tracing.AttrRows.Int(len(result.Rows)))
	tracing.EndSpan(span, nil)
	o.logger.Debug("запрос выполнен",
		"query", q.Prefix(), "rows", len(result.Rows), "duration_ms", duration.Milliseconds())
	return &QueryResult{Query: q, Result: result, Duration: duration}, nil
}
