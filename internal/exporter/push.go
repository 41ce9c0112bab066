package exporter

import (
	"context"
	"errors"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/exporter/azure"
	"github.com/Kargones/hanadb-exporter/internal/pkg/alerting"
	"github.com/Kargones/hanadb-exporter/internal/pkg/apperrors"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/Kargones/hanadb-exporter/internal/pkg/metrics"
	"github.com/Kargones/hanadb-exporter/internal/pkg/tracing"
)

// DefaultInterval — период push цикла по умолчанию.
const DefaultInterval = 60 * time.Second

// Exportable — приёмник, отправляющий данные за один вызов.
type Exportable interface {
	Export(ctx context.Context) error
}

// PushRunner периодически вызывает Export. Первый экспорт выполняется сразу.
// Ошибки цикла логируются и отправляются алертом, цикл продолжается.
type PushRunner struct {
	target   Exportable
	interval time.Duration
	recorder metrics.Recorder
	alerter  alerting.Alerter
	logger   logging.Logger
}

// NewPushRunner создаёт PushRunner. nil зависимости заменяются no-op реализациями.
func NewPushRunner(target Exportable, interval time.Duration, recorder metrics.Recorder,
	alerter alerting.Alerter, logger logging.Logger) *PushRunner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if recorder == nil {
		recorder = metrics.NewNopRecorder()
	}
	if alerter == nil {
		alerter = alerting.NewNopAlerter()
	}
	return &PushRunner{
		target:   target,
		interval: interval,
		recorder: recorder,
		alerter:  alerter,
		logger:   logging.ForComponent(logger, "push-runner"),
	}
}

// Interval возвращает период цикла.
func (r *PushRunner) Interval() time.Duration {
	return r.interval
}

// Run выполняет циклы до отмены ctx. Возвращает nil при отмене.
func (r *PushRunner) Run(ctx context.Context) error {
	r.logger.Info("push цикл запущен", "interval", r.interval.String())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("push цикл остановлен")
			return nil
		case <-ticker.C:
			r.cycle(ctx)
		}
	}
}

// cycle выполняет один экспорт со своим trace_id.
func (r *PushRunner) cycle(ctx context.Context) {
	traceID := tracing.GenerateTraceID()
	ctx = tracing.WithTraceID(ctx, traceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)
	logger := r.logger.With("trace_id", traceID)

	err := r.target.Export(ctx)
	// Pushgateway получает метрики и после неудачного цикла.
	_ = r.recorder.Push(context.WithoutCancel(ctx))

	if err == nil {
		return
	}
	if ctx.Err() != nil {
		logger.Debug("экспорт прерван остановкой", "error", err.Error())
		return
	}

	logger.Error("ошибка экспорта", "error", err.Error())
	_ = r.alerter.Send(ctx, alerting.Alert{
		ErrorCode: alertCode(err),
		Message:   err.Error(),
		TraceID:   traceID,
		Timestamp: time.Now(),
		Exporter:  constants.ExporterAzure,
		Severity:  alerting.SeverityCritical,
	})
}

// alertCode различает отказ приёма данных и ошибку сбора.
func alertCode(err error) string {
	if errors.Is(err, azure.ErrIngest) {
		return apperrors.ErrIngestFailed
	}
	if code := apperrors.CodeOf(err); code != "" {
		return code
	}
	return apperrors.ErrExporterRun
}
