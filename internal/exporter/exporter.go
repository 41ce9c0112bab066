// Package exporter выбирает активный приёмник результатов запросов
// (prometheus или azure) и запускает push цикл для azure.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/exporter/azure"
	"github.com/Kargones/hanadb-exporter/internal/exporter/promexporter"
	"github.com/Kargones/hanadb-exporter/internal/pkg/alerting"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/Kargones/hanadb-exporter/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrUnknownExporter — неизвестный тип экспортёра.
var ErrUnknownExporter = errors.New("unknown exporter type")

// AzureSettings — параметры azure приёмника.
type AzureSettings struct {
	WorkspaceID string
	SharedKey   string
	URI         string
	LogType     string
	Interval    time.Duration
	Timeout     time.Duration
}

// Deps содержит зависимости приёмников.
type Deps struct {
	// Source — оркестратор прохода по запросам.
	Source interface {
		promexporter.Source
		azure.Source
	}
	// Registry — registry, который отдаётся на /metrics.
	Registry *prometheus.Registry
	Recorder metrics.Recorder
	Alerter  alerting.Alerter
	Logger   logging.Logger
	// ScrapeTimeout — ограничение длительности прохода при scrape.
	ScrapeTimeout time.Duration
	Azure         AzureSettings
	// HTTPClient — клиент для azure; nil — http.Client с Azure.Timeout.
	HTTPClient azure.HTTPClient
}

// Exporter — выбранный приёмник.
// Для prometheus заполнен Collector (уже зарегистрирован в Registry),
// для azure заполнен Runner.
type Exporter struct {
	Kind      string
	Collector *promexporter.Collector
	Runner    *PushRunner
}

// IsPush сообщает, работает ли приёмник по push модели.
func (e *Exporter) IsPush() bool {
	return e.Runner != nil
}

// Run запускает push цикл. Для pull приёмника ждёт отмены ctx:
// данные отдаёт HTTP сервер.
func (e *Exporter) Run(ctx context.Context) error {
	if e.Runner != nil {
		return e.Runner.Run(ctx)
	}
	<-ctx.Done()
	return nil
}

// New создаёт приёмник по типу kind.
func New(kind string, deps Deps) (*Exporter, error) {
	if deps.Source == nil {
		return nil, errors.New("exporter: source is required")
	}

	switch kind {
	case constants.ExporterPrometheus:
		if deps.Registry == nil {
			return nil, errors.New("exporter: registry is required")
		}
		collector, err := promexporter.New(promexporter.Options{
			Source:        deps.Source,
			Recorder:      deps.Recorder,
			Alerter:       deps.Alerter,
			Logger:        deps.Logger,
			ScrapeTimeout: deps.ScrapeTimeout,
		})
		if err != nil {
			return nil, err
		}
		if err := deps.Registry.Register(collector); err != nil {
			return nil, fmt.Errorf("exporter: register collector: %w", err)
		}
		return &Exporter{Kind: kind, Collector: collector}, nil

	case constants.ExporterAzure:
		collector, err := azure.New(azure.Options{
			Source:      deps.Source,
			WorkspaceID: deps.Azure.WorkspaceID,
			SharedKey:   deps.Azure.SharedKey,
			URI:         deps.Azure.URI,
			LogType:     deps.Azure.LogType,
			Timeout:     deps.Azure.Timeout,
			HTTPClient:  deps.HTTPClient,
			Recorder:    deps.Recorder,
			Logger:      deps.Logger,
		})
		if err != nil {
			return nil, err
		}
		runner := NewPushRunner(collector, deps.Azure.Interval, deps.Recorder, deps.Alerter, deps.Logger)
		return &Exporter{Kind: kind, Runner: runner}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, kind)
	}
}
