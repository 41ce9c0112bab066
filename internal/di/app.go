package di

import (
	"context"
	"errors"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb"
	"github.com/Kargones/hanadb-exporter/internal/collection"
	"github.com/Kargones/hanadb-exporter/internal/config"
	"github.com/Kargones/hanadb-exporter/internal/exporter"
	"github.com/Kargones/hanadb-exporter/internal/metricsconfig"
	"github.com/Kargones/hanadb-exporter/internal/pkg/alerting"
	"github.com/Kargones/hanadb-exporter/internal/pkg/apperrors"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/Kargones/hanadb-exporter/internal/pkg/metrics"
	"github.com/Kargones/hanadb-exporter/internal/server"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// TracerShutdown завершает TracerProvider и отправляет буферизированные span-ы.
type TracerShutdown func(context.Context) error

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config содержит конфигурацию приложения.
	// Передаётся извне через InitializeApp().
	Config *config.Config

	// Logger предоставляет структурированное логирование.
	Logger logging.Logger

	// Registry отдаётся на /metrics: метрики запросов и собственные метрики.
	Registry *prometheus.Registry

	// Recorder записывает собственные метрики экспортёра.
	// Если метрики отключены — NopRecorder.
	Recorder metrics.Recorder

	// Alerter отправляет алерты о сбоях сбора и отправки.
	// Если алертинг отключён — NopAlerter.
	Alerter alerting.Alerter

	// DB — клиент базы данных. Подключение выполняется в Run.
	DB sqldb.Client

	// Orchestrator выполняет проход по запросам.
	Orchestrator *collection.Orchestrator

	// Exporter — активный приёмник (prometheus или azure).
	Exporter *exporter.Exporter

	// Server — HTTP сервер (/metrics, /healthz).
	Server *server.Server

	// TracerShutdown завершает OTel TracerProvider.
	// Если трейсинг отключён — nop function.
	TracerShutdown TracerShutdown
}

// Run подключается к базе данных и работает до отмены ctx:
// HTTP сервер обслуживает /metrics и /healthz, для azure дополнительно
// работает push цикл.
func (a *App) Run(ctx context.Context) error {
	if err := a.DB.Connect(ctx); err != nil {
		return apperrors.NewAppError(apperrors.ErrDBConnect, "не удалось подключиться к базе данных", err)
	}
	a.Logger.Info("подключение к базе данных установлено", "driver", a.Config.Database.Driver)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Server.Run(ctx)
	})
	if a.Exporter.IsPush() {
		g.Go(func() error {
			return a.Exporter.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return apperrors.NewAppError(apperrors.ErrExporterRun, "экспортёр остановлен с ошибкой", err)
	}
	return nil
}

// Reload перечитывает файл метрик. При ошибке продолжает работать прежний набор запросов.
func (a *App) Reload() error {
	cfg, err := metricsconfig.LoadFile(a.Config.Exporter.MetricsFile, a.Logger)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigLoad, "не удалось перечитать файл метрик", err)
	}
	if err := a.Orchestrator.Reload(cfg); err != nil {
		return err
	}
	a.Logger.Info("файл метрик перечитан",
		"file", a.Config.Exporter.MetricsFile, "queries", len(cfg.Queries()))
	return nil
}

// Close освобождает ресурсы: соединения с базой данных и TracerProvider.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.TracerShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.TracerShutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
