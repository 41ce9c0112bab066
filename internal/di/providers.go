package di

import (
	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb"
	"github.com/Kargones/hanadb-exporter/internal/collection"
	"github.com/Kargones/hanadb-exporter/internal/config"
	"github.com/Kargones/hanadb-exporter/internal/exporter"
	"github.com/Kargones/hanadb-exporter/internal/metricsconfig"
	"github.com/Kargones/hanadb-exporter/internal/pkg/alerting"
	"github.com/Kargones/hanadb-exporter/internal/pkg/apperrors"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/Kargones/hanadb-exporter/internal/pkg/metrics"
	"github.com/Kargones/hanadb-exporter/internal/pkg/tracing"
	"github.com/Kargones/hanadb-exporter/internal/pkg/urlutil"
	"github.com/Kargones/hanadb-exporter/internal/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideLogger создаёт Logger на основе секции logging.
// Пустые значения заменяются значениями по умолчанию пакета logging.
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogger(logging.Config{}.WithDefaults())
	}
	return logging.NewLogger(cfg.Logging.ToLogging().WithDefaults())
}

// ProvideRegistry создаёт registry для /metrics с метриками Go runtime и процесса.
func ProvideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// ProvideRecorder создаёт Recorder на основе секции selfMetrics.
// При ошибке создания возвращает NopRecorder и логирует ошибку.
func ProvideRecorder(cfg *config.Config, registry *prometheus.Registry, logger logging.Logger) metrics.Recorder {
	if cfg == nil {
		return metrics.NewNopRecorder()
	}
	recorder, err := metrics.NewRecorder(cfg.SelfMetrics.ToMetrics(), registry, logger)
	if err != nil {
		logger.Error("ошибка создания Recorder, используется NopRecorder", "error", err.Error())
		return metrics.NewNopRecorder()
	}
	return recorder
}

// ProvideAlerter создаёт Alerter на основе секции alerting.
// Если алертинг отключён или не создаётся — NopAlerter.
func ProvideAlerter(cfg *config.Config, logger logging.Logger) alerting.Alerter {
	if cfg == nil {
		return alerting.NewNopAlerter()
	}
	alerter, err := alerting.NewAlerter(cfg.Alerting.ToAlerting(), logger)
	if err != nil {
		logger.Error("ошибка создания Alerter, используется NopAlerter", "error", err.Error())
		return alerting.NewNopAlerter()
	}
	return alerter
}

// ProvideTracerProvider создаёт и регистрирует OTel TracerProvider.
// Если трейсинг отключён или не создаётся — nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) TracerShutdown {
	if cfg == nil {
		return tracing.NewNopTracerProvider()
	}
	shutdown, err := tracing.NewTracerProvider(cfg.Tracing.ToTracing(), logger)
	if err != nil {
		logger.Error("ошибка создания TracerProvider, трейсинг отключён", "error", err.Error())
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}

// ProvideDatabase создаёт клиент базы данных без подключения.
func ProvideDatabase(cfg *config.Config) (sqldb.Client, error) {
	if cfg == nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate, "конфигурация не передана", nil)
	}
	client, err := sqldb.NewClient(cfg.Database.Options())
	if err != nil {
		msg := "некорректные параметры подключения к базе данных"
		if cfg.Database.DSN != "" {
			msg += " " + urlutil.MaskDSN(cfg.Database.DSN)
		}
		return nil, apperrors.NewAppError(apperrors.ErrDBConnect, msg, err)
	}
	return client, nil
}

// ProvideMetricsConfig загружает файл запросов и метрик.
func ProvideMetricsConfig(cfg *config.Config, logger logging.Logger) (*metricsconfig.Config, error) {
	mcfg, err := metricsconfig.LoadFile(cfg.Exporter.MetricsFile, logger)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось загрузить файл метрик "+cfg.Exporter.MetricsFile, err)
	}
	return mcfg, nil
}

// ProvideOrchestrator создаёт оркестратор прохода по запросам.
func ProvideOrchestrator(mcfg *metricsconfig.Config, db sqldb.Client, recorder metrics.Recorder,
	logger logging.Logger) (*collection.Orchestrator, error) {
	o, err := collection.New(mcfg, db, recorder, logger)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrExporterInit, "не удалось создать оркестратор", err)
	}
	return o, nil
}

// ProvideExporter создаёт приёмник по exporter.type.
func ProvideExporter(cfg *config.Config, o *collection.Orchestrator, registry *prometheus.Registry,
	recorder metrics.Recorder, alerter alerting.Alerter, logger logging.Logger) (*exporter.Exporter, error) {
	exp, err := exporter.New(cfg.Exporter.Type, exporter.Deps{
		Source:        o,
		Registry:      registry,
		Recorder:      recorder,
		Alerter:       alerter,
		Logger:        logger,
		ScrapeTimeout: cfg.Exporter.ScrapeTimeout,
		Azure:         cfg.Azure.Settings(),
	})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrExporterInit,
			"не удалось создать экспортёр "+cfg.Exporter.Type, err)
	}
	return exp, nil
}

// ProvideServer создаёт HTTP сервер. /healthz проверяет базу данных.
func ProvideServer(cfg *config.Config, registry *prometheus.Registry, db sqldb.Client,
	logger logging.Logger) (*server.Server, error) {
	srv, err := server.New(server.Options{
		Address:  cfg.Exporter.ListenAddress,
		Gatherer: registry,
		DB:       db,
		Logger:   logger,
	})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrExporterInit, "не удалось создать HTTP сервер", err)
	}
	return srv, nil
}
