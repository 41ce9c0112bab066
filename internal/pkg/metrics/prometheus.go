package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/Kargones/hanadb-exporter/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "hanadb_exporter"

// Compile-time проверка реализации интерфейса
var _ Recorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder реализует Recorder с Prometheus метриками.
// Метрики регистрируются в переданном registry (его же отдаёт /metrics)
// и отправляются в Pushgateway при вызове Push().
type PrometheusRecorder struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	collectDuration *prometheus.HistogramVec
	queryDuration   *prometheus.HistogramVec
	collectErrors   *prometheus.CounterVec
	ingestTotal     *prometheus.CounterVec

	instance string
}

// NewPrometheusRecorder создаёт PrometheusRecorder и регистрирует метрики:
//   - hanadb_exporter_collect_duration_seconds (histogram)
//   - hanadb_exporter_query_duration_seconds (histogram)
//   - hanadb_exporter_collect_errors_total (counter)
//   - hanadb_exporter_ingest_total (counter)
func NewPrometheusRecorder(config Config, registry *prometheus.Registry, logger logging.Logger) (*PrometheusRecorder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	instance, err := config.instance()
	if err != nil {
		logger.Warn("не удалось получить hostname для instance label, используется unknown",
			"error", err.Error())
		instance = "unknown"
	}

	collectDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collect_duration_seconds",
			Help:      "Duration of a full pass over the configured queries in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"exporter", "status"},
	)

	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of a single query execution in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	collectErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collect_errors_total",
			Help:      "Total number of collection errors by stage",
		},
		[]string{"stage"},
	)

	ingestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_total",
			Help:      "Total number of Log Analytics ingest attempts by status",
		},
		[]string{"status"},
	)

	// Register вместо MustRegister: ошибка возможна только при дублировании имён.
	collectors := []prometheus.Collector{collectDuration, queryDuration, collectErrors, ingestTotal}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusRecorder{
		config:          config,
		logger:          logger,
		registry:        registry,
		collectDuration: collectDuration,
		queryDuration:   queryDuration,
		collectErrors:   collectErrors,
		ingestTotal:     ingestTotal,
		instance:        instance,
	}, nil
}

// ObservePass записывает длительность прохода.
func (r *PrometheusRecorder) ObservePass(exporter string, duration time.Duration, success bool) {
	r.collectDuration.WithLabelValues(exporter, status(success)).Observe(duration.Seconds())
}

// ObserveQuery записывает длительность запроса.
func (r *PrometheusRecorder) ObserveQuery(duration time.Duration, success bool) {
	r.queryDuration.WithLabelValues(status(success)).Observe(duration.Seconds())
}

// RecordError увеличивает счётчик ошибок стадии.
func (r *PrometheusRecorder) RecordError(stage string) {
	r.collectErrors.WithLabelValues(stage).Inc()
}

// RecordIngest записывает результат отправки.
func (r *PrometheusRecorder) RecordIngest(success bool) {
	r.ingestTotal.WithLabelValues(status(success)).Inc()
}

// Push отправляет метрики в Pushgateway.
// Возвращает nil даже при ошибке — ошибки логируются.
func (r *PrometheusRecorder) Push(ctx context.Context) error {
	if !r.config.pushEnabled() {
		return nil
	}

	select {
	case <-ctx.Done():
		r.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(r.config.PushgatewayURL, r.config.JobName).
		Gatherer(r.registry).
		Grouping("instance", r.instance)

	pushCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		r.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(r.config.PushgatewayURL),
			"job", r.config.JobName,
		)
		return nil
	}

	r.logger.Debug("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(r.config.PushgatewayURL),
		"job", r.config.JobName,
		"instance", r.instance,
	)
	return nil
}
