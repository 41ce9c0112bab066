// Package promexporter отдаёт результаты запросов как gauge метрики Prometheus.
//
// Collector непроверяемый (unchecked): набор метрик и label-ов определяется
// данными, поэтому Describe ничего не отправляет. Каждый scrape выполняет
// полный проход по запросам без кэширования.
package promexporter

import (
	"context"
	"errors"
	"iter"
	"strings"
	"time"
	"unicode"

	"github.com/Kargones/hanadb-exporter/internal/collection"
	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/metricsconfig"
	"github.com/Kargones/hanadb-exporter/internal/pkg/alerting"
	"github.com/Kargones/hanadb-exporter/internal/pkg/apperrors"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/Kargones/hanadb-exporter/internal/pkg/metrics"
	"github.com/Kargones/hanadb-exporter/internal/pkg/tracing"
	"github.com/Kargones/hanadb-exporter/internal/projection"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/unicode/norm"
)

// DefaultScrapeTimeout — ограничение длительности прохода, если не задано иное.
const DefaultScrapeTimeout = 30 * time.Second

// Source — источник результатов запросов (collection.Orchestrator).
type Source interface {
	Pass(ctx context.Context) iter.Seq2[*collection.QueryResult, error]
}

// Family — одна метрика, построенная по результату запроса.
type Family struct {
	// Name — имя метрики с суффиксом единицы измерения.
	Name string
	// Help — описание метрики.
	Help string
	// LabelNames — имена label-ов в порядке Metric.Labels.
	LabelNames []string
	// Unit — единица измерения.
	Unit string
	// Samples — значения в порядке строк результата.
	Samples []projection.Sample
}

// FamilyError — ошибка построения метрики или выполнения её запроса.
type FamilyError struct {
	// Query — начало текста запроса.
	Query string
	// Metric — имя метрики; пусто, если не удалось выполнить запрос.
	Metric string
	Err    error
}

func (e *FamilyError) Error() string {
	if e.Metric == "" {
		return "query " + e.Query + ": " + e.Err.Error()
	}
	return "query " + e.Query + ": metric " + e.Metric + ": " + e.Err.Error()
}

func (e *FamilyError) Unwrap() error { return e.Err }

// Options содержит зависимости Collector.
type Options struct {
	// Source — источник результатов запросов (обязателен).
	Source Source
	// Projector — построитель значений; nil — projection.New(Logger).
	Projector *projection.Projector
	// Recorder — собственные метрики экспортёра; nil — NopRecorder.
	Recorder metrics.Recorder
	// Alerter — алерты о неудачных метриках; nil — NopAlerter.
	Alerter alerting.Alerter
	// Logger — логгер; nil — NopLogger.
	Logger logging.Logger
	// ScrapeTimeout — ограничение длительности одного прохода.
	ScrapeTimeout time.Duration
}

// Compile-time проверка реализации интерфейса
var _ prometheus.Collector = (*Collector)(nil)

// Collector реализует prometheus.Collector поверх прохода по запросам.
type Collector struct {
	source    Source
	projector *projection.Projector
	recorder  metrics.Recorder
	alerter   alerting.Alerter
	logger    logging.Logger
	timeout   time.Duration
}

// New создаёт Collector.
func New(opts Options) (*Collector, error) {
	if opts.Source == nil {
		return nil, errors.New("promexporter: source is required")
	}
	logger := logging.ForComponent(opts.Logger, "prometheus-exporter")
	c := &Collector{
		source:    opts.Source,
		projector: opts.Projector,
		recorder:  opts.Recorder,
		alerter:   opts.Alerter,
		logger:    logger,
		timeout:   opts.ScrapeTimeout,
	}
	if c.projector == nil {
		c.projector = projection.New(opts.Logger)
	}
	if c.recorder == nil {
		c.recorder = metrics.NewNopRecorder()
	}
	if c.alerter == nil {
		c.alerter = alerting.NewNopAlerter()
	}
	if c.timeout <= 0 {
		c.timeout = DefaultScrapeTimeout
	}
	return c, nil
}

// Families возвращает ленивую последовательность метрик одного прохода.
// Каждый вызов итератора выполняет запросы заново. Ошибка запроса или
// метрики отдаётся как *FamilyError, проход продолжается.
func (c *Collector) Families(ctx context.Context) iter.Seq2[*Family, error] {
	return func(yield func(*Family, error) bool) {
		for res, err := range c.source.Pass(ctx) {
			if err != nil {
				var query string
				if res != nil {
					query = res.Query.Prefix()
				}
				if !yield(nil, &FamilyError{Query: query, Err: err}) {
					return
				}
				continue
			}

			for _, m := range res.Query.Metrics {
				if !m.Enabled {
					c.logger.Debug("метрика отключена, пропуск", "metric", m.Name, "query", res.Query.Prefix())
					continue
				}

				family, err := c.family(m, res)
				if err != nil {
					err = &FamilyError{Query: res.Query.Prefix(), Metric: m.Name, Err: err}
				}
				if !yield(family, err) {
					return
				}
			}
		}
	}
}

func (c *Collector) family(m metricsconfig.Metric, res *collection.QueryResult) (*Family, error) {
	if _, err := m.Kind(); err != nil {
		return nil, err
	}
	samples, err := c.projector.Project(m, res.Result)
	if err != nil {
		return nil, err
	}
	return &Family{
		Name:       metricName(m),
		Help:       m.Description,
		LabelNames: m.Labels,
		Unit:       m.Unit,
		Samples:    samples,
	}, nil
}

// Describe ничего не отправляет: Collector непроверяемый.
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

// Collect выполняет полный проход и отправляет gauge метрики.
// Неудачные метрики превращаются в prometheus.NewInvalidMetric, остальные отдаются.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	ctx, span := tracing.StartSpan(ctx, "prometheus.collect",
		tracing.AttrExporter.String(constants.ExporterPrometheus))

	start := time.Now()
	var failures []error
	families := 0

	for family, err := range c.Families(ctx) {
		if err != nil {
			failures = append(failures, err)
			c.recordFailure(err)
			ch <- prometheus.NewInvalidMetric(prometheus.NewInvalidDesc(err), err)
			continue
		}
		families++
		c.emit(ch, family)
	}

	success := len(failures) == 0
	c.recorder.ObservePass(constants.ExporterPrometheus, time.Since(start), success)

	if !success {
		joined := errors.Join(failures...)
		tracing.EndSpan(span, joined)
		c.logger.Warn("scrape завершён с ошибками",
			"families", families, "errors", len(failures), "duration_ms", time.Since(start).Milliseconds())
		_ = c.alerter.Send(context.WithoutCancel(ctx), alerting.Alert{
			ErrorCode: apperrors.ErrExporterRun,
			Message:   joined.Error(),
			Timestamp: time.Now(),
			Exporter:  constants.ExporterPrometheus,
			Severity:  alerting.SeverityWarning,
		})
		return
	}

	tracing.EndSpan(span, nil)
	c.logger.Debug("scrape завершён", "families", families, "duration_ms", time.Since(start).Milliseconds())
}

func (c *Collector) recordFailure(err error) {
	var famErr *FamilyError
	stage := metrics.StageProjection
	if errors.As(err, &famErr) && famErr.Metric == "" {
		stage = metrics.StageQuery
	}
	// Ошибка запроса уже посчитана оркестратором.
	if stage != metrics.StageQuery {
		c.recorder.RecordError(stage)
	}
	c.logger.Error("ошибка построения метрики", "stage", stage, "error", err.Error())
}

func (c *Collector) emit(ch chan<- prometheus.Metric, family *Family) {
	desc := prometheus.NewDesc(family.Name, family.Help, family.LabelNames, nil)
	for _, s := range family.Samples {
		values := make([]string, len(s.LabelValues))
		for i, v := range s.LabelValues {
			values[i] = sanitizeLabelValue(v)
		}
		m, err := prometheus.NewConstMetric(desc, prometheus.GaugeValue, s.Value, values...)
		if err != nil {
			c.recorder.RecordError(metrics.StageProjection)
			c.logger.Error("некорректное значение метрики", "metric", family.Name, "error", err.Error())
			m = prometheus.NewInvalidMetric(desc, err)
		}
		ch <- m
	}
}

// metricName добавляет суффикс _<unit>, если он задан и ещё не входит в имя.
func metricName(m metricsconfig.Metric) string {
	if m.Unit == "" || strings.HasSuffix(m.Name, "_"+m.Unit) {
		return m.Name
	}
	return m.Name + "_" + m.Unit
}

// sanitizeLabelValue приводит значение к NFC и удаляет управляющие символы.
func sanitizeLabelValue(v string) string {
	v = norm.NFC.String(strings.ToValidUTF8(v, "\uFFFD"))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, v)
}
