// Package azure отправляет строки результатов запросов в Azure Log Analytics
// через HTTP Data Collector API.
//
// Каждая строка становится JSON записью (колонка → значение). Колонки,
// начинающиеся с "_", считаются служебными и не отправляются. Если запрос
// не вернул колонку UTC_TIMESTAMP, она добавляется с текущим временем UTC.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/collection"
	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/Kargones/hanadb-exporter/internal/pkg/metrics"
	"github.com/Kargones/hanadb-exporter/internal/pkg/tracing"
	"github.com/Kargones/hanadb-exporter/internal/pkg/urlutil"
)

const (
	contentType   = "application/json"
	dateHeader    = "x-ms-date"
	logTypeHeader = "Log-Type"

	// DefaultTimeout — таймаут HTTP запроса отправки по умолчанию.
	DefaultTimeout = 30 * time.Second

	// maxResponseBodySize — сколько байт ответа читать для диагностики.
	maxResponseBodySize = 64 * 1024
)

// URITemplate — адрес API для рабочей области (подставляется workspace id).
const URITemplate = "https://%s.ods.opinsights.azure.com" + constants.AzureResource +
	"?api-version=" + constants.AzureAPIVersion

// Record — одна строка результата запроса.
type Record map[string]any

// Source — источник результатов запросов (collection.Orchestrator).
type Source interface {
	Pass(ctx context.Context) iter.Seq2[*collection.QueryResult, error]
}

// HTTPClient — интерфейс HTTP клиента для отправки данных.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options содержит настройки и зависимости Collector.
type Options struct {
	// Source — источник результатов запросов (обязателен).
	Source Source
	// WorkspaceID — идентификатор рабочей области (обязателен).
	WorkspaceID string
	// SharedKey — ключ рабочей области в base64 (обязателен).
	SharedKey string
	// URI — адрес API; пусто — URITemplate с WorkspaceID.
	URI string
	// LogType — значение заголовка Log-Type; пусто — SapHana_Infra.
	LogType string
	// Timeout — таймаут HTTP клиента по умолчанию.
	Timeout time.Duration
	// HTTPClient — HTTP клиент; nil — http.Client с Timeout.
	HTTPClient HTTPClient
	// Recorder — собственные метрики экспортёра; nil — NopRecorder.
	Recorder metrics.Recorder
	// Logger — логгер; nil — NopLogger.
	Logger logging.Logger
	// Now — источник времени; nil — time.Now.
	Now func() time.Time
}

// Collector собирает строки запросов и отправляет их в Log Analytics.
type Collector struct {
	source   Source
	signer   *Signer
	uri      string
	logType  string
	client   HTTPClient
	recorder metrics.Recorder
	logger   logging.Logger
	now      func() time.Time
}

// New создаёт Collector. Ключ декодируется сразу, ошибка ключа возвращается здесь.
func New(opts Options) (*Collector, error) {
	if opts.Source == nil {
		return nil, ErrSourceRequired
	}
	signer, err := NewSigner(opts.WorkspaceID, opts.SharedKey)
	if err != nil {
		return nil, err
	}

	uri := opts.URI
	if uri == "" {
		uri = fmt.Sprintf(URITemplate, opts.WorkspaceID)
	}
	if _, err := url.Parse(uri); err != nil {
		return nil, fmt.Errorf("azure: invalid uri: %w", err)
	}

	c := &Collector{
		source:   opts.Source,
		signer:   signer,
		uri:      uri,
		logType:  opts.LogType,
		client:   opts.HTTPClient,
		recorder: opts.Recorder,
		logger:   logging.ForComponent(opts.Logger, "azure-exporter"),
		now:      opts.Now,
	}
	if c.logType == "" {
		c.logType = constants.AzureDefaultLogType
	}
	if c.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.client = &http.Client{Timeout: timeout}
	}
	if c.recorder == nil {
		c.recorder = metrics.NewNopRecorder()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Collect выполняет включённые запросы и возвращает записи по каждому запросу.
// Первая ошибка запроса прерывает сбор и возвращается без обёртки.
func (c *Collector) Collect(ctx context.Context) ([][]Record, error) {
	var data [][]Record
	for res, err := range c.source.Pass(ctx) {
		if err != nil {
			return nil, err
		}
		data = append(data, c.records(res))
	}
	return data, nil
}

func (c *Collector) records(res *collection.QueryResult) []Record {
	columns := res.Result.Columns

	var timestamp any
	if _, ok := res.Result.ColumnIndex()[constants.AzureTimestampField]; !ok {
		timestamp = c.now().UTC().Format(constants.HANATimestampFormat)
	}

	records := make([]Record, 0, len(res.Result.Rows))
	for _, row := range res.Result.Rows {
		rec := Record{constants.AzureTimestampField: timestamp}
		for i, col := range columns {
			if strings.HasPrefix(col, "_") || i >= len(row) {
				continue
			}
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

// Ingest отправляет записи одним запросом: JSON массив, в котором каждому
// запросу соответствует свой массив записей. При ответе 200 возвращает тело
// ответа, иначе *IngestError.
func (c *Collector) Ingest(ctx context.Context, data [][]Record) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "azure.ingest")

	body, err := encode(data)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}

	respBody, err := c.post(ctx, body)
	c.recorder.RecordIngest(err == nil)
	if err != nil {
		c.recorder.RecordError(metrics.StageIngest)
	}
	tracing.EndSpan(span, err)
	return respBody, err
}

func encode(data [][]Record) ([]byte, error) {
	groups := make([][]Record, 0, len(data))
	for _, records := range data {
		if records == nil {
			records = []Record{}
		}
		groups = append(groups, records)
	}
	body, err := json.Marshal(groups)
	if err != nil {
		return nil, fmt.Errorf("azure: encode records: %w", err)
	}
	return body, nil
}

func (c *Collector) post(ctx context.Context, body []byte) ([]byte, error) {
	date := c.now().UTC().Format(http.TimeFormat)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uri, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("azure: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(logTypeHeader, c.logType)
	req.Header.Set(dateHeader, date)
	req.Header.Set("Authorization", c.signer.Authorization(len(body), date))
	req.Header.Set("User-Agent", constants.UserAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("ошибка отправки данных в Log Analytics",
			"uri", urlutil.MaskURL(c.uri), "error", err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Log Analytics отклонил данные",
			"status", resp.StatusCode, "body", string(respBody))
		return nil, &IngestError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	if readErr != nil {
		c.logger.Error("ошибка чтения ответа Log Analytics", "error", readErr.Error())
		return nil, fmt.Errorf("azure: read response: %w", readErr)
	}

	c.logger.Debug("данные отправлены в Log Analytics",
		"bytes", len(body), "response", string(respBody))
	return respBody, nil
}

// Export выполняет Collect и Ingest.
func (c *Collector) Export(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "azure.export",
		tracing.AttrExporter.String(constants.ExporterAzure))

	start := time.Now()
	data, err := c.Collect(ctx)
	if err == nil {
		_, err = c.Ingest(ctx, data)
	}
	c.recorder.ObservePass(constants.ExporterAzure, time.Since(start), err == nil)
	tracing.EndSpan(span, err)
	if err != nil {
		return err
	}

	c.logger.Info("экспорт завершён",
		"queries", len(data), "records", countRecords(data), "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func countRecords(data [][]Record) int {
	n := 0
	for _, records := range data {
		n += len(records)
	}
	return n
}
