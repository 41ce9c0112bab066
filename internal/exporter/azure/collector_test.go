package azure

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb"
	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb/sqldbtest"
	"github.com/Kargones/hanadb-exporter/internal/collection"
	"github.com/Kargones/hanadb-exporter/internal/metricsconfig"
	"github.com/Kargones/hanadb-exporter/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	loadQuery   = "SELECT host, cpu, _internal FROM sys.m_load_history_host"
	tsQuery     = "SELECT UTC_TIMESTAMP, host FROM sys.m_service_statistics"
	offQuery    = "SELECT * FROM sys.m_disabled"
	metricsJSON = `{
		"` + loadQuery + `": {"metrics": [{"name": "cpu", "description": "", "labels": ["HOST"], "value": "CPU", "unit": "percent", "type": "gauge"}]},
		"` + offQuery + `": {"enabled": false, "metrics": []},
		"` + tsQuery + `": {"metrics": []}
	}`
)

var fixedNow = time.Date(2024, 3, 5, 10, 11, 12, 123456789, time.UTC)

func newSource(t *testing.T, executor sqldb.QueryExecutor, recorder metrics.Recorder) *collection.Orchestrator {
	t.Helper()
	cfg, err := metricsconfig.Load([]byte(metricsJSON))
	require.NoError(t, err)
	o, err := collection.New(cfg, executor, recorder, nil)
	require.NoError(t, err)
	return o
}

func testExecutor() *sqldbtest.MockClient {
	return &sqldbtest.MockClient{Results: map[string]*sqldb.RawResult{
		loadQuery: {
			Columns: []string{"HOST", "CPU", "_INTERNAL"},
			Rows: [][]any{
				{"hana01", 12.5, "x"},
				{"hana02", int64(40), "y"},
			},
		},
		tsQuery: {
			Columns: []string{"UTC_TIMESTAMP", "HOST"},
			Rows:    [][]any{{"2024-01-01 00:00:00.000000", "hana01"}},
		},
	}}
}

func newTestCollector(t *testing.T, source Source, opts Options) *Collector {
	t.Helper()
	opts.Source = source
	opts.WorkspaceID = testWorkspace
	opts.SharedKey = testSharedKey
	opts.Now = func() time.Time { return fixedNow }
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestCollector_Collect(t *testing.T) {
	executor := testExecutor()
	c := newTestCollector(t, newSource(t, executor, nil), Options{})

	data, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, data, 2)

	assert.Equal(t, []Record{
		{"UTC_TIMESTAMP": "2024-03-05 10:11:12.123456", "HOST": "hana01", "CPU": 12.5},
		{"UTC_TIMESTAMP": "2024-03-05 10:11:12.123456", "HOST": "hana02", "CPU": int64(40)},
	}, data[0])

	assert.Equal(t, []Record{
		{"UTC_TIMESTAMP": "2024-01-01 00:00:00.000000", "HOST": "hana01"},
	}, data[1])

	assert.Zero(t, executor.CallCount(offQuery))
}

func TestCollector_CollectQueryError(t *testing.T) {
	queryErr := errors.New("SQL error 259: invalid table name")
	executor := &sqldbtest.MockClient{
		ExecuteFunc: func(context.Context, string) (*sqldb.RawResult, error) { return nil, queryErr },
	}
	c := newTestCollector(t, newSource(t, executor, nil), Options{})

	data, err := c.Collect(context.Background())
	assert.Nil(t, data)
	assert.Same(t, queryErr, err)
	assert.Equal(t, []string{loadQuery}, executor.Calls())
}

func TestCollector_Ingest(t *testing.T) {
	var gotHeaders http.Header
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/logs", r.URL.Path)
		assert.Equal(t, "2016-04-01", r.URL.Query().Get("api-version"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("accepted"))
	}))
	defer server.Close()

	c := newTestCollector(t, newSource(t, testExecutor(), nil), Options{
		URI:        server.URL + "/api/logs?api-version=2016-04-01",
		HTTPClient: server.Client(),
	})

	data, err := c.Collect(context.Background())
	require.NoError(t, err)
	resp, err := c.Ingest(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "accepted", string(resp))

	date := "Tue, 05 Mar 2024 10:11:12 GMT"
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "SapHana_Infra", gotHeaders.Get("Log-Type"))
	assert.Equal(t, date, gotHeaders.Get("x-ms-date"))
	assert.Equal(t, c.signer.Authorization(len(gotBody), date), gotHeaders.Get("Authorization"))
	assert.True(t, strings.HasPrefix(gotHeaders.Get("Authorization"), "SharedKey "+testWorkspace+":"))

	var groups [][]map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &groups))
	require.Len(t, groups, 2)
	require.Len(t, groups[0], 2)
	require.Len(t, groups[1], 1)
	assert.Equal(t, "hana02", groups[0][1]["HOST"])
	assert.NotContains(t, groups[0][0], "_INTERNAL")
	assert.Equal(t, "2024-01-01 00:00:00.000000", groups[1][0]["UTC_TIMESTAMP"])
}

func TestCollector_IngestEmptyPass(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestCollector(t, newSource(t, testExecutor(), nil), Options{URI: server.URL, HTTPClient: server.Client()})

	_, err := c.Ingest(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(gotBody))

	_, err = c.Ingest(context.Background(), [][]Record{nil})
	require.NoError(t, err)
	assert.Equal(t, "[[]]", string(gotBody))
}

// brokenBody отдаёт часть данных и затем ошибку чтения.
type brokenBody struct{ sent bool }

func (b *brokenBody) Read(p []byte) (int, error) {
	if !b.sent {
		b.sent = true
		return copy(p, "acc"), nil
	}
	return 0, errors.New("connection reset by peer")
}

func (b *brokenBody) Close() error { return nil }

type clientFunc func(*http.Request) (*http.Response, error)

func (f clientFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestCollector_IngestResponseReadError(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewPrometheusRecorder(metrics.DefaultConfig(), registry, nil)
	require.NoError(t, err)

	client := clientFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: &brokenBody{}}, nil
	})
	c := newTestCollector(t, newSource(t, testExecutor(), nil), Options{
		URI:        "http://logs.invalid/api/logs",
		HTTPClient: client,
		Recorder:   recorder,
	})

	resp, err := c.Ingest(context.Background(), [][]Record{{{"A": 1}}})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.NotErrorIs(t, err, ErrIngest)

	expected := `
# HELP hanadb_exporter_ingest_total Total number of Log Analytics ingest attempts by status
# TYPE hanadb_exporter_ingest_total counter
hanadb_exporter_ingest_total{status="error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "hanadb_exporter_ingest_total"))
}

func TestCollector_IngestRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"Error":"InvalidAuthorization"}`))
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewPrometheusRecorder(metrics.DefaultConfig(), registry, nil)
	require.NoError(t, err)

	c := newTestCollector(t, newSource(t, testExecutor(), nil), Options{
		URI:        server.URL,
		HTTPClient: server.Client(),
		Recorder:   recorder,
		LogType:    "Custom_Log",
	})

	resp, err := c.Ingest(context.Background(), [][]Record{{{"A": 1}}})
	assert.Nil(t, resp)
	require.ErrorIs(t, err, ErrIngest)
	var ingestErr *IngestError
	require.ErrorAs(t, err, &ingestErr)
	assert.Equal(t, http.StatusForbidden, ingestErr.StatusCode)
	assert.Contains(t, ingestErr.Body, "InvalidAuthorization")

	expected := `
# HELP hanadb_exporter_ingest_total Total number of Log Analytics ingest attempts by status
# TYPE hanadb_exporter_ingest_total counter
hanadb_exporter_ingest_total{status="error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "hanadb_exporter_ingest_total"))
}

func TestCollector_IngestNon200Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c := newTestCollector(t, newSource(t, testExecutor(), nil), Options{URI: server.URL, HTTPClient: server.Client()})

	_, err := c.Ingest(context.Background(), nil)
	var ingestErr *IngestError
	require.ErrorAs(t, err, &ingestErr)
	assert.Equal(t, http.StatusAccepted, ingestErr.StatusCode)
}

func TestCollector_Export(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "[[],[]]", string(body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestCollector(t, newSource(t, &sqldbtest.MockClient{}, nil), Options{URI: server.URL, HTTPClient: server.Client()})

	require.NoError(t, c.Export(context.Background()))
	assert.Equal(t, int32(1), requests.Load())
}

func TestCollector_ExportStopsOnQueryError(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	executor := &sqldbtest.MockClient{
		ExecuteFunc: func(context.Context, string) (*sqldb.RawResult, error) { return nil, errors.New("boom") },
	}
	c := newTestCollector(t, newSource(t, executor, nil), Options{URI: server.URL, HTTPClient: server.Client()})

	assert.EqualError(t, c.Export(context.Background()), "boom")
	assert.Zero(t, requests.Load())
}

func TestNew_Validation(t *testing.T) {
	source := newSource(t, &sqldbtest.MockClient{}, nil)

	_, err := New(Options{WorkspaceID: testWorkspace, SharedKey: testSharedKey})
	assert.ErrorIs(t, err, ErrSourceRequired)

	_, err = New(Options{Source: source, SharedKey: testSharedKey})
	assert.ErrorIs(t, err, ErrWorkspaceRequired)

	_, err = New(Options{Source: source, WorkspaceID: testWorkspace, SharedKey: "%%%"})
	assert.ErrorIs(t, err, ErrInvalidSharedKey)

	c, err := New(Options{Source: source, WorkspaceID: testWorkspace, SharedKey: testSharedKey})
	require.NoError(t, err)
	assert.Equal(t, "https://"+testWorkspace+".ods.opinsights.azure.com/api/logs?api-version=2016-04-01", c.uri)
	assert.Equal(t, "SapHana_Infra", c.logType)
}
