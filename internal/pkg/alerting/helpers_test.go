package alerting

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
)

// testLogger реализует logging.Logger и запоминает сообщения по уровням.
type testLogger struct {
	mu        sync.Mutex
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (l *testLogger) Debug(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugMsgs = append(l.debugMsgs, msg)
}
func (l *testLogger) Info(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoMsgs = append(l.infoMsgs, msg)
}
func (l *testLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnMsgs = append(l.warnMsgs, msg)
}
func (l *testLogger) Error(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorMsgs = append(l.errorMsgs, msg)
}
func (l *testLogger) With(_ ...any) logging.Logger { return l }

// mockHTTPClient — HTTPClient с функциональным полем и журналом запросов.
type mockHTTPClient struct {
	DoFunc   func(req *http.Request) (*http.Response, error)
	Requests []*http.Request
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	if m.DoFunc == nil {
		return mockHTTPResponse(http.StatusOK, ""), nil
	}
	return m.DoFunc(req)
}

func mockHTTPResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
