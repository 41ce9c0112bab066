// Package sqldbtest предоставляет мок-реализации интерфейсов пакета sqldb.
package sqldbtest

import (
	"context"
	"sync"

	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb"
)

// Compile-time проверки реализации интерфейсов
var (
	_ sqldb.Client        = (*MockClient)(nil)
	_ sqldb.QueryExecutor = (*MockClient)(nil)
)

// MockClient — мок sqldb.Client с функциональными полями и подсчётом вызовов Execute.
type MockClient struct {
	// ConnectFunc — пользовательская реализация Connect
	ConnectFunc func(ctx context.Context) error
	// PingFunc — пользовательская реализация Ping
	PingFunc func(ctx context.Context) error
	// CloseFunc — пользовательская реализация Close
	CloseFunc func() error
	// ExecuteFunc — пользовательская реализация Execute
	ExecuteFunc func(ctx context.Context, query string) (*sqldb.RawResult, error)
	// Results — фиксированные результаты по тексту запроса, если ExecuteFunc не задан
	Results map[string]*sqldb.RawResult

	mu    sync.Mutex
	calls []string
}

// Connect при отсутствии пользовательской функции возвращает nil.
func (m *MockClient) Connect(ctx context.Context) error {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}
	return nil
}

// Ping при отсутствии пользовательской функции возвращает nil.
func (m *MockClient) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// Close при отсутствии пользовательской функции возвращает nil.
func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Execute записывает вызов и возвращает результат ExecuteFunc или Results.
// Для неизвестного запроса без ExecuteFunc возвращает пустой результат.
func (m *MockClient) Execute(ctx context.Context, query string) (*sqldb.RawResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	if r, ok := m.Results[query]; ok {
		return r, nil
	}
	return &sqldb.RawResult{}, nil
}

// Calls возвращает тексты выполненных запросов в порядке вызова.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount возвращает сколько раз выполнялся запрос query.
func (m *MockClient) CallCount(query string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == query {
			n++
		}
	}
	return n
}
