// Package testutil содержит общие утилиты для тестирования.
package testutil

import (
	"context"
	"sync"

	"github.com/Kargones/hanadb-exporter/internal/pkg/alerting"
)

// Compile-time проверка реализации интерфейса
var _ alerting.Alerter = (*RecordingAlerter)(nil)

// RecordingAlerter запоминает отправленные алерты. Безопасен для конкурентного использования.
type RecordingAlerter struct {
	mu     sync.Mutex
	alerts []alerting.Alert
}

// Send запоминает алерт и возвращает nil.
func (a *RecordingAlerter) Send(_ context.Context, alert alerting.Alert) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, alert)
	return nil
}

// Alerts возвращает копию отправленных алертов в порядке отправки.
func (a *RecordingAlerter) Alerts() []alerting.Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]alerting.Alert, len(a.alerts))
	copy(out, a.alerts)
	return out
}
