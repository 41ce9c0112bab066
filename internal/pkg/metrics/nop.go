package metrics

import (
	"context"
	"time"
)

// NopRecorder — no-op реализация Recorder.
// Используется когда метрики отключены (Config.Enabled = false).
type NopRecorder struct{}

// NewNopRecorder создаёт NopRecorder.
func NewNopRecorder() *NopRecorder {
	return &NopRecorder{}
}

// ObservePass — no-op.
func (r *NopRecorder) ObservePass(string, time.Duration, bool) {}

// ObserveQuery — no-op.
func (r *NopRecorder) ObserveQuery(time.Duration, bool) {}

// RecordError — no-op.
func (r *NopRecorder) RecordError(string) {}

// RecordIngest — no-op.
func (r *NopRecorder) RecordIngest(bool) {}

// Push — no-op, всегда возвращает nil.
func (r *NopRecorder) Push(context.Context) error {
	return nil
}
