package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTextAdapter(buf *bytes.Buffer) *SlogAdapter {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler))
}

func TestNewSlogAdapter_NilLogger_UsesDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	assert.NotNil(t, adapter)
	assert.NotNil(t, adapter.Slog())
}

func TestSlogAdapter_AllLevels(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(adapter *SlogAdapter, msg string, args ...any)
		expected string
	}{
		{"Debug", (*SlogAdapter).Debug, "level=DEBUG"},
		{"Info", (*SlogAdapter).Info, "level=INFO"},
		{"Warn", (*SlogAdapter).Warn, "level=WARN"},
		{"Error", (*SlogAdapter).Error, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newTextAdapter(&buf), "test message", "key", "value")

			output := buf.String()
			assert.Contains(t, output, tt.expected)
			assert.Contains(t, output, "test message")
			assert.Contains(t, output, "key=value")
		})
	}
}

// TestSlogAdapter_With_ChainedCalls проверяет накопление атрибутов.
func TestSlogAdapter_With_ChainedCalls(t *testing.T) {
	var buf bytes.Buffer
	adapter := newTextAdapter(&buf)

	adapter.With("a", "1").With("b", "2").Info("chained")

	output := buf.String()
	assert.Contains(t, output, "a=1")
	assert.Contains(t, output, "b=2")
}

// TestForComponent проверяет атрибут component.
func TestForComponent(t *testing.T) {
	var buf bytes.Buffer

	ForComponent(newTextAdapter(&buf), "projector").Info("сообщение")

	assert.Contains(t, buf.String(), "component=projector")
}

func TestForComponent_NilLogger(t *testing.T) {
	logger := ForComponent(nil, "projector")

	_, ok := logger.(*NopLogger)
	assert.True(t, ok, "для nil логгера должен возвращаться NopLogger")
}
