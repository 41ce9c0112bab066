package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_DefaultValues проверяет что пустая конфигурация даёт SlogAdapter.
func TestNewLogger_DefaultValues(t *testing.T) {
	logger := NewLogger(Config{})

	_, ok := logger.(*SlogAdapter)
	assert.True(t, ok, "NewLogger должен возвращать *SlogAdapter")
}

// TestNewLoggerWithWriter_AllLevels проверяет фильтрацию по уровню.
func TestNewLoggerWithWriter_AllLevels(t *testing.T) {
	tests := []struct {
		name         string
		configLevel  string
		logLevel     string
		shouldAppear bool
	}{
		{"debug_at_debug", LevelDebug, "debug", true},
		{"debug_at_info", LevelInfo, "debug", false},
		{"info_at_info", LevelInfo, "info", true},
		{"info_at_warn", LevelWarn, "info", false},
		{"warn_at_warn", LevelWarn, "warn", true},
		{"warn_at_error", LevelError, "warn", false},
		{"error_at_error", LevelError, "error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(Config{Format: FormatText, Level: tt.configLevel}, &buf)

			msg := "test_" + tt.name
			switch tt.logLevel {
			case "debug":
				logger.Debug(msg)
			case "info":
				logger.Info(msg)
			case "warn":
				logger.Warn(msg)
			case "error":
				logger.Error(msg)
			}

			if tt.shouldAppear {
				assert.Contains(t, buf.String(), msg)
			} else {
				assert.NotContains(t, buf.String(), msg)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

// TestNewLoggerWithWriter_JSONOutput проверяет что JSON вывод валиден.
func TestNewLoggerWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLoggerWithWriter(Config{Format: FormatJSON}, &buf)
	logger.Info("json test", "query", "SELECT 1", "rows", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "json test", entry["msg"])
	assert.Equal(t, "SELECT 1", entry["query"])
	assert.Equal(t, float64(2), entry["rows"])
}

// TestNewLogger_FileOutput проверяет запись в файл с созданием каталога.
func TestNewLogger_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "exporter.log")

	logger := NewLogger(Config{
		Level:    LevelInfo,
		Format:   FormatText,
		Output:   OutputFile,
		FilePath: logFile,
		MaxSize:  1,
	})
	logger.Info("file output test", "key", "value")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err, "файл лога должен быть создан")
	assert.Contains(t, string(content), "file output test")
	assert.Contains(t, string(content), "key=value")
}

// TestNewLumberjackWriter_EmptyPath проверяет fallback на stderr.
func TestNewLumberjackWriter_EmptyPath(t *testing.T) {
	w := newLumberjackWriter(Config{Output: OutputFile})
	assert.Equal(t, os.Stderr, w)
}

func TestNewLogger_UnknownOutput_FallbackToStderr(t *testing.T) {
	logger := NewLogger(Config{Output: "syslog"})
	require.NotNil(t, logger)

	_, ok := logger.(*SlogAdapter)
	assert.True(t, ok)
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	assert.Equal(t, Config{
		Level:      LevelInfo,
		Format:     FormatText,
		Output:     OutputStderr,
		FilePath:   "/var/log/hanadb-exporter.log",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}, cfg)

	set := Config{
		Level: LevelDebug, Format: FormatJSON, Output: OutputFile, FilePath: "/tmp/he.log",
		MaxSize: 10, MaxBackups: -1, MaxAge: 1, Compress: true,
	}.WithDefaults()
	assert.Equal(t, LevelDebug, set.Level)
	assert.Equal(t, FormatJSON, set.Format)
	assert.Equal(t, "/tmp/he.log", set.FilePath)
	assert.Equal(t, 10, set.MaxSize)
	assert.Equal(t, 3, set.MaxBackups)
	assert.True(t, set.Compress)
}
