package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"ErrConfigLoad", ErrConfigLoad, "CONFIG.LOAD_FAILED"},
		{"ErrConfigParse", ErrConfigParse, "CONFIG.PARSE_FAILED"},
		{"ErrConfigValidate", ErrConfigValidate, "CONFIG.VALIDATION_FAILED"},
		{"ErrDBConnect", ErrDBConnect, "DB.CONNECT_FAILED"},
		{"ErrExporterInit", ErrExporterInit, "EXPORTER.INIT_FAILED"},
		{"ErrExporterRun", ErrExporterRun, "EXPORTER.RUN_FAILED"},
		{"ErrIngestFailed", ErrIngestFailed, "INGEST.FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant)
		})
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	appErr := &AppError{
		Code:    ErrDBConnect,
		Message: "не удалось подключиться к базе данных",
		Cause:   errors.New("connection refused"),
	}

	expected := "DB.CONNECT_FAILED: не удалось подключиться к базе данных (connection refused)"
	assert.Equal(t, expected, appErr.Error())
}

func TestAppError_Error_WithoutCause(t *testing.T) {
	appErr := &AppError{
		Code:    ErrConfigLoad,
		Message: "не удалось загрузить конфигурацию",
	}

	assert.Equal(t, "CONFIG.LOAD_FAILED: не удалось загрузить конфигурацию", appErr.Error())
}

func TestAppError_ErrorsIs(t *testing.T) {
	cause := errors.New("оригинальная ошибка")
	appErr := NewAppError(ErrIngestFailed, "отправка не удалась", cause)

	assert.True(t, errors.Is(appErr, cause))
	assert.Equal(t, cause, appErr.Unwrap())
}

func TestCodeOf(t *testing.T) {
	appErr := NewAppError(ErrExporterInit, "неизвестный тип экспортёра", nil)

	assert.Equal(t, ErrExporterInit, CodeOf(appErr))
	assert.Equal(t, ErrExporterInit, CodeOf(fmt.Errorf("запуск: %w", appErr)))
	assert.Empty(t, CodeOf(errors.New("plain")))
	assert.Empty(t, CodeOf(nil))
}

func TestAppError_JSON_Serialization(t *testing.T) {
	appErr := NewAppError(ErrConfigLoad, "не удалось загрузить конфигурацию", errors.New("secret dsn"))

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, ErrConfigLoad, parsed["code"])
	assert.Equal(t, "не удалось загрузить конфигурацию", parsed["message"])
	_, hasCause := parsed["cause"]
	assert.False(t, hasCause, "Cause не должен сериализоваться в JSON")
}
