// Package tracing предоставляет OpenTelemetry трейсинг экспортёра и trace ID
// для корреляции логов одного цикла сбора.
//
// Формат trace ID: 32-символьный hex string (16 байт), совместимый с W3C Trace Context:
//
//	"a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"
package tracing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID генерирует уникальный trace ID через crypto/rand.
// При ошибке crypto/rand возвращает значение на основе времени и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID: %016x для uint64 даёт ровно 16 символов, итого 32.
func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	timestamp := uint64(time.Now().UnixNano())
	return fmt.Sprintf("%016x%016x", timestamp, counter)
}
