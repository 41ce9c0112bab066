package azure

import (
	"errors"
	"fmt"
)

var (
	// ErrIngest — признак неуспешной отправки данных (errors.Is).
	ErrIngest = errors.New("log analytics ingest failed")
	// ErrWorkspaceRequired — не задан идентификатор рабочей области.
	ErrWorkspaceRequired = errors.New("azure: workspace id is required")
	// ErrInvalidSharedKey — ключ рабочей области не является base64.
	ErrInvalidSharedKey = errors.New("azure: invalid shared key")
	// ErrSourceRequired — не задан источник результатов запросов.
	ErrSourceRequired = errors.New("azure: source is required")
)

// IngestError — ответ сервиса с кодом, отличным от 200.
type IngestError struct {
	StatusCode int
	Body       string
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("log analytics ingest: HTTP %d: %s", e.StatusCode, e.Body)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrIngest).
func (e *IngestError) Is(target error) bool { return target == ErrIngest }
