// Package sqldb определяет интерфейсы и адаптер для выполнения SQL запросов
// экспортёра поверх database/sql.
//
// Интерфейсы разделены по принципу ISP: QueryExecutor нужен оркестратору сбора,
// Connector — жизненному циклу приложения и /healthz. Композитный Client
// объединяет оба.
package sqldb

import (
	"context"
	"errors"
)

// ErrNotConnected возвращается при обращении к клиенту до Connect или после Close.
var ErrNotConnected = errors.New("sqldb: connection not established")

// RawResult — табличный результат запроса.
// Порядок Columns стабилен и совпадает с порядком значений в каждой строке Rows.
type RawResult struct {
	// Columns — имена колонок в порядке, возвращённом драйвером.
	Columns []string
	// Rows — строки результата. Значения нормализованы:
	// []byte скопированы или декодированы в string (см. Options.Charset).
	Rows [][]any
}

// ColumnIndex строит отображение имя колонки → позиция.
// Для повторяющихся имён выигрывает первая колонка.
func (r *RawResult) ColumnIndex() map[string]int {
	index := make(map[string]int, len(r.Columns))
	for i, name := range r.Columns {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	return index
}

// QueryExecutor выполняет SQL запрос и возвращает результат целиком.
// Вызов синхронный и блокирующий. Ошибки драйвера возвращаются без обёртки.
type QueryExecutor interface {
	Execute(ctx context.Context, query string) (*RawResult, error)
}

// Connector управляет соединением с базой данных.
type Connector interface {
	// Connect открывает пул соединений и проверяет доступность сервера.
	Connect(ctx context.Context) error
	// Ping проверяет доступность сервера.
	Ping(ctx context.Context) error
	// Close закрывает пул соединений.
	Close() error
}

// Client — композитный интерфейс, объединяющий все операции адаптера.
type Client interface {
	Connector
	QueryExecutor
}
