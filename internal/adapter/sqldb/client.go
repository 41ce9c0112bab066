package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/pkg/apperrors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Значения по умолчанию.
const (
	DefaultDriver  = DriverHANA
	DefaultTimeout = 30 * time.Second
)

// Compile-time проверка реализации интерфейса
var _ Client = (*client)(nil)

// Options содержит параметры подключения.
// Если DSN задан, он используется как есть, иначе строится из Host/Port/User/Password/Database.
type Options struct {
	// Driver — имя драйвера database/sql (hdb, sqlserver, postgres, pgx, mysql, sqlite)
	Driver string
	// DSN — строка подключения целиком
	DSN string
	// Host — адрес сервера
	Host string
	// Port — порт сервера (0 — порт драйвера по умолчанию)
	Port int
	// User — имя пользователя
	User string
	// Password — пароль пользователя
	Password string
	// Database — имя базы данных (для sqlite — путь к файлу)
	Database string
	// Charset — кодировка текстовых []byte значений (WHATWG имя, например windows-1251).
	// Пусто — байты копируются без декодирования.
	Charset string
	// Timeout — таймаут подключения
	Timeout time.Duration
}

// client — реализация Client поверх database/sql.
type client struct {
	db      *sql.DB
	opts    Options
	dsn     string
	decoder *encoding.Decoder
}

// NewClient создаёт клиент с указанными параметрами.
// Подключение устанавливается в Connect.
func NewClient(opts Options) (Client, error) {
	if opts.Driver == "" {
		opts.Driver = DefaultDriver
	}
	spec, ok := drivers[opts.Driver]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported driver %q, supported: %v",
			apperrors.ErrDBConnect, opts.Driver, SupportedDrivers())
	}
	if opts.DSN == "" && opts.Driver != DriverSQLite && opts.Host == "" {
		return nil, fmt.Errorf("%s: host or dsn is required", apperrors.ErrDBConnect)
	}
	if opts.Port == 0 {
		opts.Port = spec.defaultPort
	}
	if opts.Port < 0 || opts.Port > 65535 {
		return nil, fmt.Errorf("%s: invalid port %d, must be between 1 and 65535", apperrors.ErrDBConnect, opts.Port)
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	c := &client{opts: opts}
	if opts.Charset != "" {
		enc, err := htmlindex.Get(opts.Charset)
		if err != nil {
			return nil, fmt.Errorf("%s: unknown charset %q: %w", apperrors.ErrDBConnect, opts.Charset, err)
		}
		c.decoder = enc.NewDecoder()
	}

	dsn, err := buildDSN(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", apperrors.ErrDBConnect, err)
	}
	c.dsn = dsn
	return c, nil
}

// NewClientFromDB оборачивает уже открытый *sql.DB.
func NewClientFromDB(db *sql.DB, charset string) (Client, error) {
	c := &client{db: db, opts: Options{Charset: charset}}
	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
		}
		c.decoder = enc.NewDecoder()
	}
	return c, nil
}

// Connect открывает пул соединений и проверяет доступность сервера.
func (c *client) Connect(ctx context.Context) error {
	db, err := sql.Open(c.opts.Driver, c.dsn)
	if err != nil {
		return fmt.Errorf("%s: %w", apperrors.ErrDBConnect, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		if ctx.Err() != nil {
			return fmt.Errorf("%s: context cancelled during ping: %w", apperrors.ErrDBConnect, ctx.Err())
		}
		return fmt.Errorf("%s: ping failed: %w", apperrors.ErrDBConnect, err)
	}

	c.db = db
	return nil
}

// Close закрывает пул соединений.
func (c *client) Close() error {
	if c.db != nil {
		err := c.db.Close()
		c.db = nil
		return err
	}
	return nil
}

// Ping проверяет доступность сервера.
func (c *client) Ping(ctx context.Context) error {
	if c.db == nil {
		return ErrNotConnected
	}
	return c.db.PingContext(ctx)
}

// Execute выполняет запрос и читает результат целиком.
// Ошибки драйвера возвращаются без обёртки.
func (c *client) Execute(ctx context.Context, query string) (*RawResult, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &RawResult{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = c.normalize(v)
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// normalize копирует []byte из буфера драйвера и декодирует их при заданной кодировке.
func (c *client) normalize(v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	if c.decoder != nil {
		decoded, err := c.decoder.Bytes(b)
		if err == nil {
			return string(decoded)
		}
	}
	return string(b)
}
