package logging

// Поддерживаемые форматы вывода логов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Поддерживаемые уровни логирования.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Поддерживаемые типы вывода логов.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Значения по умолчанию; их же задаёт секция logging конфигурации приложения.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "/var/log/hanadb-exporter.log"
	DefaultMaxSize    = 100 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
)

// Config — настройки логирования экспортёра.
type Config struct {
	// Format — "json" или "text".
	Format string

	// Level — "debug", "info", "warn" или "error".
	Level string

	// Output — "stderr" или "file" (lumberjack).
	Output string

	// FilePath, MaxSize (MB), MaxBackups, MaxAge (дни) и Compress
	// используются только при Output="file".
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// WithDefaults возвращает копию c, где пустые поля и неположительные
// лимиты ротации заменены значениями по умолчанию. Compress не меняется.
func (c Config) WithDefaults() Config {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.FilePath == "" {
		c.FilePath = DefaultFilePath
	}
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = DefaultMaxBackups
	}
	if c.MaxAge <= 0 {
		c.MaxAge = DefaultMaxAge
	}
	return c
}
