package config

import "github.com/Kargones/hanadb-exporter/internal/pkg/logging"

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	// Level - уровень логирования (debug, info, warn, error)
	Level string `yaml:"level" env:"HE_LOG_LEVEL" env-default:"info"`

	// Format - формат логов (json, text)
	Format string `yaml:"format" env:"HE_LOG_FORMAT" env-default:"text"`

	// Output - вывод логов (stderr, file)
	Output string `yaml:"output" env:"HE_LOG_OUTPUT" env-default:"stderr"`

	// FilePath - путь к файлу логов (если output=file)
	FilePath string `yaml:"filePath" env:"HE_LOG_FILE_PATH" env-default:"/var/log/hanadb-exporter.log"`

	// MaxSize - максимальный размер файла лога в MB
	MaxSize int `yaml:"maxSize" env:"HE_LOG_MAX_SIZE" env-default:"100"`

	// MaxBackups - максимальное количество backup файлов
	MaxBackups int `yaml:"maxBackups" env:"HE_LOG_MAX_BACKUPS" env-default:"3"`

	// MaxAge - максимальный возраст backup файлов в днях
	MaxAge int `yaml:"maxAge" env:"HE_LOG_MAX_AGE" env-default:"7"`

	// Compress - сжимать ли backup файлы.
	// Явное compress: false в YAML перекрывается env-default, отключить можно только через HE_LOG_COMPRESS=false.
	Compress bool `yaml:"compress" env:"HE_LOG_COMPRESS" env-default:"true"`
}

// ToLogging возвращает настройки пакета logging.
func (l LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:      l.Level,
		Format:     l.Format,
		Output:     l.Output,
		FilePath:   l.FilePath,
		MaxSize:    l.MaxSize,
		MaxBackups: l.MaxBackups,
		MaxAge:     l.MaxAge,
		Compress:   l.Compress,
	}
}
