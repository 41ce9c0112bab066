// Package config загружает конфигурацию приложения hanadb-exporter.
//
// Источник — YAML файл и переменные окружения HE_*. Переменные окружения
// переопределяют значения из файла, незаданные поля получают env-default.
package config

import (
	"time"

	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb"
	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/exporter"
)

// Config — корневая конфигурация приложения.
type Config struct {
	Exporter    ExporterConfig    `yaml:"exporter"`
	Database    DatabaseConfig    `yaml:"database"`
	Azure       AzureConfig       `yaml:"azure"`
	Logging     LoggingConfig     `yaml:"logging"`
	SelfMetrics SelfMetricsConfig `yaml:"selfMetrics"`
	Tracing     TracingConfig     `yaml:"tracing"`
	Alerting    AlertingConfig    `yaml:"alerting"`
}

// ExporterConfig содержит общие настройки экспортёра.
type ExporterConfig struct {
	// Type — активный приёмник: prometheus или azure.
	Type string `yaml:"type" env:"HE_EXPORTER_TYPE" env-default:"prometheus"`

	// ListenAddress — адрес HTTP сервера.
	ListenAddress string `yaml:"listenAddress" env:"HE_LISTEN_ADDRESS" env-default:":9668"`

	// MetricsFile — файл с запросами и метриками (.json, .yaml, .yml).
	MetricsFile string `yaml:"metricsFile" env:"HE_METRICS_FILE" env-default:"metrics.json"`

	// ScrapeTimeout — ограничение длительности прохода при scrape.
	ScrapeTimeout time.Duration `yaml:"scrapeTimeout" env:"HE_SCRAPE_TIMEOUT" env-default:"30s"`
}

// DatabaseConfig содержит параметры подключения к базе данных.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"HE_DB_DRIVER" env-default:"hdb"`

	// DSN — строка подключения целиком; если задана, Host/Port/User/... не используются.
	DSN string `yaml:"dsn" env:"HE_DB_DSN"`

	Host     string `yaml:"host" env:"HE_DB_HOST"`
	Port     int    `yaml:"port" env:"HE_DB_PORT"`
	User     string `yaml:"user" env:"HE_DB_USER"`
	Password string `yaml:"password" env:"HE_DB_PASSWORD"`
	Database string `yaml:"database" env:"HE_DB_NAME"`

	// Charset — кодировка текстовых значений, например windows-1251.
	Charset string `yaml:"charset" env:"HE_DB_CHARSET"`

	Timeout time.Duration `yaml:"timeout" env:"HE_DB_TIMEOUT" env-default:"30s"`
}

// Options возвращает параметры клиента базы данных.
func (d DatabaseConfig) Options() sqldb.Options {
	return sqldb.Options{
		Driver:   d.Driver,
		DSN:      d.DSN,
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		Database: d.Database,
		Charset:  d.Charset,
		Timeout:  d.Timeout,
	}
}

// AzureConfig содержит настройки отправки в Azure Log Analytics.
type AzureConfig struct {
	WorkspaceID string `yaml:"workspaceId" env:"HE_AZURE_WORKSPACE_ID"`

	// SharedKey — ключ рабочей области в base64.
	SharedKey string `yaml:"sharedKey" env:"HE_AZURE_SHARED_KEY"`

	// URI — адрес API; пусто — стандартный адрес рабочей области.
	URI string `yaml:"uri" env:"HE_AZURE_URI"`

	LogType string `yaml:"logType" env:"HE_AZURE_LOG_TYPE" env-default:"SapHana_Infra"`

	// Interval — период отправки.
	Interval time.Duration `yaml:"interval" env:"HE_AZURE_INTERVAL" env-default:"60s"`

	// Timeout — таймаут HTTP запроса отправки.
	Timeout time.Duration `yaml:"timeout" env:"HE_AZURE_TIMEOUT" env-default:"30s"`
}

// Settings возвращает параметры azure приёмника.
func (a AzureConfig) Settings() exporter.AzureSettings {
	return exporter.AzureSettings{
		WorkspaceID: a.WorkspaceID,
		SharedKey:   a.SharedKey,
		URI:         a.URI,
		LogType:     a.LogType,
		Interval:    a.Interval,
		Timeout:     a.Timeout,
	}
}

// IsPush сообщает, выбран ли push приёмник.
func (c *Config) IsPush() bool {
	return c.Exporter.Type == constants.ExporterAzure
}
