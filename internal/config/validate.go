package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb"
	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/pkg/apperrors"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
)

// Validate проверяет все секции. Первая найденная ошибка возвращается
// как AppError с кодом CONFIG.VALIDATION_FAILED.
func (c *Config) Validate() error {
	checks := []struct {
		section string
		check   func() error
	}{
		{"exporter", c.validateExporter},
		{"database", c.validateDatabase},
		{"azure", c.validateAzure},
		{"logging", c.validateLogging},
		{"selfMetrics", func() error { m := c.SelfMetrics.ToMetrics(); return m.Validate() }},
		{"tracing", func() error { t := c.Tracing.ToTracing(); return t.Validate() }},
		{"alerting", func() error { a := c.Alerting.ToAlerting(); return a.Validate() }},
	}
	for _, ch := range checks {
		if err := ch.check(); err != nil {
			return apperrors.NewAppError(apperrors.ErrConfigValidate,
				fmt.Sprintf("некорректная секция %s", ch.section), err)
		}
	}
	return nil
}

func (c *Config) validateExporter() error {
	e := c.Exporter
	if e.Type != constants.ExporterPrometheus && e.Type != constants.ExporterAzure {
		return fmt.Errorf("type должен быть %s или %s, получено %q",
			constants.ExporterPrometheus, constants.ExporterAzure, e.Type)
	}
	if e.MetricsFile == "" {
		return errors.New("metricsFile обязателен")
	}
	if e.ScrapeTimeout <= 0 {
		return errors.New("scrapeTimeout должен быть положительным")
	}
	if e.ListenAddress == "" {
		return errors.New("listenAddress обязателен")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	d := c.Database
	if !sqldb.IsSupportedDriver(d.Driver) {
		return fmt.Errorf("неподдерживаемый driver %q, допустимые: %s",
			d.Driver, strings.Join(sqldb.SupportedDrivers(), ", "))
	}
	if d.DSN == "" && d.Host == "" && d.Driver != sqldb.DriverSQLite {
		return errors.New("требуется dsn или host")
	}
	if d.Port < 0 || d.Port > 65535 {
		return fmt.Errorf("port вне диапазона: %d", d.Port)
	}
	if d.Timeout <= 0 {
		return errors.New("timeout должен быть положительным")
	}
	return nil
}

func (c *Config) validateAzure() error {
	if !c.IsPush() {
		return nil
	}
	a := c.Azure
	if a.WorkspaceID == "" {
		return errors.New("workspaceId обязателен для exporter.type=azure")
	}
	if a.SharedKey == "" {
		return errors.New("sharedKey обязателен для exporter.type=azure")
	}
	if a.Interval <= 0 {
		return errors.New("interval должен быть положительным")
	}
	if a.Timeout <= 0 {
		return errors.New("timeout должен быть положительным")
	}
	return nil
}

func (c *Config) validateLogging() error {
	l := c.Logging
	levels := []string{logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError}
	if !slices.Contains(levels, strings.ToLower(l.Level)) {
		return fmt.Errorf("неизвестный level %q", l.Level)
	}
	if l.Format != logging.FormatJSON && l.Format != logging.FormatText {
		return fmt.Errorf("неизвестный format %q", l.Format)
	}
	if l.Output != logging.OutputStderr && l.Output != logging.OutputFile {
		return fmt.Errorf("неизвестный output %q", l.Output)
	}
	if l.Output == logging.OutputFile && l.FilePath == "" {
		return errors.New("filePath обязателен при output=file")
	}
	return nil
}
