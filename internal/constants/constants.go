// Package constants содержит константы hanadb-exporter,
// сгруппированные по функциональному назначению.
package constants

// AppName — имя приложения.
const AppName = "hanadb-exporter"

// Версия переопределяется при сборке:
//
//	go build -ldflags "-X github.com/Kargones/hanadb-exporter/internal/constants.Version=1.2.0"
var (
	// Version — версия сборки.
	Version = "dev"
	// Commit — git commit сборки.
	Commit = "unknown"
)

// UserAgent возвращает значение заголовка User-Agent для исходящих HTTP запросов.
func UserAgent() string {
	return AppName + "/" + Version
}

// Типы экспортёров.
const (
	// ExporterPrometheus — pull модель, метрики отдаются на /metrics.
	ExporterPrometheus = "prometheus"
	// ExporterAzure — push модель, строки отправляются в Azure Log Analytics.
	ExporterAzure = "azure"
)

// Значения по умолчанию для HTTP сервера.
const (
	// DefaultListenAddress — адрес HTTP сервера по умолчанию.
	DefaultListenAddress = ":9668"
	// MetricsPath — путь отдачи метрик.
	MetricsPath = "/metrics"
	// HealthPath — путь проверки доступности базы данных.
	HealthPath = "/healthz"
)

// Константы Azure Log Analytics HTTP Data Collector API.
const (
	// AzureAPIVersion — версия API.
	AzureAPIVersion = "2016-04-01"
	// AzureResource — ресурс, участвующий в подписи запроса.
	AzureResource = "/api/logs"
	// AzureDefaultLogType — значение заголовка Log-Type по умолчанию.
	AzureDefaultLogType = "SapHana_Infra"
	// AzureTimestampField — поле записи с временем формирования.
	AzureTimestampField = "UTC_TIMESTAMP"
	// HANATimestampFormat — формат времени HANA (микросекунды).
	HANATimestampFormat = "2006-01-02 15:04:05.000000"
)
