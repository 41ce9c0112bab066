// Package urlutil предоставляет утилиты для безопасной работы с URL.
package urlutil

import (
	"net/url"
	"strings"
)

// MaskURL маскирует URL для безопасного логирования.
// Скрывает path и query параметры, которые могут содержать токены или credentials.
// Пример: "https://hooks.slack.com/services/XXX/YYY/ZZZ" → "https://hooks.slack.com/***"
func MaskURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "***invalid-url***"
	}
	// Показываем только scheme и host
	return u.Scheme + "://" + u.Host + "/***"
}

// MaskDSN скрывает пароль в строке подключения к базе данных.
// URL-форма (hdb://, sqlserver://, postgres://) маскируется через url.URL.Redacted,
// форма go-sql-driver/mysql "user:pass@tcp(host)/db" — заменой пароля на "xxxxx".
func MaskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Redacted()
	}
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	colon := strings.Index(dsn[:at], ":")
	if colon < 0 {
		return dsn
	}
	return dsn[:colon+1] + "xxxxx" + dsn[at:]
}

// MaskSecret оставляет от секрета только первые и последние два символа.
// Короткие секреты скрываются целиком.
func MaskSecret(secret string) string {
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:2] + "***" + secret[len(secret)-2:]
}
