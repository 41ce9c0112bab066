// Package logging предоставляет интерфейс и реализации для структурированного логирования.
package logging

// Logger определяет интерфейс для структурированного логирования.
// Реализации: SlogAdapter (log/slog) и NopLogger.
//
// Все методы принимают сообщение и опциональные key-value пары:
//
//	logger.Info("запрос выполнен", "query", prefix, "rows", 15)
//
// Логгер передаётся каждому компоненту экспортёра через конструктор,
// глобальное состояние логирования не используется.
type Logger interface {
	// Debug записывает сообщение уровня DEBUG.
	Debug(msg string, args ...any)

	// Info записывает сообщение уровня INFO.
	Info(msg string, args ...any)

	// Warn записывает сообщение уровня WARN.
	Warn(msg string, args ...any)

	// Error записывает сообщение уровня ERROR.
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	With(args ...any) Logger
}

// ComponentKey — имя атрибута, которым помечаются записи компонента.
const ComponentKey = "component"

// ForComponent возвращает логгер с атрибутом component=name.
// При nil logger возвращает NopLogger.
func ForComponent(logger Logger, name string) Logger {
	if logger == nil {
		return NewNopLogger()
	}
	return logger.With(ComponentKey, name)
}
