package metrics

import "errors"

var (
	// ErrJobNameRequired возвращается если не указано имя job при заданном Pushgateway.
	ErrJobNameRequired = errors.New("job name is required")

	// ErrInvalidTimeout возвращается если указан невалидный таймаут.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrPushgatewayURLInvalid возвращается если URL Pushgateway имеет невалидный формат.
	ErrPushgatewayURLInvalid = errors.New("pushgateway URL has invalid format")

	// ErrRegistryRequired возвращается если не передан registry.
	ErrRegistryRequired = errors.New("prometheus registry is required")
)
