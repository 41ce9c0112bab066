package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Kargones/hanadb-exporter/internal/pkg/apperrors"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load читает конфигурацию из YAML файла path и переменных окружения HE_*,
// затем проверяет её. Пустой path — только переменные окружения.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
				"не удалось прочитать переменные окружения", err)
		}
	} else {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
					fmt.Sprintf("файл конфигурации %s не найден", path), err)
			}
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
				fmt.Sprintf("файл конфигурации %s недоступен", path), err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
				fmt.Sprintf("не удалось разобрать файл конфигурации %s", path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Usage возвращает описание переменных окружения.
func Usage() string {
	var cfg Config
	desc, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return desc
}
