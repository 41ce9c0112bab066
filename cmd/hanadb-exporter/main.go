// Package main содержит точку входа hanadb-exporter.
// Экспортёр выполняет SQL запросы к базе данных и отдаёт результаты
// как метрики Prometheus или отправляет их в Azure Log Analytics.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kargones/hanadb-exporter/internal/config"
	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/di"
	"github.com/Kargones/hanadb-exporter/internal/pkg/apperrors"
)

// Коды завершения процесса.
const (
	exitOK     = 0
	exitConfig = 5
	exitInit   = 6
	exitRun    = 8
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run содержит основную логику и возвращает exit code.
// os.Exit вызывается в main, чтобы отработали все defer.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(constants.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "путь к YAML файлу конфигурации (по умолчанию только переменные окружения HE_*)")
	metricsPath := fs.String("metrics", "", "путь к файлу запросов и метрик (переопределяет exporter.metricsFile)")
	showVersion := fs.Bool("version", false, "вывести версию и выйти")
	printConfig := fs.Bool("print-config", false, "вывести итоговую конфигурацию без секретов и выйти")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Использование: %s [флаги]\n\n", constants.AppName)
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, config.Usage())
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitConfig
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s (commit %s)\n", constants.AppName, constants.Version, constants.Commit)
		return exitOK
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return exitConfig
	}
	// Флаг имеет приоритет над файлом и окружением.
	if *metricsPath != "" {
		cfg.Exporter.MetricsFile = *metricsPath
	}

	if *printConfig {
		if err := cfg.Dump(stdout); err != nil {
			fmt.Fprintf(stderr, "Не удалось вывести конфигурацию: %v\n", err)
			return exitConfig
		}
		return exitOK
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Не удалось инициализировать приложение: %v\n", err)
		if apperrors.CodeOf(err) == apperrors.ErrConfigLoad {
			return exitConfig
		}
		return exitInit
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			app.Logger.Error("ошибка освобождения ресурсов", "error", err.Error())
		}
	}()

	app.Logger.Info("запуск экспортёра",
		"version", constants.Version,
		"exporter", cfg.Exporter.Type,
		"listen", cfg.Exporter.ListenAddress,
		"metrics_file", cfg.Exporter.MetricsFile,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				// Ошибка логируется внутри Reload, работа продолжается.
				_ = app.Reload()
			}
		}
	}()

	if err := app.Run(ctx); err != nil {
		app.Logger.Error("экспортёр остановлен с ошибкой",
			"error", err.Error(), "code", apperrors.CodeOf(err))
		return exitRun
	}
	app.Logger.Info("экспортёр остановлен")
	return exitOK
}
