// Package server поднимает HTTP сервер экспортёра: /metrics, /healthz и стартовую страницу.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Kargones/hanadb-exporter/internal/constants"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultShutdownTimeout — сколько ждать завершения активных запросов при остановке.
	DefaultShutdownTimeout = 5 * time.Second
	// DefaultHealthTimeout — таймаут проверки базы данных на /healthz.
	DefaultHealthTimeout = 5 * time.Second

	readHeaderTimeout = 10 * time.Second
)

// Pinger проверяет доступность базы данных.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options содержит настройки и зависимости Server.
type Options struct {
	// Address — адрес прослушивания, по умолчанию ":9668".
	Address string
	// Gatherer — источник метрик для /metrics (обязателен).
	Gatherer prometheus.Gatherer
	// DB — проверка базы данных для /healthz; nil — /healthz всегда отвечает 200.
	DB Pinger
	// Logger — логгер; nil — NopLogger.
	Logger logging.Logger
	// HealthTimeout — таймаут Ping на /healthz.
	HealthTimeout time.Duration
}

// Server — HTTP сервер экспортёра.
type Server struct {
	httpServer    *http.Server
	gatherer      prometheus.Gatherer
	db            Pinger
	logger        logging.Logger
	healthTimeout time.Duration
}

// New создаёт Server. Сервер не запускается до вызова Run.
func New(opts Options) (*Server, error) {
	if opts.Gatherer == nil {
		return nil, errors.New("server: gatherer is required")
	}
	s := &Server{
		gatherer:      opts.Gatherer,
		db:            opts.DB,
		logger:        logging.ForComponent(opts.Logger, "http-server"),
		healthTimeout: opts.HealthTimeout,
	}
	if s.healthTimeout <= 0 {
		s.healthTimeout = DefaultHealthTimeout
	}
	addr := opts.Address
	if addr == "" {
		addr = constants.DefaultListenAddress
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s, nil
}

// Addr возвращает адрес прослушивания.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler возвращает маршрутизатор сервера.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Method(http.MethodGet, constants.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{
		ErrorLog:      errorLog{logger: s.logger},
		ErrorHandling: promhttp.ContinueOnError,
	}))
	r.Get(constants.HealthPath, s.health)
	r.Get("/", s.banner)
	return r
}

// Run слушает адрес до отмены ctx, после чего корректно останавливает сервер.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP сервер запущен", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("HTTP сервер остановлен")
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), s.healthTimeout)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			s.logger.Warn("база данных недоступна", "error", err.Error())
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintln(w, "ok")
}

func (s *Server) banner(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w, `<html>
<head><title>%[1]s</title></head>
<body>
<h1>%[1]s</h1>
<p>version %[2]s</p>
<p><a href="%[3]s">Metrics</a></p>
</body>
</html>
`, constants.AppName, constants.Version, constants.MetricsPath)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP запрос",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// errorLog передаёт ошибки promhttp в Logger.
type errorLog struct {
	logger logging.Logger
}

func (e errorLog) Println(v ...any) {
	e.logger.Warn("ошибка сбора метрик", "error", fmt.Sprint(v...))
}
