package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"platforms-server/internal/engine"
	"platforms-server/internal/version"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Options - что монтировать помимо /ws
type Options struct {
	Addr           string
	Debug          bool         // /debug/* и pprof
	Journal        JournalReader
	Metrics        http.Handler // nil - без /metrics
	MetricsPath    string
	ShutdownPeriod time.Duration
}

type Server struct {
	Engine *engine.GameService
	opts   Options
	http   *http.Server
}

func New(engine *engine.GameService, opts Options) *Server {
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	if opts.ShutdownPeriod <= 0 {
		opts.ShutdownPeriod = 5 * time.Second
	}
	s := &Server{Engine: engine, opts: opts}
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler собирает маршруты (отдельно от Run для httptest)
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	if s.opts.Metrics != nil {
		mux.Handle(s.opts.MetricsPath, s.opts.Metrics)
	}

	if s.opts.Debug {
		debugHandler := NewDebugHandler(s.Engine, s.opts.Journal)
		debugHandler.RegisterRoutes(mux)

		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return mux
}

// Run слушает до отмены ctx, затем корректно гасит соединения
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Log.WithFields(logrus.Fields{
			"addr":  s.opts.Addr,
			"debug": s.opts.Debug,
		}).Info("Platforms server listening")
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownPeriod)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("Upgrade error")
		return
	}

	client := NewClient(s.Engine, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(version.Info())
}
