package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes served by the ETL probe server.
const (
	LivenessPath  = "/healthz"
	ReadinessPath = "/readyz"
	MetricsPath   = "/metrics"
)

// Server serves the liveness, readiness and metrics endpoints of the
// underway ETL service.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wires the probe routes. Readiness is delegated to ready, which
// for the ETL is the pipeline (ready after its first loaded batch). Metrics
// are exposed from gatherer, so tests can pass an isolated registry.
func NewServer(addr string, ready sharedobs.ReadinessChecker, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+LivenessPath, sharedobs.LivenessHandler())
	mux.HandleFunc("GET "+ReadinessPath, sharedobs.ReadinessHandler(ready))
	mux.Handle("GET "+MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		EnableOpenMetrics: true,
	}))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           logRequests(mux, logger),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// logRequests records each request at debug level; probes hit these routes
// every few seconds, so info would drown the pipeline logs.
func logRequests(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		level := slog.LevelDebug
		if m.Code >= http.StatusInternalServerError && r.URL.Path != ReadinessPath {
			level = slog.LevelWarn
		}
		logger.Log(r.Context(), level, "http request",
			"method", r.Method, "path", r.URL.Path, "status", m.Code,
			"duration", m.Duration, "bytes", m.Written)
	})
}

// Start listens until Shutdown. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains open connections within the deadline of ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP runs a request through the full handler chain without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
