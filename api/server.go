// Package api - Thin HTTP layer over the estimator
// The API is ONLY responsible for: input ingestion, estimator calls, output serialization.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"eventcost/internal/errors"
	"eventcost/internal/logging"
)

// maxRequestBytes bounds a POST body
const maxRequestBytes = 1 << 16

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	version string
	logger  *zap.Logger
	metrics *Metrics
}

// NewServer creates a new API server. Metrics are served from gatherer.
func NewServer(version string, handler *Handler, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	s := &Server{
		handler: handler,
		mux:     http.NewServeMux(),
		version: version,
		logger:  logging.Or(logger),
		metrics: handler.metrics,
	}

	s.registerRoutes(gatherer)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes(gatherer prometheus.Gatherer) {
	s.mux.HandleFunc("GET /estimate", s.handleEstimateQuery)
	s.mux.HandleFunc("POST /estimate", s.handleEstimate)
	s.mux.HandleFunc("GET /tiers", s.handleTiers)

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	if gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
}

// handleEstimateQuery handles GET /estimate?events=3000&reference=true
func (s *Server) handleEstimateQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	includeRef, _ := strconv.ParseBool(q.Get("reference"))
	s.estimate(w, r, q.Get("events"), includeRef)
}

// handleEstimate handles POST /estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, requestID(r), "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	s.estimate(w, r, req.Events.String(), req.IncludeReference)
}

func (s *Server) estimate(w http.ResponseWriter, r *http.Request, events string, includeRef bool) {
	id := requestID(r)

	result, err := s.handler.execute(r.Context(), id, events, includeRef)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.IsType(err, errors.TypeInput) {
			status = http.StatusBadRequest
		}
		s.writeError(w, id, string(errors.TypeOf(err)), err.Error(), status)
		return
	}

	s.writeJSON(w, result, http.StatusOK)
}

// handleTiers handles GET /tiers
func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.handler.tiers(), http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":  s.version,
		"engine":   "eventcost",
		"schedule": s.handler.estimator.Schedule().Name(),
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, id, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{
		RequestID: id,
		Error:     ErrorDetail{Code: code, Message: message},
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Header.Get("X-Request-ID") == "" {
		r.Header.Set("X-Request-ID", uuid.NewString())
	}
	w.Header().Set("X-Request-ID", r.Header.Get("X-Request-ID"))

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	path := r.Pattern
	if path == "" {
		path = "unmatched"
	}
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		s.metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(elapsed.Seconds())
	}
	s.logger.Info("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", elapsed),
		zap.String("request_id", r.Header.Get("X-Request-ID")),
	)
}

// ListenAndServe serves until ctx is cancelled, then shuts down within timeout
func (s *Server) ListenAndServe(ctx context.Context, addr string, timeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Internal("shutting down server", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}
