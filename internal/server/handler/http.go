// Package handler provides HTTP request handling for the MCP bridge.
package handler

import (
	"net/http"
	"time"

	"github.com/brizzai/mcp-sync-console/internal/logger"
	"github.com/brizzai/mcp-sync-console/internal/utils"
	"go.uber.org/zap"
)

// HealthPath answers liveness probes without touching the MCP transport.
const HealthPath = "/healthz"

// Health is the body served on HealthPath.
type Health struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Handler manages HTTP request handling and middleware configuration.
type Handler struct {
	name    string
	version string
}

// NewHandler creates a new HTTP handler reporting name and version on the
// health endpoint.
func NewHandler(name, version string) *Handler {
	return &Handler{name: name, version: version}
}

// CreateHTTPHandler mounts mcpHandler at the root behind request logging and
// adds the health endpoint.
func (h *Handler) CreateHTTPHandler(mcpHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(HealthPath, h.health)
	mux.Handle("/", LoggingMiddleware(mcpHandler))
	return mux
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	utils.WriteJSON(w, http.StatusOK, Health{Status: "ok", Name: h.name, Version: h.version})
}

// LoggingMiddleware logs information about each incoming request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		logger.Debug("HTTP Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", rw.statusCode),
			zap.Duration("duration", time.Since(start)),
			zap.String("user_agent", r.UserAgent()),
		)
	})
}

// responseWriter captures the status code. Flush is forwarded so SSE streams
// keep working behind the middleware.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
