package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/francedirectjp-art/astro-medical-system/internal/common/errors"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/metrics"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID assigns a UUID to each request and echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestIDFrom extracts the request ID from the context.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging logs each request with its outcome and latency, and feeds the
// request metrics.
func (s *Server) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		route := r.URL.Path
		status := strconv.Itoa(rec.status)

		metrics.RequestsTotal.WithLabelValues(route, status).Inc()
		metrics.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
		if s.observability != nil {
			s.observability.RecordRequest(r.Context(), route, status)
			s.observability.RecordRequestDuration(r.Context(), duration, route)
		}

		s.logger.Info("request completed", map[string]interface{}{
			"request_id": RequestIDFrom(r.Context()),
			"method":     r.Method,
			"path":       route,
			"status":     rec.status,
			"duration":   duration.String(),
		})
	})
}

// CORS handles cross-origin headers for the configured origins.
func (s *Server) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Beta-Key")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.config.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// BetaAuth checks the beta access key. The key may arrive in the X-Beta-Key
// header, the beta query parameter, or a beta_key body field. Development
// environments skip the check entirely.
func (s *Server) BetaAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.App.IsDevelopment() {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get("X-Beta-Key")
		if key == "" {
			key = r.URL.Query().Get("beta")
		}
		if key == "" && r.Body != nil {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			if err == nil {
				r.Body = io.NopCloser(bytes.NewReader(body))
				var probe struct {
					BetaKey string `json:"beta_key"`
				}
				if json.Unmarshal(body, &probe) == nil {
					key = probe.BetaKey
				}
			}
		}

		if key == "" || key != s.config.Server.BetaKey {
			s.writeError(w, r, apperrors.NewUnauthorizedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit enforces the per-route request budget keyed by client IP.
func (s *Server) RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				s.logger.WithError(err).Warn("rate limiter error", nil)
				allowed = true
			}
			if !allowed {
				s.writeError(w, r, apperrors.NewRateLimitedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
