package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// statusRecorder captures the status code written by the downstream handler.
type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// withAccessLog tags each request with an id, logs it once it completes and
// records its latency.
func (h *handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		if h.metrics != nil {
			h.metrics.RequestDuration.
				WithLabelValues(routeLabel(r.URL.Path), r.Method, strconv.Itoa(rec.status)).
				Observe(elapsed.Seconds())
		}

		h.logger.Info("access log",
			zap.String("op", "server.withAccessLog"),
			zap.String("request_id", requestID),
			zap.Int("status_code", rec.status),
			zap.Float64("latency", elapsed.Seconds()),
			zap.String("client_ip", clientIP(r)),
			zap.String("user_agent", r.UserAgent()),
			zap.String("url", r.URL.String()),
			zap.String("method", r.Method),
		)
	})
}

// routeLabel keeps the path label bounded to the routes the API serves.
func routeLabel(path string) string {
	switch path {
	case "/api/compound-interest", "/api/share", "/api/version", "/healthz":
		return path
	}
	return "other"
}

// clientIP checks X-Forwarded-For and X-Real-IP before falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
