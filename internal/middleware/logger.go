package middleware

import (
	"net/http"
	"strings"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"granrah.cl/granrah-web/internal/observability"
)

// Logger emits one structured log entry per request and exposes a request-scoped
// logger to handlers through observability.FromContext.
func Logger(base *zap.Logger) func(http.Handler) http.Handler {
	base = observability.OrNop(base)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()
			reqLogger := base
			if rid := chiMid.GetReqID(ctx); rid != "" {
				ctx = WithRequestID(ctx, rid)
				reqLogger = base.With(zap.String("request_id", rid))
			}
			ctx = observability.WithLogger(ctx, reqLogger)

			rw := NewResponseRecorder(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			level := zapcore.InfoLevel
			switch {
			case rw.Status() >= 500:
				level = zapcore.ErrorLevel
			case rw.Status() >= 400:
				level = zapcore.WarnLevel
			}
			if ce := reqLogger.Check(level, "request"); ce != nil {
				ce.Write(
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", rw.Status()),
					zap.Int("bytes", rw.BytesWritten()),
					zap.Int64("duration_ms", time.Since(start).Milliseconds()),
					zap.String("remote_ip", clientIP(r)),
					zap.Bool("htmx", IsHTMX(ctx)),
				)
			}
		})
	}
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For is set by the fronting proxy (last IP is client)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		p := strings.Split(xff, ",")
		return strings.TrimSpace(p[len(p)-1])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}
