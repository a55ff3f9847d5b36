package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scent-api/internal/api/shared"
	"github.com/phrazzld/scent-api/internal/platform/logger"
)

// TraceIDHeader echoes the request's trace ID back to the caller.
const TraceIDHeader = "X-Trace-ID"

// Trace adds a trace ID to the request context and attaches a logger
// carrying it. It should run before any middleware that logs.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := logger.FromContextOrDefault(ctx, base).With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
