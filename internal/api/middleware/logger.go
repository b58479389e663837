package middleware

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Logger attaches a request-scoped child of base to the request context, so
// downstream code can log through zerolog.Ctx with the request ID already set.
func Logger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logCtx := base.With()
			if requestID := GetRequestID(r.Context()); requestID != "" {
				logCtx = logCtx.Str("request_id", requestID)
			}
			logger := logCtx.Logger()

			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
		})
	}
}
