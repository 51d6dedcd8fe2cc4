package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/florianilch/agency/internal/observability"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDGeneration reads the request ID from the client header, generates one
// if missing, and stores it in the request context for handlers and log records.
func RequestIDGeneration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = observability.RequestID(r.Context())
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := observability.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDPropagation sets the X-Request-ID response header and adds the ID to
// the request log. It must run inside Logging.
func RequestIDPropagation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestID := observability.RequestID(r.Context()); requestID != "" {
			// Set early to ensure it's present during recovery scenarios
			w.Header().Set(RequestIDHeader, requestID)
			SetLogAttrs(r.Context(), slog.String("request_id", requestID))
		}

		next.ServeHTTP(w, r)
	})
}
