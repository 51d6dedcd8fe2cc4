package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/florianilch/agency/types"
)

// Error types reported in the error envelope.
const (
	ErrorTypeInvalidRequest = "invalid_request_error"
	ErrorTypeConversion     = "conversion_error"
	ErrorTypeServer         = "server_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Err ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Message  string         `json:"message"`
	Type     string         `json:"type"`
	Provider types.Provider `json:"provider,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
// Logs encoding failures internally using the provided context.
func writeJSON(ctx context.Context, w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	// Headers and status are written before encoding to avoid buffering.
	// If encoding fails, the client may receive a partial response.
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		slog.ErrorContext(ctx, "failed to encode JSON response", "error", err)
	}
}

func writeJSONError(ctx context.Context, w http.ResponseWriter, status int, errType, message string) {
	writeJSON(ctx, w, &ErrorResponse{Err: ErrorDetail{Message: message, Type: errType}}, status)
}

// writeConversionError maps translator errors to status codes: validation errors
// are the caller's fault (400), transform errors mean valid input could not be
// re-encoded (422), anything else is a server error.
func writeConversionError(ctx context.Context, w http.ResponseWriter, err error) {
	var convErr *types.Error
	if !errors.As(err, &convErr) {
		slog.ErrorContext(ctx, "conversion failed", "error", err)
		writeJSONError(ctx, w, http.StatusInternalServerError, ErrorTypeServer,
			http.StatusText(http.StatusInternalServerError))
		return
	}

	detail := ErrorDetail{Message: err.Error(), Provider: convErr.Provider}
	status := http.StatusInternalServerError
	switch convErr.Kind {
	case types.KindValidation:
		status = http.StatusBadRequest
		detail.Type = ErrorTypeInvalidRequest
	case types.KindTransform:
		status = http.StatusUnprocessableEntity
		detail.Type = ErrorTypeConversion
	default:
		detail.Type = ErrorTypeServer
	}

	writeJSON(ctx, w, &ErrorResponse{Err: detail}, status)
}
