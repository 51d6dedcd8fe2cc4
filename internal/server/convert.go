package server

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/florianilch/agency/internal/convert"
	"github.com/florianilch/agency/types"
)

// ConvertHandler converts a request document from one schema to the other.
// The body is anything the CLI accepts: a {system, messages, tools} document or
// a bare message array, as JSON or, with a YAML content type, as YAML.
type ConvertHandler struct {
	Converter Converter
	From      types.Provider
}

// Compile-time check to ensure ConvertHandler implements http.Handler
var _ http.Handler = (*ConvertHandler)(nil)

// ServeHTTP decodes the document, converts it, and writes the result.
func (h *ConvertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			slog.WarnContext(ctx, "request exceeds size limit", "limit_bytes", maxBytesErr.Limit)
			writeJSONError(ctx, w, http.StatusRequestEntityTooLarge, ErrorTypeInvalidRequest,
				http.StatusText(http.StatusRequestEntityTooLarge))
			return
		}
		slog.WarnContext(ctx, "failed to read request", "error", err)
		writeJSONError(ctx, w, http.StatusBadRequest, ErrorTypeInvalidRequest, http.StatusText(http.StatusBadRequest))
		return
	}

	doc, err := convert.DecodeDocument(body, documentName(r))
	if err != nil {
		slog.WarnContext(ctx, "failed to decode request", "error", err)
		writeJSONError(ctx, w, http.StatusBadRequest, ErrorTypeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	if ctx.Err() != nil {
		return
	}

	out, err := h.Converter.Convert(ctx, h.From, doc)
	if err != nil {
		writeConversionError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, out, http.StatusOK)
}

// documentName maps the request content type to the file name DecodeDocument
// uses to pick a format. Anything but YAML is read as JSON.
func documentName(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return "body.json"
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return "body.yaml"
	default:
		return "body.json"
	}
}
