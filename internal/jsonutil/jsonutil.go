// Package jsonutil wraps JSON encoding for the translators. It is the only place
// where encoding/json failures are caught; callers get *types.Error values and
// treat encoding as infallible past these helpers.
package jsonutil

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/florianilch/agency/types"
)

// ParseObject parses str as a JSON object. Invalid JSON and non-object values
// (arrays, scalars, null) are validation errors carrying str.
func ParseObject(str string, provider types.Provider) (map[string]any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(str), &parsed); err != nil {
		return nil, types.NewValidationError(fmt.Sprintf("invalid JSON: %v", err), provider, str)
	}

	if !IsObject(parsed) {
		return nil, types.NewValidationError("parsed JSON is not an object", provider, str)
	}
	return parsed.(map[string]any), nil
}

// Stringify encodes v as compact JSON. Values encoding/json cannot represent
// (channels, funcs, NaN, cyclic pointers) are transform errors carrying v.
func Stringify(v any, provider types.Provider) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", types.NewTransformError(fmt.Sprintf("JSON stringify failed: %v", err), provider, v)
	}
	return string(data), nil
}

// IsObject reports whether v is a decoded JSON object.
func IsObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// NewToolCallID generates an OpenAI-style tool call ID (format: call_<8-char-uuid>).
func NewToolCallID() string {
	return fmt.Sprintf("call_%s", uuid.New().String()[:8])
}
