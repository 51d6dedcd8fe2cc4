package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Document is a conversation as exchanged by the CLI and the HTTP service.
// Messages and Tools hold raw JSON in the document's schema; System carries the
// out-of-band system prompt.
type Document struct {
	System   string          `json:"system,omitempty"`
	Messages json.RawMessage `json:"messages" validate:"required"`
	Tools    json.RawMessage `json:"tools,omitempty"`
}

// DecodeDocument decodes a document from JSON or, when name ends in .yaml/.yml,
// from YAML. A bare message array is accepted as a document without system
// prompt or tools.
func DecodeDocument(data []byte, name string) (Document, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var value any
		if err := yaml.Unmarshal(data, &value); err != nil {
			return Document{}, fmt.Errorf("decode yaml: %w", err)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return Document{}, fmt.Errorf("re-encode yaml as json: %w", err)
		}
		data = encoded
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return Document{Messages: json.RawMessage(trimmed)}, nil
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Document{}, fmt.Errorf("decode json: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return Document{}, fmt.Errorf("document has no messages: %w", err)
	}
	return doc, nil
}

// EncodeDocument encodes doc as JSON followed by a newline.
func EncodeDocument(doc *Document, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Conversation text routinely contains <, > and &.
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}
