package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Content block discriminators on the wire.
const (
	BlockTypeText       = "text"
	BlockTypeToolUse    = "tool_use"
	BlockTypeToolResult = "tool_result"
)

// AnthropicMessage is a Schema B message. Content is never empty once produced
// by a translator.
type AnthropicMessage struct {
	Role    Role           `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one typed block of a Schema B message: TextBlock, ToolUseBlock
// or ToolResultBlock. The set is closed; consumers switch on the concrete type.
//
//sumtype:decl
type ContentBlock interface {
	// BlockType returns the wire discriminator.
	BlockType() string

	sealed()
}

// TextBlock is plain text.
type TextBlock struct {
	Text string `json:"text"`
}

// ToolUseBlock is a model-issued tool invocation. Input is the parsed JSON object
// of the call arguments.
type ToolUseBlock struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// ToolResultBlock answers a ToolUseBlock with the same id.
//
// Content is optional upstream. It is a string when produced by the translator;
// decoded messages may also carry a JSON array of blocks.
type ToolResultBlock struct {
	ToolUseID string `json:"tool_use_id"`
	Content   any    `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

func (TextBlock) BlockType() string       { return BlockTypeText }
func (ToolUseBlock) BlockType() string    { return BlockTypeToolUse }
func (ToolResultBlock) BlockType() string { return BlockTypeToolResult }

func (TextBlock) sealed()       {}
func (ToolUseBlock) sealed()    {}
func (ToolResultBlock) sealed() {}

// MarshalJSON adds the "type" discriminator.
func (b TextBlock) MarshalJSON() ([]byte, error) {
	type wire TextBlock
	return json.Marshal(struct {
		Type string `json:"type"`
		wire
	}{BlockTypeText, wire(b)})
}

// MarshalJSON adds the "type" discriminator.
func (b ToolUseBlock) MarshalJSON() ([]byte, error) {
	type wire ToolUseBlock
	if b.Input == nil {
		// The API rejects "input": null.
		b.Input = map[string]any{}
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		wire
	}{BlockTypeToolUse, wire(b)})
}

// MarshalJSON adds the "type" discriminator.
func (b ToolResultBlock) MarshalJSON() ([]byte, error) {
	type wire ToolResultBlock
	return json.Marshal(struct {
		Type string `json:"type"`
		wire
	}{BlockTypeToolResult, wire(b)})
}

// UnmarshalJSON decodes typed blocks. A bare string content is accepted as a
// single text block, matching the Messages API shorthand.
func (m *AnthropicMessage) UnmarshalJSON(data []byte) error {
	var wire struct {
		Role    Role            `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	m.Role = wire.Role
	m.Content = nil

	raw := bytes.TrimSpace(wire.Content)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("decode string content: %w", err)
		}
		m.Content = []ContentBlock{TextBlock{Text: text}}
		return nil
	}

	var rawBlocks []json.RawMessage
	if err := json.Unmarshal(raw, &rawBlocks); err != nil {
		return fmt.Errorf("decode content blocks: %w", err)
	}

	m.Content = make([]ContentBlock, 0, len(rawBlocks))
	for i, rawBlock := range rawBlocks {
		block, err := DecodeContentBlock(rawBlock)
		if err != nil {
			return fmt.Errorf("decode content block %d: %w", i, err)
		}
		m.Content = append(m.Content, block)
	}
	return nil
}

// DecodeContentBlock decodes a single block by its "type" discriminator.
func DecodeContentBlock(data []byte) (ContentBlock, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case BlockTypeText:
		var b TextBlock
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return b, nil
	case BlockTypeToolUse:
		var b ToolUseBlock
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return b, nil
	case BlockTypeToolResult:
		var b ToolResultBlock
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported content block type %q", head.Type)
	}
}

// AnthropicTool is a Schema B tool definition.
type AnthropicTool struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	InputSchema AnthropicInputSchema `json:"input_schema"`
}

// AnthropicInputSchema is the JSON Schema object describing tool input.
type AnthropicInputSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
}

// SchemaTypeObject is the only schema type tool definitions accept.
const SchemaTypeObject = "object"
