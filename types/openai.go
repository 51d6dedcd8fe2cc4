package types

// OpenAIMessage is a Schema A message in chat-completions wire format.
//
// Content is nil for an assistant turn that only carries tool calls; the wire
// form is "content": null.
type OpenAIMessage struct {
	Role       Role             `json:"role"`
	Content    *string          `json:"content"`
	Name       string           `json:"name,omitempty"`
	ToolCalls  []OpenAIToolCall `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

// Text returns the message content, or "" when it is null.
func (m OpenAIMessage) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// OpenAIToolCall is a function call issued by an assistant turn.
type OpenAIToolCall struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Function OpenAIFunctionCall `json:"function"`
}

// OpenAIFunctionCall names the function and carries its JSON-encoded arguments.
// Arguments is always a JSON object serialized as a string.
type OpenAIFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCallTypeFunction is the only tool call type either schema can express.
const ToolCallTypeFunction = "function"

// OpenAITool is a Schema A tool definition.
type OpenAITool struct {
	Type     string             `json:"type"`
	Function OpenAIToolFunction `json:"function"`
}

// OpenAIToolFunction describes a callable function.
type OpenAIToolFunction struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  OpenAIParameters `json:"parameters"`
	// Strict has no Schema B counterpart and is dropped when converting away.
	Strict *bool `json:"strict,omitempty"`
}

// OpenAIParameters is the JSON Schema object describing function arguments.
type OpenAIParameters struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
}
