package anthropicclaude

import "github.com/florianilch/agency/types"

// Translator exposes the Anthropic-side conversions as a method set, so the
// provider can be passed around as a value.
type Translator struct{}

// ToOther converts Anthropic messages to OpenAI messages.
func (Translator) ToOther(messages []types.AnthropicMessage, opts ...types.Option) ([]types.OpenAIMessage, error) {
	return ToOpenAI(messages, opts...)
}

// ToolsToOther converts Anthropic tools to OpenAI tools.
func (Translator) ToolsToOther(tools []types.AnthropicTool) []types.OpenAITool {
	return ToolsToOpenAI(tools)
}
