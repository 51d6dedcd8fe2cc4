// Package openaichat is the OpenAI-side entry point of the translator. The
// conversion rules live in anthropicclaude; this package exposes them from the
// OpenAI point of view and bridges Schema A values to openai-go SDK params.
package openaichat

import (
	"github.com/florianilch/agency/provider/anthropicclaude"
	"github.com/florianilch/agency/types"
)

// ToAnthropic converts OpenAI messages to Anthropic messages.
func ToAnthropic(messages []types.OpenAIMessage, opts ...types.Option) ([]types.AnthropicMessage, error) {
	return anthropicclaude.FromOpenAI(messages, opts...)
}

// FromAnthropic converts Anthropic messages to OpenAI messages.
func FromAnthropic(messages []types.AnthropicMessage, opts ...types.Option) ([]types.OpenAIMessage, error) {
	return anthropicclaude.ToOpenAI(messages, opts...)
}

// ToolsToAnthropic converts OpenAI tools to Anthropic tools.
func ToolsToAnthropic(tools []types.OpenAITool) []types.AnthropicTool {
	return anthropicclaude.ToolsFromOpenAI(tools)
}

// ToolsFromAnthropic converts Anthropic tools to OpenAI tools.
func ToolsFromAnthropic(tools []types.AnthropicTool) []types.OpenAITool {
	return anthropicclaude.ToolsToOpenAI(tools)
}

// Translator exposes the OpenAI-side conversions as a method set.
type Translator struct{}

// ToOther converts OpenAI messages to Anthropic messages.
func (Translator) ToOther(messages []types.OpenAIMessage, opts ...types.Option) ([]types.AnthropicMessage, error) {
	return ToAnthropic(messages, opts...)
}

// ToolsToOther converts OpenAI tools to Anthropic tools.
func (Translator) ToolsToOther(tools []types.OpenAITool) []types.AnthropicTool {
	return ToolsToAnthropic(tools)
}
