// Package agency translates chat messages and tool definitions between the
// OpenAI chat-completions schema and the Anthropic Messages schema.
//
//	anthropicMessages, err := agency.OpenAI.ToOther(openaiMessages)
//	openaiMessages, err := agency.Anthropic.ToOther(anthropicMessages)
//
// The provider packages (provider/openaichat, provider/anthropicclaude) expose the
// same conversions as plain functions, plus bridges to the official SDK types.
package agency

import (
	"github.com/florianilch/agency/provider/anthropicclaude"
	"github.com/florianilch/agency/provider/openaichat"
	"github.com/florianilch/agency/types"
)

// Translator defines the conversion contract of one provider namespace: convert its
// messages and its tool definitions to the other provider's shape.
//
// Type parameters:
//   - TMessage, TTool:           the namespace's own schema
//   - TOtherMessage, TOtherTool: the schema it converts to
type Translator[TMessage, TOtherMessage, TTool, TOtherTool any] interface {
	// ToOther converts a whole conversation. It either converts every message or
	// returns a *types.Error for the first offending one.
	ToOther(messages []TMessage, opts ...types.Option) ([]TOtherMessage, error)

	// ToolsToOther converts tool definitions. It cannot fail.
	ToolsToOther(tools []TTool) []TOtherTool
}

// Concrete translator contracts for the two providers.
type (
	OpenAITranslator    = Translator[types.OpenAIMessage, types.AnthropicMessage, types.OpenAITool, types.AnthropicTool]
	AnthropicTranslator = Translator[types.AnthropicMessage, types.OpenAIMessage, types.AnthropicTool, types.OpenAITool]
)

// Provider namespaces.
var (
	OpenAI    OpenAITranslator    = openaichat.Translator{}
	Anthropic AnthropicTranslator = anthropicclaude.Translator{}
)

// Re-exported so callers of the facade need a single import for the common cases.
type (
	OpenAIMessage    = types.OpenAIMessage
	OpenAIToolCall   = types.OpenAIToolCall
	OpenAITool       = types.OpenAITool
	AnthropicMessage = types.AnthropicMessage
	AnthropicTool    = types.AnthropicTool
	ContentBlock     = types.ContentBlock
	Option           = types.Option
	Error            = types.Error
)
