package anthropicclaude

import (
	"github.com/florianilch/agency/types"
)

// ToolsFromOpenAI converts OpenAI function tools to Anthropic tools.
// OpenAI's strict flag has no Anthropic counterpart and is dropped.
func ToolsFromOpenAI(tools []types.OpenAITool) []types.AnthropicTool {
	if tools == nil {
		return nil
	}

	anthropicTools := make([]types.AnthropicTool, 0, len(tools))
	for _, tool := range tools {
		anthropicTools = append(anthropicTools, types.AnthropicTool{
			Name:        tool.Function.Name,
			Description: tool.Function.Description,
			InputSchema: types.AnthropicInputSchema{
				Type:       types.SchemaTypeObject,
				Properties: tool.Function.Parameters.Properties,
				Required:   tool.Function.Parameters.Required,
			},
		})
	}
	return anthropicTools
}

// ToolsToOpenAI converts Anthropic tools to OpenAI function tools. Missing
// properties become an empty object; required passes through and an empty list
// is dropped on the wire.
func ToolsToOpenAI(tools []types.AnthropicTool) []types.OpenAITool {
	if tools == nil {
		return nil
	}

	openaiTools := make([]types.OpenAITool, 0, len(tools))
	for _, tool := range tools {
		properties := tool.InputSchema.Properties
		if properties == nil {
			properties = map[string]any{}
		}

		openaiTools = append(openaiTools, types.OpenAITool{
			Type: types.ToolCallTypeFunction,
			Function: types.OpenAIToolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters: types.OpenAIParameters{
					Type:       types.SchemaTypeObject,
					Properties: properties,
					Required:   tool.InputSchema.Required,
				},
			},
		})
	}
	return openaiTools
}
