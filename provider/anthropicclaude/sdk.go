package anthropicclaude

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/florianilch/agency/internal/jsonutil"
	"github.com/florianilch/agency/types"
)

// ToMessageParams converts Anthropic messages to anthropic-sdk-go request params.
func ToMessageParams(messages []types.AnthropicMessage) ([]anthropic.MessageParam, error) {
	params := make([]anthropic.MessageParam, 0, len(messages))
	for i, msg := range messages {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Content))
		for j, block := range msg.Content {
			switch b := block.(type) {
			case types.TextBlock:
				blocks = append(blocks, anthropic.NewTextBlock(b.Text))

			case types.ToolUseBlock:
				// The API rejects a null input; an argument-less call is an empty object.
				var input any = b.Input
				if b.Input == nil {
					input = map[string]any{}
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(b.ID, input, b.Name))

			case types.ToolResultBlock:
				content, err := toolResultText(b, types.ProviderAnthropic)
				if err != nil {
					return nil, fmt.Errorf("convert message %d block %d: %w", i, j, err)
				}
				blocks = append(blocks, anthropic.NewToolResultBlock(b.ToolUseID, content, b.IsError))

			default:
				return nil, fmt.Errorf("convert message %d block %d: %w", i, j, types.NewValidationError(
					fmt.Sprintf("unsupported content block %T", block), types.ProviderAnthropic, block))
			}
		}

		switch msg.Role {
		case types.RoleUser:
			params = append(params, anthropic.NewUserMessage(blocks...))
		case types.RoleAssistant:
			params = append(params, anthropic.NewAssistantMessage(blocks...))
		default:
			return nil, fmt.Errorf("convert message %d: %w", i, types.NewValidationError(
				fmt.Sprintf("role %q not supported in Anthropic messages", msg.Role), types.ProviderAnthropic, msg))
		}
	}
	return params, nil
}

// FromMessageParams converts anthropic-sdk-go request params to Anthropic messages.
//
// Only text, tool_use and tool_result blocks have a Schema B representation, and a
// tool_result may only carry text parts. Images, documents, search results and
// thinking blocks are rejected rather than silently dropped, since losing them
// would change the conversation replayed to the model.
func FromMessageParams(params []anthropic.MessageParam) ([]types.AnthropicMessage, error) {
	messages := make([]types.AnthropicMessage, 0, len(params))
	for i, param := range params {
		content := make([]types.ContentBlock, 0, len(param.Content))
		for j, block := range param.Content {
			switch {
			case block.OfText != nil:
				content = append(content, types.TextBlock{Text: block.OfText.Text})

			case block.OfToolUse != nil:
				input, err := toInputObject(block.OfToolUse.Input)
				if err != nil {
					return nil, fmt.Errorf("convert message %d block %d: %w", i, j, err)
				}
				content = append(content, types.ToolUseBlock{
					ID:    block.OfToolUse.ID,
					Name:  block.OfToolUse.Name,
					Input: input,
				})

			case block.OfToolResult != nil:
				var text strings.Builder
				for k, part := range block.OfToolResult.Content {
					if part.OfText == nil {
						return nil, fmt.Errorf("convert message %d block %d part %d: %w", i, j, k, types.NewValidationError(
							"tool result content part not supported", types.ProviderAnthropic, part))
					}
					text.WriteString(part.OfText.Text)
				}
				content = append(content, types.ToolResultBlock{
					ToolUseID: block.OfToolResult.ToolUseID,
					Content:   text.String(),
					IsError:   block.OfToolResult.IsError.Value,
				})

			default:
				return nil, fmt.Errorf("convert message %d block %d: %w", i, j, types.NewValidationError(
					"content block type not supported", types.ProviderAnthropic, block))
			}
		}

		messages = append(messages, types.AnthropicMessage{
			Role:    types.Role(param.Role),
			Content: content,
		})
	}
	return messages, nil
}

// FromResponse converts a non-streaming Messages API response to an assistant message,
// ready to be appended to the conversation.
//
// Thinking and server-side tool blocks cannot be represented in Schema B and are
// skipped, same as the chat-completions adapter does for OpenAI responses.
func FromResponse(msg *anthropic.Message) (types.AnthropicMessage, error) {
	content := make([]types.ContentBlock, 0, len(msg.Content))
	for i, block := range msg.Content {
		// AsAny() returns the concrete type for Anthropic SDK union discrimination.
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			content = append(content, types.TextBlock{Text: variant.Text})

		case anthropic.ToolUseBlock:
			input := map[string]any{}
			if len(variant.Input) > 0 {
				parsed, err := jsonutil.ParseObject(string(variant.Input), types.ProviderAnthropic)
				if err != nil {
					return types.AnthropicMessage{}, fmt.Errorf("convert response block %d: %w", i, err)
				}
				input = parsed
			}
			content = append(content, types.ToolUseBlock{
				ID:    variant.ID,
				Name:  variant.Name,
				Input: input,
			})
		}
	}

	if len(content) == 0 {
		return types.AnthropicMessage{}, types.NewValidationError(
			"response has no representable content", types.ProviderAnthropic, msg.ID)
	}
	return types.AnthropicMessage{Role: types.RoleAssistant, Content: content}, nil
}

// ToToolParams converts Anthropic tools to anthropic-sdk-go tool params.
func ToToolParams(tools []types.AnthropicTool) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	params := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, tool := range tools {
		toolParam := anthropic.ToolParam{
			Name: tool.Name,
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: tool.InputSchema.Properties,
				Required:   tool.InputSchema.Required,
			},
		}
		if tool.Description != "" {
			toolParam.Description = anthropic.String(tool.Description)
		}
		params = append(params, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return params
}

// FromToolParams converts anthropic-sdk-go tool params to Anthropic tools.
// Server tools (bash, text editor, web search) have no schema to translate.
func FromToolParams(params []anthropic.ToolUnionParam) ([]types.AnthropicTool, error) {
	tools := make([]types.AnthropicTool, 0, len(params))
	for i, param := range params {
		tool := param.OfTool
		if tool == nil {
			return nil, types.NewValidationError(
				fmt.Sprintf("tool %d is not a custom tool", i), types.ProviderAnthropic, param)
		}

		properties, err := toInputObject(tool.InputSchema.Properties)
		if err != nil {
			return nil, fmt.Errorf("convert tool %d properties: %w", i, err)
		}

		tools = append(tools, types.AnthropicTool{
			Name:        tool.Name,
			Description: tool.Description.Value,
			InputSchema: types.AnthropicInputSchema{
				Type:       types.SchemaTypeObject,
				Properties: properties,
				Required:   tool.InputSchema.Required,
			},
		})
	}
	return tools, nil
}

// toInputObject coerces an SDK "any" field to a JSON object. Maps pass through;
// structs and raw JSON are normalized through an encode/parse round trip.
func toInputObject(v any) (map[string]any, error) {
	switch value := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return value, nil
	case json.RawMessage:
		return jsonutil.ParseObject(string(value), types.ProviderAnthropic)
	case []byte:
		return jsonutil.ParseObject(string(value), types.ProviderAnthropic)
	case string:
		return jsonutil.ParseObject(value, types.ProviderAnthropic)
	}

	encoded, err := jsonutil.Stringify(v, types.ProviderAnthropic)
	if err != nil {
		return nil, err
	}
	return jsonutil.ParseObject(encoded, types.ProviderAnthropic)
}
