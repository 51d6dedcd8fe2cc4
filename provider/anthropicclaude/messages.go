package anthropicclaude

import (
	"errors"
	"fmt"
	"strings"

	"github.com/florianilch/agency/internal/jsonutil"
	"github.com/florianilch/agency/types"
)

// FromOpenAI converts OpenAI messages to Anthropic messages.
//
// Messages are processed strictly in order. A tool message mutates the last output
// message instead of producing a new one, so it must follow an assistant turn.
func FromOpenAI(messages []types.OpenAIMessage, opts ...types.Option) ([]types.AnthropicMessage, error) {
	options := types.NewOptions(opts...)

	result := make([]types.AnthropicMessage, 0, len(messages))
	var systemPrompt string

	for i, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			// Consecutive system messages overwrite; only the last one survives.
			systemPrompt = msg.Text()
			continue

		case types.RoleTool:
			last := len(result) - 1
			if last < 0 || result[last].Role != types.RoleAssistant {
				return nil, fmt.Errorf("convert message %d: %w", i, types.NewValidationError(
					"tool result without preceding assistant message", types.ProviderAnthropic, msg))
			}
			result[last].Content = append(result[last].Content, fromToolMessage(msg))
			continue
		}

		content, err := fromOpenAIMessageContent(msg)
		if err != nil {
			return nil, fmt.Errorf("convert message %d: %w", i, err)
		}

		role := types.RoleUser
		if msg.Role == types.RoleAssistant {
			role = types.RoleAssistant
		}
		result = append(result, types.AnthropicMessage{Role: role, Content: content})
	}

	options.SetSystemPrompt(systemPrompt)
	return result, nil
}

// fromToolMessage builds the tool_result block for an OpenAI tool message.
// OpenAI has no error flag on tool messages, so IsError is always false.
func fromToolMessage(msg types.OpenAIMessage) types.ToolResultBlock {
	toolUseID := msg.ToolCallID
	if toolUseID == "" {
		toolUseID = jsonutil.NewToolCallID()
	}
	return types.ToolResultBlock{
		ToolUseID: toolUseID,
		Content:   msg.Text(),
		IsError:   false,
	}
}

// fromOpenAIMessageContent builds the block sequence for a user or assistant message:
// one text block when content is non-empty, then one tool_use block per tool call.
func fromOpenAIMessageContent(msg types.OpenAIMessage) ([]types.ContentBlock, error) {
	content := make([]types.ContentBlock, 0, 1+len(msg.ToolCalls))

	if text := msg.Text(); text != "" {
		content = append(content, types.TextBlock{Text: text})
	}

	for _, call := range msg.ToolCalls {
		input, err := jsonutil.ParseObject(call.Function.Arguments, types.ProviderAnthropic)
		if err != nil {
			return nil, invalidToolCallArguments(call, err)
		}

		id := call.ID
		if id == "" {
			id = jsonutil.NewToolCallID()
		}
		content = append(content, types.ToolUseBlock{
			ID:    id,
			Name:  call.Function.Name,
			Input: input,
		})
	}

	if len(content) == 0 {
		return nil, types.NewValidationError("message has no content", types.ProviderAnthropic, msg)
	}
	return content, nil
}

// invalidToolCallArguments re-attaches a parse failure to the raw tool call.
func invalidToolCallArguments(call types.OpenAIToolCall, err error) error {
	reason := err.Error()
	var parseErr *types.Error
	if errors.As(err, &parseErr) {
		reason = parseErr.Message
	}
	return types.NewValidationError(
		fmt.Sprintf("tool call %q arguments: %s", call.ID, reason), types.ProviderAnthropic, call)
}

// ToOpenAI converts Anthropic messages to OpenAI messages.
//
// Every tool_result block becomes its own tool message, emitted in block order. A
// message made only of tool_result blocks produces nothing else; any other message
// produces one message with the concatenated text and the derived tool calls.
func ToOpenAI(messages []types.AnthropicMessage, opts ...types.Option) ([]types.OpenAIMessage, error) {
	_ = types.NewOptions(opts...)

	result := make([]types.OpenAIMessage, 0, len(messages))

	for i, msg := range messages {
		if len(msg.Content) == 0 {
			return nil, fmt.Errorf("convert message %d: %w", i, types.NewValidationError(
				"message has no content", types.ProviderOpenAI, msg))
		}

		var text strings.Builder
		var toolCalls []types.OpenAIToolCall
		hasToolResult := false

		for j, block := range msg.Content {
			switch b := block.(type) {
			case types.TextBlock:
				text.WriteString(b.Text)

			case types.ToolUseBlock:
				call, err := toToolCall(b)
				if err != nil {
					return nil, fmt.Errorf("convert message %d block %d: %w", i, j, err)
				}
				toolCalls = append(toolCalls, call)

			case types.ToolResultBlock:
				content, err := toolResultText(b, types.ProviderOpenAI)
				if err != nil {
					return nil, fmt.Errorf("convert message %d block %d: %w", i, j, err)
				}
				result = append(result, types.OpenAIMessage{
					Role:       types.RoleTool,
					Content:    &content,
					ToolCallID: b.ToolUseID,
				})
				hasToolResult = true

			default:
				return nil, fmt.Errorf("convert message %d block %d: %w", i, j, types.NewValidationError(
					fmt.Sprintf("unsupported content block %T", block), types.ProviderOpenAI, block))
			}
		}

		// Pure tool-result messages are fully represented by the emitted tool messages.
		if hasToolResult && text.Len() == 0 && len(toolCalls) == 0 {
			continue
		}

		out := types.OpenAIMessage{Role: msg.Role}
		if text.Len() > 0 {
			out.Content = types.String(text.String())
		}
		if len(toolCalls) > 0 {
			out.ToolCalls = toolCalls
		}
		result = append(result, out)
	}

	return result, nil
}

// toToolCall converts a tool_use block to an OpenAI function call.
func toToolCall(b types.ToolUseBlock) (types.OpenAIToolCall, error) {
	// OpenAI expects a JSON-encoded object; a missing input is an empty object, not null.
	arguments := "{}"
	if b.Input != nil {
		encoded, err := jsonutil.Stringify(b.Input, types.ProviderOpenAI)
		if err != nil {
			return types.OpenAIToolCall{}, err
		}
		arguments = encoded
	}

	id := b.ID
	if id == "" {
		id = jsonutil.NewToolCallID()
	}

	return types.OpenAIToolCall{
		ID:   id,
		Type: types.ToolCallTypeFunction,
		Function: types.OpenAIFunctionCall{
			Name:      b.Name,
			Arguments: arguments,
		},
	}, nil
}

// toolResultText flattens tool_result content to a string. Text passes through,
// absent content collapses to "", anything else is JSON-encoded.
func toolResultText(b types.ToolResultBlock, provider types.Provider) (string, error) {
	switch c := b.Content.(type) {
	case nil:
		return "", nil
	case string:
		return c, nil
	default:
		return jsonutil.Stringify(c, provider)
	}
}
