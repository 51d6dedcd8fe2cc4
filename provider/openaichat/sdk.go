package openaichat

import (
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"

	"github.com/florianilch/agency/types"
)

// The openai-go param unions decode from their wire JSON, and Schema A already
// is that wire JSON, so the bridges go through encoding/json instead of picking
// union variants by hand.

// ToMessageParams converts OpenAI messages to openai-go request params.
func ToMessageParams(messages []types.OpenAIMessage) ([]openai.ChatCompletionMessageParamUnion, error) {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, msg := range messages {
		var param openai.ChatCompletionMessageParamUnion
		if err := recode(msg, &param); err != nil {
			return nil, fmt.Errorf("convert message %d: %w", i, err)
		}
		params = append(params, param)
	}
	return params, nil
}

// FromMessageParams converts openai-go request params to OpenAI messages.
// Content-part arrays are not representable and fail to decode.
func FromMessageParams(params []openai.ChatCompletionMessageParamUnion) ([]types.OpenAIMessage, error) {
	messages := make([]types.OpenAIMessage, 0, len(params))
	for i, param := range params {
		var msg types.OpenAIMessage
		if err := recode(param, &msg); err != nil {
			return nil, fmt.Errorf("convert message %d: %w", i, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// FromCompletionMessage converts a chat completion choice message to an assistant
// message, ready to be appended to the conversation. Refusals and annotations
// have no Schema A field and are dropped.
func FromCompletionMessage(msg openai.ChatCompletionMessage) (types.OpenAIMessage, error) {
	raw := msg.RawJSON()
	if raw == "" {
		encoded, err := json.Marshal(msg)
		if err != nil {
			return types.OpenAIMessage{}, types.NewTransformError(
				fmt.Sprintf("encode completion message: %v", err), types.ProviderOpenAI, msg)
		}
		raw = string(encoded)
	}

	var out types.OpenAIMessage
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return types.OpenAIMessage{}, types.NewValidationError(
			fmt.Sprintf("decode completion message: %v", err), types.ProviderOpenAI, raw)
	}
	if out.Role == "" {
		out.Role = types.RoleAssistant
	}
	return out, nil
}

// ToToolParams converts OpenAI tools to openai-go tool params.
func ToToolParams(tools []types.OpenAITool) ([]openai.ChatCompletionToolUnionParam, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	params := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for i, tool := range tools {
		var param openai.ChatCompletionToolUnionParam
		if err := recode(tool, &param); err != nil {
			return nil, fmt.Errorf("convert tool %d: %w", i, err)
		}
		params = append(params, param)
	}
	return params, nil
}

// FromToolParams converts openai-go tool params to OpenAI tools.
func FromToolParams(params []openai.ChatCompletionToolUnionParam) ([]types.OpenAITool, error) {
	tools := make([]types.OpenAITool, 0, len(params))
	for i, param := range params {
		var tool types.OpenAITool
		if err := recode(param, &tool); err != nil {
			return nil, fmt.Errorf("convert tool %d: %w", i, err)
		}
		if tool.Type != types.ToolCallTypeFunction {
			return nil, types.NewValidationError(
				fmt.Sprintf("tool %d has type %q, only function tools are supported", i, tool.Type), types.ProviderOpenAI, param)
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

// recode moves src into dst through its JSON wire form.
func recode(src, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return types.NewTransformError(fmt.Sprintf("encode %T: %v", src, err), types.ProviderOpenAI, src)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return types.NewValidationError(fmt.Sprintf("decode %T: %v", dst, err), types.ProviderOpenAI, string(data))
	}
	return nil
}
