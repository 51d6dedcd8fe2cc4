package openaichat

import (
	"encoding/json"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florianilch/agency/types"
)

func text(s string) *string { return &s }

func conversation() []types.OpenAIMessage {
	return []types.OpenAIMessage{
		{Role: types.RoleSystem, Content: text("You are terse.")},
		{Role: types.RoleUser, Content: text("Read the README")},
		{Role: types.RoleAssistant, ToolCalls: []types.OpenAIToolCall{{
			ID:   "call_abc123",
			Type: "function",
			Function: types.OpenAIFunctionCall{
				Name:      "read_file",
				Arguments: `{"path":"README.md"}`,
			},
		}}},
		{Role: types.RoleTool, ToolCallID: "call_abc123", Content: text("# Agency")},
	}
}

func TestToAnthropic(t *testing.T) {
	var system string
	result, err := ToAnthropic(conversation(), types.WithSystemPrompt(&system))
	require.NoError(t, err)

	assert.Equal(t, "You are terse.", system)
	require.Len(t, result, 2)
	assert.Equal(t, []types.ContentBlock{
		types.ToolUseBlock{ID: "call_abc123", Name: "read_file", Input: map[string]any{"path": "README.md"}},
		types.ToolResultBlock{ToolUseID: "call_abc123", Content: "# Agency"},
	}, result[1].Content)
}

func TestFromAnthropic(t *testing.T) {
	result, err := FromAnthropic([]types.AnthropicMessage{
		{Role: types.RoleAssistant, Content: []types.ContentBlock{types.TextBlock{Text: "Done."}}},
	})
	require.NoError(t, err)
	assert.Equal(t, []types.OpenAIMessage{{Role: types.RoleAssistant, Content: text("Done.")}}, result)
}

func TestTranslator(t *testing.T) {
	var tr Translator

	result, err := tr.ToOther(conversation()[1:2])
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, types.RoleUser, result[0].Role)

	tools := tr.ToolsToOther([]types.OpenAITool{{
		Type:     "function",
		Function: types.OpenAIToolFunction{Name: "noop", Parameters: types.OpenAIParameters{Type: "object"}},
	}})
	require.Len(t, tools, 1)
	assert.Equal(t, "noop", tools[0].Name)
	assert.Len(t, ToolsFromAnthropic(tools), 1)
}

func TestMessageParams_RoundTrip(t *testing.T) {
	messages := conversation()

	params, err := ToMessageParams(messages)
	require.NoError(t, err)
	require.Len(t, params, 4)

	assert.NotNil(t, params[0].OfSystem)
	assert.NotNil(t, params[1].OfUser)
	assert.NotNil(t, params[2].OfAssistant)
	assert.NotNil(t, params[3].OfTool)

	back, err := FromMessageParams(params)
	require.NoError(t, err)

	for i := range messages {
		assert.Equal(t, messages[i].Role, back[i].Role)
		assert.Equal(t, messages[i].Text(), back[i].Text())
		assert.Equal(t, messages[i].ToolCallID, back[i].ToolCallID)
	}
	require.Len(t, back[2].ToolCalls, 1)
	assert.Equal(t, "call_abc123", back[2].ToolCalls[0].ID)
	assert.JSONEq(t, `{"path":"README.md"}`, back[2].ToolCalls[0].Function.Arguments)
}

func TestFromCompletionMessage(t *testing.T) {
	raw := `{
		"role": "assistant",
		"content": null,
		"refusal": null,
		"tool_calls": [{
			"id": "call_xyz",
			"type": "function",
			"function": {"name": "read_file", "arguments": "{\"path\":\"go.mod\"}"}
		}]
	}`

	var msg openai.ChatCompletionMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	result, err := FromCompletionMessage(msg)
	require.NoError(t, err)

	assert.Equal(t, types.RoleAssistant, result.Role)
	assert.Nil(t, result.Content)
	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "call_xyz", result.ToolCalls[0].ID)

	anthropicMessages, err := ToAnthropic([]types.OpenAIMessage{result})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"path": "go.mod"}, anthropicMessages[0].Content[0].(types.ToolUseBlock).Input)
}

func TestToolParams_RoundTrip(t *testing.T) {
	tools := []types.OpenAITool{{
		Type: "function",
		Function: types.OpenAIToolFunction{
			Name:        "read_file",
			Description: "Read a file",
			Parameters: types.OpenAIParameters{
				Type:       "object",
				Properties: map[string]any{"path": map[string]any{"type": "string"}},
				Required:   []string{"path"},
			},
		},
	}}

	params, err := ToToolParams(tools)
	require.NoError(t, err)
	require.Len(t, params, 1)
	require.NotNil(t, params[0].OfFunction)
	assert.Equal(t, "read_file", params[0].OfFunction.Function.Name)

	back, err := FromToolParams(params)
	require.NoError(t, err)
	assert.Equal(t, tools, back)
}
