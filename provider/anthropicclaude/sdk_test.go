package anthropicclaude

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florianilch/agency/types"
)

func TestMessageParams_RoundTrip(t *testing.T) {
	messages := []types.AnthropicMessage{
		{Role: types.RoleUser, Content: []types.ContentBlock{types.TextBlock{Text: "Read the README"}}},
		{Role: types.RoleAssistant, Content: []types.ContentBlock{
			types.TextBlock{Text: "Reading it."},
			types.ToolUseBlock{ID: "toolu_1", Name: "read_file", Input: map[string]any{"path": "README.md"}},
		}},
		{Role: types.RoleUser, Content: []types.ContentBlock{
			types.ToolResultBlock{ToolUseID: "toolu_1", Content: "# Agency", IsError: true},
		}},
	}

	params, err := ToMessageParams(messages)
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, anthropic.MessageParamRoleUser, params[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, params[1].Role)
	require.NotNil(t, params[1].Content[1].OfToolUse)
	assert.Equal(t, "toolu_1", params[1].Content[1].OfToolUse.ID)
	require.NotNil(t, params[2].Content[0].OfToolResult)
	assert.True(t, params[2].Content[0].OfToolResult.IsError.Value)

	back, err := FromMessageParams(params)
	require.NoError(t, err)
	assert.Equal(t, messages, back)
}

func TestToMessageParams_RejectsUnknownRole(t *testing.T) {
	_, err := ToMessageParams([]types.AnthropicMessage{
		{Role: types.RoleSystem, Content: []types.ContentBlock{types.TextBlock{Text: "x"}}},
	})
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestFromMessageParams_RejectsUnmappedBlocks(t *testing.T) {
	imageResult := anthropic.ToolResultBlockParam{
		ToolUseID: "toolu_1",
		Content: []anthropic.ToolResultBlockParamContentUnion{
			{OfText: &anthropic.TextBlockParam{Text: "see attached"}},
			{OfImage: &anthropic.ImageBlockParam{
				Source: anthropic.ImageBlockParamSourceUnion{
					OfBase64: &anthropic.Base64ImageSourceParam{
						Data:      "aGVsbG8=",
						MediaType: anthropic.Base64ImageSourceMediaTypeImagePNG,
					},
				},
			}},
		},
	}

	testCases := []struct {
		name    string
		params  []anthropic.MessageParam
		wantMsg string
	}{
		{
			name: "image block",
			params: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewImageBlockBase64("image/png", "aGVsbG8=")),
			},
			wantMsg: "content block type not supported",
		},
		{
			name: "image part in tool result",
			params: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.ContentBlockParamUnion{OfToolResult: &imageResult}),
			},
			wantMsg: "tool result content part not supported",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := FromMessageParams(tc.params)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, types.ErrValidation))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestFromResponse(t *testing.T) {
	raw := `{
		"id": "msg_01",
		"type": "message",
		"role": "assistant",
		"model": "claude-sonnet-4-5",
		"content": [
			{"type": "thinking", "thinking": "hmm", "signature": "sig"},
			{"type": "text", "text": "Reading it."},
			{"type": "tool_use", "id": "toolu_1", "name": "read_file", "input": {"path": "README.md"}}
		],
		"stop_reason": "tool_use",
		"stop_sequence": null,
		"usage": {"input_tokens": 10, "output_tokens": 20}
	}`

	var msg anthropic.Message
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	result, err := FromResponse(&msg)
	require.NoError(t, err)

	assert.Equal(t, types.AnthropicMessage{
		Role: types.RoleAssistant,
		Content: []types.ContentBlock{
			types.TextBlock{Text: "Reading it."},
			types.ToolUseBlock{ID: "toolu_1", Name: "read_file", Input: map[string]any{"path": "README.md"}},
		},
	}, result)
}

func TestFromResponse_NoContent(t *testing.T) {
	var msg anthropic.Message
	require.NoError(t, json.Unmarshal([]byte(`{"id":"msg_02","type":"message","role":"assistant","content":[]}`), &msg))

	_, err := FromResponse(&msg)
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestToolParams_RoundTrip(t *testing.T) {
	tools := ToolsFromOpenAI([]types.OpenAITool{readFileTool()})

	params := ToToolParams(tools)
	require.Len(t, params, 1)
	require.NotNil(t, params[0].OfTool)
	assert.Equal(t, "read_file", params[0].OfTool.Name)
	assert.Equal(t, "Read a file from disk", params[0].OfTool.Description.Value)
	assert.Equal(t, []string{"path"}, params[0].OfTool.InputSchema.Required)

	back, err := FromToolParams(params)
	require.NoError(t, err)
	assert.Equal(t, tools, back)
}

func TestFromToolParams_ServerTool(t *testing.T) {
	_, err := FromToolParams([]anthropic.ToolUnionParam{{}})
	assert.True(t, errors.Is(err, types.ErrValidation))
}
