package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florianilch/agency/types"
)

const openAIConversation = `{
  "system": "Be terse.",
  "messages": [
    {"role": "user", "content": "Weather in Paris?"},
    {"role": "assistant", "content": null, "tool_calls": [
      {"id": "call_1", "type": "function", "function": {"name": "get_weather", "arguments": "{\"city\":\"Paris\"}"}}
    ]},
    {"role": "tool", "tool_call_id": "call_1", "content": "18C"}
  ],
  "tools": [
    {"type": "function", "function": {"name": "get_weather", "description": "Look up weather",
      "parameters": {"type": "object", "properties": {"city": {"type": "string"}}, "required": ["city"]}}}
  ]
}`

func TestConvert_OpenAIToAnthropic(t *testing.T) {
	svc := NewService()

	doc, err := DecodeDocument([]byte(openAIConversation), "chat.json")
	require.NoError(t, err)

	out, err := svc.Convert(context.Background(), types.ProviderOpenAI, doc)
	require.NoError(t, err)

	assert.Equal(t, "Be terse.", out.System)
	assert.JSONEq(t, `[
		{"role": "user", "content": [{"type": "text", "text": "Weather in Paris?"}]},
		{"role": "assistant", "content": [
			{"type": "tool_use", "id": "call_1", "name": "get_weather", "input": {"city": "Paris"}},
			{"type": "tool_result", "tool_use_id": "call_1", "content": "18C"}
		]}
	]`, string(out.Messages))
	assert.JSONEq(t, `[
		{"name": "get_weather", "description": "Look up weather",
		 "input_schema": {"type": "object", "properties": {"city": {"type": "string"}}, "required": ["city"]}}
	]`, string(out.Tools))
}

func TestConvert_AnthropicToOpenAI(t *testing.T) {
	svc := NewService()

	doc := Document{
		System: "Be terse.",
		Messages: json.RawMessage(`[
			{"role": "user", "content": "hi"},
			{"role": "assistant", "content": [{"type": "text", "text": "hello"}]}
		]`),
		Tools: json.RawMessage(`[{"name": "noop", "description": "", "input_schema": {"type": "object", "properties": {}}}]`),
	}

	out, err := svc.Convert(context.Background(), types.ProviderAnthropic, doc)
	require.NoError(t, err)

	assert.Empty(t, out.System)
	assert.JSONEq(t, `[
		{"role": "system", "content": "Be terse."},
		{"role": "user", "content": "hi"},
		{"role": "assistant", "content": "hello"}
	]`, string(out.Messages))
	assert.JSONEq(t, `[
		{"type": "function", "function": {"name": "noop", "description": "",
		 "parameters": {"type": "object", "properties": {}}}}
	]`, string(out.Tools))
}

func TestConvert_Errors(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	t.Run("malformed messages", func(t *testing.T) {
		_, err := svc.Convert(ctx, types.ProviderOpenAI, Document{Messages: json.RawMessage(`{"role": "user"}`)})
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("invalid tool arguments", func(t *testing.T) {
		_, err := svc.Convert(ctx, types.ProviderOpenAI, Document{Messages: json.RawMessage(`[
			{"role": "assistant", "content": null, "tool_calls": [
				{"id": "c", "type": "function", "function": {"name": "f", "arguments": "not json"}}
			]}
		]`)})
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := svc.Convert(ctx, types.Provider("gemini"), Document{Messages: json.RawMessage(`[]`)})
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("anthropic")
	require.NoError(t, err)
	assert.Equal(t, types.ProviderAnthropic, p)

	_, err = ParseProvider("Anthropic")
	assert.True(t, errors.Is(err, ErrUnknownProvider))

	assert.Equal(t, types.ProviderOpenAI, Target(types.ProviderAnthropic))
	assert.Equal(t, types.ProviderAnthropic, Target(types.ProviderOpenAI))
}

func TestDecodeDocument(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		doc, err := DecodeDocument([]byte(`  [{"role": "user", "content": "hi"}]`), "-")
		require.NoError(t, err)
		assert.Empty(t, doc.System)
		assert.JSONEq(t, `[{"role": "user", "content": "hi"}]`, string(doc.Messages))
	})

	t.Run("yaml", func(t *testing.T) {
		src := "system: Be terse.\nmessages:\n  - role: user\n    content: hi\n"
		doc, err := DecodeDocument([]byte(src), "chat.YAML")
		require.NoError(t, err)
		assert.Equal(t, "Be terse.", doc.System)
		assert.JSONEq(t, `[{"role": "user", "content": "hi"}]`, string(doc.Messages))
	})

	t.Run("missing messages", func(t *testing.T) {
		_, err := DecodeDocument([]byte(`{"system": "x"}`), "chat.json")
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := DecodeDocument([]byte(`{`), "chat.json")
		assert.Error(t, err)
	})
}

func TestEncodeDocument(t *testing.T) {
	doc := &Document{Messages: json.RawMessage(`[{"role":"user","content":"a < b"}]`)}

	compact, err := EncodeDocument(doc, false)
	require.NoError(t, err)
	assert.Equal(t, `{"messages":[{"role":"user","content":"a < b"}]}`+"\n", string(compact))

	indented, err := EncodeDocument(doc, true)
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n  \"messages\"")
}

func TestConvertFiles(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "converted")

	paths := []string{
		filepath.Join(in, "a.json"),
		filepath.Join(in, "b.yaml"),
	}
	require.NoError(t, os.WriteFile(paths[0], []byte(openAIConversation), 0o644))
	require.NoError(t, os.WriteFile(paths[1], []byte("- role: user\n  content: hi\n"), 0o644))

	err := NewService().ConvertFiles(context.Background(), types.ProviderOpenAI, paths, FileOptions{
		OutDir:      out,
		Concurrency: 2,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "a.anthropic.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"system":"Be terse."`)

	data, err = os.ReadFile(filepath.Join(out, "b.anthropic.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[{"role":"user","content":[{"type":"text","text":"hi"}]}]}`, string(data))
}

func TestConvertFiles_Failure(t *testing.T) {
	in := t.TempDir()
	path := filepath.Join(in, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"role": "user", "content": ""}]`), 0o644))

	err := NewService().ConvertFiles(context.Background(), types.ProviderOpenAI, []string{path}, FileOptions{
		OutDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
	assert.ErrorIs(t, err, types.ErrValidation)

	err = NewService().ConvertFiles(context.Background(), types.ProviderOpenAI, []string{path}, FileOptions{})
	assert.Error(t, err)
}

func TestConvertStream(t *testing.T) {
	var out bytes.Buffer
	err := NewService().ConvertStream(context.Background(), types.ProviderAnthropic,
		strings.NewReader(`[{"role": "user", "content": [{"type": "text", "text": "hi"}]}]`), &out, "-", false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[{"role":"user","content":"hi"}]}`, out.String())
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "chat.anthropic.json", OutputName("/tmp/in/chat.yaml", types.ProviderAnthropic))
	assert.Equal(t, "chat.openai.json", OutputName("chat.json", types.ProviderOpenAI))
}
