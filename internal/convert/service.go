// Package convert runs the translator over whole conversation documents. It is
// the layer shared by the CLI and the HTTP service: it decodes raw JSON, calls the
// provider facade, and adds tracing and logging around each conversion.
package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/florianilch/agency/provider/anthropicclaude"
	"github.com/florianilch/agency/provider/openaichat"
	"github.com/florianilch/agency/types"
)

// ErrUnknownProvider is returned for a source provider other than openai or anthropic.
var ErrUnknownProvider = errors.New("unknown provider")

// Service converts documents between schemas. It is stateless and safe for
// concurrent use.
type Service struct {
	tracer trace.Tracer
}

// NewService creates a Service using the global tracer provider.
func NewService() *Service {
	return &Service{
		tracer: otel.Tracer("github.com/florianilch/agency/internal/convert"),
	}
}

// ParseProvider maps a user-supplied name to a provider.
func ParseProvider(name string) (types.Provider, error) {
	switch types.Provider(name) {
	case types.ProviderOpenAI, types.ProviderAnthropic:
		return types.Provider(name), nil
	default:
		return "", fmt.Errorf("%w %q (expected: openai, anthropic)", ErrUnknownProvider, name)
	}
}

// Target returns the provider a document in from's schema converts to.
func Target(from types.Provider) types.Provider {
	if from == types.ProviderOpenAI {
		return types.ProviderAnthropic
	}
	return types.ProviderOpenAI
}

// Convert translates doc from the from schema into the other one.
func (s *Service) Convert(ctx context.Context, from types.Provider, doc Document) (*Document, error) {
	ctx, span := s.tracer.Start(ctx, "convert.Document", trace.WithAttributes(
		attribute.String("agency.from", string(from)),
		attribute.String("agency.to", string(Target(from))),
	))
	defer span.End()

	var (
		out *Document
		err error
	)
	switch from {
	case types.ProviderOpenAI:
		out, err = fromOpenAI(doc)
	case types.ProviderAnthropic:
		out, err = fromAnthropic(doc)
	default:
		err = fmt.Errorf("%w %q", ErrUnknownProvider, from)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.WarnContext(ctx, "conversion failed", "from", from, "error", err)
		return nil, err
	}

	slog.DebugContext(ctx, "conversion succeeded",
		"from", from,
		"to", Target(from),
		"input_bytes", len(doc.Messages),
		"output_bytes", len(out.Messages),
	)
	return out, nil
}

func fromOpenAI(doc Document) (*Document, error) {
	var messages []types.OpenAIMessage
	if err := decode(doc.Messages, &messages, types.ProviderAnthropic); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if doc.System != "" {
		// An explicit system field precedes any system message in the conversation.
		messages = append([]types.OpenAIMessage{{Role: types.RoleSystem, Content: types.String(doc.System)}}, messages...)
	}

	var system string
	converted, err := openaichat.ToAnthropic(messages, types.WithSystemPrompt(&system))
	if err != nil {
		return nil, err
	}

	out := &Document{System: system}
	if out.Messages, err = encode(converted, types.ProviderAnthropic); err != nil {
		return nil, err
	}

	if len(doc.Tools) > 0 {
		var tools []types.OpenAITool
		if err := decode(doc.Tools, &tools, types.ProviderAnthropic); err != nil {
			return nil, fmt.Errorf("decode tools: %w", err)
		}
		if out.Tools, err = encode(openaichat.ToolsToAnthropic(tools), types.ProviderAnthropic); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func fromAnthropic(doc Document) (*Document, error) {
	var messages []types.AnthropicMessage
	if err := decode(doc.Messages, &messages, types.ProviderOpenAI); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	converted, err := anthropicclaude.ToOpenAI(messages)
	if err != nil {
		return nil, err
	}
	if doc.System != "" {
		converted = append([]types.OpenAIMessage{{Role: types.RoleSystem, Content: types.String(doc.System)}}, converted...)
	}

	out := &Document{}
	if out.Messages, err = encode(converted, types.ProviderOpenAI); err != nil {
		return nil, err
	}

	if len(doc.Tools) > 0 {
		var tools []types.AnthropicTool
		if err := decode(doc.Tools, &tools, types.ProviderOpenAI); err != nil {
			return nil, fmt.Errorf("decode tools: %w", err)
		}
		if out.Tools, err = encode(anthropicclaude.ToolsToOpenAI(tools), types.ProviderOpenAI); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// decode reports malformed input JSON as a validation error.
func decode(raw json.RawMessage, v any, provider types.Provider) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return types.NewValidationError(err.Error(), provider, string(raw))
	}
	return nil
}

// encode reports unencodable output as a transform error.
func encode(v any, provider types.Provider) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, types.NewTransformError(err.Error(), provider, v)
	}
	return data, nil
}
