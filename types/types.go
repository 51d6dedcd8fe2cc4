package types

// Provider identifies which schema a translation was producing when it failed.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Role is a Schema A message role. Schema B only uses RoleUser and RoleAssistant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Options configures a translation call.
type Options struct {
	// Strict is reserved; no rule reads it yet.
	Strict bool
	// PreserveIDs is reserved; ids are always preserved when present.
	PreserveIDs bool

	systemPrompt *string
}

// Option mutates Options.
type Option func(*Options)

// WithStrict sets the reserved strict flag.
func WithStrict(strict bool) Option {
	return func(o *Options) {
		o.Strict = strict
	}
}

// WithPreserveIDs sets the reserved preserve-ids flag.
func WithPreserveIDs(preserve bool) Option {
	return func(o *Options) {
		o.PreserveIDs = preserve
	}
}

// WithSystemPrompt receives the system prompt dropped while converting Schema A
// to Schema B. After a successful call dst holds the text of the last system
// message, or "" when there was none. dst is left untouched on error.
func WithSystemPrompt(dst *string) Option {
	return func(o *Options) {
		o.systemPrompt = dst
	}
}

// NewOptions applies opts over the zero Options.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// SetSystemPrompt reports the captured system prompt through WithSystemPrompt, if requested.
func (o Options) SetSystemPrompt(prompt string) {
	if o.systemPrompt != nil {
		*o.systemPrompt = prompt
	}
}

// String returns a pointer to s, for optional text fields.
func String(s string) *string {
	return &s
}
