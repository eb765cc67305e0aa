package korekta

import "fmt"

// Default models used when the configuration leaves a model empty.
const (
	DefaultOpenAIModel    = "gpt-5-mini"
	DefaultAnthropicModel = "claude-3-7-sonnet-latest"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultDeepSeekModel  = "deepseek-chat"
)

// Config is the read-only input the session engine receives from the
// configuration collaborator.
type Config struct {
	Providers      [NumProviders]ProviderConfig // indexed by ProviderID
	Style          Style
	Streaming      bool
	HighlightDiffs bool
}

// DefaultConfig returns a configuration with default models, no API keys,
// the normal style and streaming enabled.
func DefaultConfig() Config {
	var cfg Config
	models := [NumProviders]string{
		OpenAI:    DefaultOpenAIModel,
		Anthropic: DefaultAnthropicModel,
		Gemini:    DefaultGeminiModel,
		DeepSeek:  DefaultDeepSeekModel,
	}
	for _, p := range Providers() {
		cfg.Providers[p] = ProviderConfig{Provider: p, Model: models[p]}
	}
	cfg.Style = StyleNormal
	cfg.Streaming = true
	cfg.HighlightDiffs = true
	return cfg
}

// Provider returns the configuration for p.
func (c Config) Provider(p ProviderID) ProviderConfig {
	if !p.Valid() {
		return ProviderConfig{Provider: p}
	}
	pc := c.Providers[p]
	pc.Provider = p
	return pc
}

// Enabled returns the providers with an API key, in display order.
func (c Config) Enabled() []ProviderID {
	var out []ProviderID
	for _, p := range Providers() {
		if c.Provider(p).Enabled() {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks constraints the engine relies on.
func (c Config) Validate() error {
	if !c.Style.Known() {
		return fmt.Errorf("unknown style %q: %w", c.Style, ErrValidation)
	}
	for _, p := range Providers() {
		pc := c.Provider(p)
		if pc.Enabled() && pc.Model == "" {
			return fmt.Errorf("%s: model is empty: %w", p, ErrValidation)
		}
	}
	return nil
}
