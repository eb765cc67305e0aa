package korekta

import (
	"context"
	"fmt"
	"strings"
)

// ProviderID identifies one of the fixed set of correction backends.
type ProviderID int

const (
	OpenAI ProviderID = iota
	Anthropic
	Gemini
	DeepSeek
)

// NumProviders is the size of the fixed provider set.
const NumProviders = 4

var providerNames = [NumProviders]string{"OpenAI", "Anthropic", "Gemini", "DeepSeek"}

// Providers returns every provider in display order.
func Providers() []ProviderID {
	return []ProviderID{OpenAI, Anthropic, Gemini, DeepSeek}
}

// String returns the provider's display name.
func (p ProviderID) String() string {
	if p < 0 || int(p) >= NumProviders {
		return fmt.Sprintf("ProviderID(%d)", int(p))
	}
	return providerNames[p]
}

// Valid reports whether p is one of the known providers.
func (p ProviderID) Valid() bool {
	return p >= 0 && int(p) < NumProviders
}

// ParseProviderID parses a provider name case-insensitively.
func ParseProviderID(s string) (ProviderID, error) {
	for i, name := range providerNames {
		if strings.EqualFold(s, name) {
			return ProviderID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown provider %q: %w", s, ErrValidation)
}

// ProviderConfig holds the credentials and model for one provider.
// A provider with an empty API key is disabled.
type ProviderConfig struct {
	Provider ProviderID
	APIKey   string
	Model    string
}

// Enabled reports whether the provider has an API key configured.
func (c ProviderConfig) Enabled() bool {
	return c.APIKey != ""
}

// Client is implemented once per backend. Stream sends the request and
// returns a Stream of text fragments. Cancellation and deadlines flow
// through ctx.
type Client interface {
	Stream(ctx context.Context, req Request) (Stream, error)
}
