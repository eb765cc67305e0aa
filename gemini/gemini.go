// Package gemini implements [korekta.Client] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. Gemini is a batch-only variant:
// one GenerateContent call per request, surfaced through a complete
// [korekta.Stream].
package gemini

import "time"

const (
	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
	defaultTimeout     = 25 * time.Second
)
