// Package anthropic implements [korekta.Client] for the Anthropic Messages API.
//
// It is the streaming-capable variant: with Request.Stream set it connects
// via SSE and surfaces each text_delta as a fragment through the pull-based
// [korekta.Stream] interface; otherwise it issues a single batch request.
// The SSE parser drives one step at a time using a state-machine approach
// inspired by Rob Pike's lexer talk.
package anthropic

import "time"

const (
	defaultBaseURL     = "https://api.anthropic.com"
	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
	defaultTimeout     = 25 * time.Second
	apiVersion         = "2023-06-01"
	messagesPath       = "/v1/messages"
)

// apiRequest is the JSON body sent to the Anthropic Messages API.
type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	System      string       `json:"system,omitempty"`
	Messages    []apiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	Stream      bool         `json:"stream,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiResponse is the non-streaming response body.
type apiResponse struct {
	Content []apiContentBlock `json:"content"`
}

type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// SSE response types.

type sseContentBlockDelta struct {
	Type  string   `json:"type"`
	Index int      `json:"index"`
	Delta sseDelta `json:"delta"`
}

type sseDelta struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type sseError struct {
	Type  string         `json:"type"`
	Error sseErrorDetail `json:"error"`
}

type sseErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// apiErrorResponse is the JSON body returned on non-200 HTTP responses.
type apiErrorResponse struct {
	Type  string         `json:"type"`
	Error sseErrorDetail `json:"error"`
}
