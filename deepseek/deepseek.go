// Package deepseek implements [korekta.Client] for the DeepSeek chat API,
// which speaks the OpenAI wire protocol. It is batch-only and allows a
// longer ceiling than the other backends.
package deepseek

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/korekta"
	openai "github.com/meguminnnnnnnnn/go-openai"
)

const (
	defaultBaseURL     = "https://api.deepseek.com"
	defaultMaxTokens   = 4096
	defaultTemperature = float32(0.7)
	defaultTimeout     = 35 * time.Second
)

// Interface compliance check.
var _ korekta.Client = (*Client)(nil)

// Client implements [korekta.Client] for DeepSeek.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the ceiling for a whole request. Default is 35s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a new DeepSeek [Client].
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream sends a single chat completion request and returns its answer as a
// complete [korekta.Stream]. req.Stream is ignored.
func (c *Client) Stream(ctx context.Context, req korekta.Request) (korekta.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("deepseek: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	config := openai.DefaultConfig(req.APIKey)
	config.BaseURL = c.baseURL
	config.HTTPClient = c.httpClient
	client := openai.NewClientWithConfig(config)

	resp, err := client.CreateChatCompletion(ctx, buildRequest(req))
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("deepseek: %w: no choices returned", korekta.ErrResponse)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("deepseek: %w: empty content", korekta.ErrResponse)
	}
	return korekta.ResultStream(text), nil
}

func buildRequest(req korekta.Request) openai.ChatCompletionRequest {
	temp := defaultTemperature
	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserContent(),
	})
	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   defaultMaxTokens,
		Temperature: &temp,
	}
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return korekta.StatusError(korekta.DeepSeek, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return korekta.StatusError(korekta.DeepSeek, reqErr.HTTPStatusCode, reqErr.Error())
	}
	return korekta.TransportError(korekta.DeepSeek, err)
}
