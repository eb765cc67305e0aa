// Package openai implements [korekta.Client] for the OpenAI Chat Completions
// API using the official SDK. It is batch-only: the returned stream holds
// the complete correction.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/korekta"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultMaxTokens   = 2048
	defaultTemperature = 0.7
	defaultTimeout     = 25 * time.Second
)

// Interface compliance check.
var _ korekta.Client = (*Client)(nil)

// Client implements [korekta.Client] for OpenAI.
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

// WithTimeout sets the ceiling for a whole request. Default is 25s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a new OpenAI [Client].
func New(opts ...Option) *Client {
	c := &Client{
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
		return nil, fmt.Errorf("openai: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client := openai.NewClient(c.requestOptions(req.APIKey)...)
	resp, err := client.Chat.Completions.New(ctx, buildParams(req))
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: %w: no choices returned", korekta.ErrResponse)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("openai: %w: empty content", korekta.ErrResponse)
	}
	return korekta.ResultStream(text), nil
}

func (c *Client) requestOptions(apiKey string) []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(c.httpClient),
		option.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		opts = append(opts, option.WithBaseURL(c.baseURL))
	}
	return opts
}

func buildParams(req korekta.Request) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.UserContent()))
	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    messages,
		Temperature: openai.Float(defaultTemperature),
		MaxTokens:   openai.Int(defaultMaxTokens),
	}
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error()
		}
		return korekta.StatusError(korekta.OpenAI, apiErr.StatusCode, msg)
	}
	return korekta.TransportError(korekta.OpenAI, err)
}
