package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/korekta"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ korekta.Client = (*Client)(nil)

// Client implements [korekta.Client] for Gemini.
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

// New creates a new Gemini [Client].
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

// Stream sends a GenerateContent request and returns the answer as a
// complete [korekta.Stream]. req.Stream is ignored.
func (c *Client) Stream(ctx context.Context, req korekta.Request) (korekta.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      req.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w: %w", korekta.ErrValidation, err)
	}

	resp, err := gc.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserContent()), buildConfig(req))
	if err != nil {
		return nil, classify(err)
	}

	text := ExtractText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("gemini: %w: no text in response", korekta.ErrResponse)
	}
	return korekta.ResultStream(text), nil
}

func buildConfig(req korekta.Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: defaultMaxTokens,
		Temperature:     genai.Ptr[float32](defaultTemperature),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	return config
}

// ExtractText concatenates the non-thought text parts of the first
// candidate. Exported for testing.
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return korekta.StatusError(korekta.Gemini, apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return korekta.StatusError(korekta.Gemini, apiErrPtr.Code, apiErrPtr.Message)
	}
	return korekta.TransportError(korekta.Gemini, err)
}
