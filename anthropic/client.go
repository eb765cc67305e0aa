package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/korekta"
)

// Interface compliance check.
var _ korekta.Client = (*Client)(nil)

// Client implements [korekta.Client] for the Anthropic Messages API.
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

// WithTimeout sets the maximum wait for the response headers and, when
// streaming, for each subsequent event. Default is 25s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a new Anthropic [Client].
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

// Stream sends the correction request. With req.Stream set the returned
// [korekta.Stream] yields text fragments as they arrive; otherwise it holds
// the complete response.
func (c *Client) Stream(ctx context.Context, req korekta.Request) (korekta.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	body, err := json.Marshal(buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	wd := startWatchdog(c.timeout, cancel)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		wd.stop()
		cancel()
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", req.APIKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		wd.stop()
		cancel()
		if wd.expired() {
			return nil, fmt.Errorf("anthropic: %w: no response within %s", korekta.ErrTimeout, c.timeout)
		}
		return nil, korekta.TransportError(korekta.Anthropic, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		wd.stop()
		cancel()
		return nil, parseHTTPError(resp)
	}

	if req.Stream {
		wd.kick()
		return newStream(ctx, resp.Body, wd, cancel), nil
	}

	defer resp.Body.Close()
	defer cancel()
	defer wd.stop()
	return readBatch(resp.Body, wd)
}

func buildRequest(req korekta.Request) apiRequest {
	return apiRequest{
		Model:       req.Model,
		MaxTokens:   defaultMaxTokens,
		System:      req.SystemPrompt,
		Messages:    []apiMessage{{Role: "user", Content: req.UserContent()}},
		Temperature: defaultTemperature,
		Stream:      req.Stream,
	}
}

func readBatch(body io.Reader, wd *watchdog) (korekta.Stream, error) {
	var resp apiResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		if wd.expired() {
			return nil, fmt.Errorf("anthropic: %w: reading response body", korekta.ErrTimeout)
		}
		return nil, fmt.Errorf("anthropic: %w: failed to parse response: %w", korekta.ErrResponse, err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return korekta.ResultStream(block.Text), nil
		}
	}
	return nil, fmt.Errorf("anthropic: %w: no text content in response", korekta.ErrResponse)
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anthropic: %w: HTTP %d (failed to read body: %w)", korekta.ErrResponse, resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Type == "" {
		return korekta.StatusError(korekta.Anthropic, resp.StatusCode, string(body))
	}
	return fmt.Errorf("anthropic: %w: HTTP %d: %s: %s", korekta.ErrResponse, resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
}
