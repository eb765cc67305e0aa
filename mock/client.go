// Package mock provides test doubles for korekta interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/korekta"
)

// Interface compliance check.
var _ korekta.Client = (*Client)(nil)

// Client is a test double for korekta.Client.
// Set StreamFn before calling Stream.
type Client struct {
	StreamFn func(ctx context.Context, req korekta.Request) (korekta.Stream, error)
}

// Stream delegates to StreamFn.
func (c *Client) Stream(ctx context.Context, req korekta.Request) (korekta.Stream, error) {
	return c.StreamFn(ctx, req)
}
