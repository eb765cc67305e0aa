package korekta

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates empty text, key or model. Raised before any
	// network call is attempted.
	ErrValidation = errors.New("validation error")

	// ErrConnection indicates a transport failure before any response.
	ErrConnection = errors.New("connection error")

	// ErrTimeout indicates a provider's maximum wait was exceeded.
	ErrTimeout = errors.New("timeout error")

	// ErrResponse indicates a non-success status or an unusable body.
	ErrResponse = errors.New("response error")

	// ErrNoProviders indicates that no provider has an API key configured.
	ErrNoProviders = errors.New("no provider configured")

	// ErrStreamNotReady indicates Text() was called before Next().
	ErrStreamNotReady = errors.New("stream not ready: call Next() first")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// ErrorKind classifies a provider failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindConnection
	KindTimeout
	KindResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// KindOf returns the ErrorKind of err based on the sentinel it wraps.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrConnection):
		return KindConnection
	case errors.Is(err, ErrResponse):
		return KindResponse
	default:
		return KindUnknown
	}
}

// TransportError wraps an error returned by an HTTP round trip or SDK call
// with the sentinel matching its cause. Errors that already carry a sentinel
// are returned unchanged. Anything that is neither a deadline nor a network
// failure is treated as a response error.
func TransportError(p ProviderID, err error) error {
	if err == nil || KindOf(err) != KindUnknown {
		return err
	}
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %w", p, ErrTimeout, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%s: %w: %w", p, ErrTimeout, err)
	case isConnectionFailure(err):
		return fmt.Errorf("%s: %w: %w", p, ErrConnection, err)
	default:
		return fmt.Errorf("%s: %w: %w", p, ErrResponse, err)
	}
}

// StatusError builds a response error for a non-success HTTP status.
func StatusError(p ProviderID, status int, body string) error {
	return fmt.Errorf("%s: %w: HTTP %d: %s", p, ErrResponse, status, body)
}

func isConnectionFailure(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
