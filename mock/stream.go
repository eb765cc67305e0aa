package mock

import (
	"io"
	"strings"

	"github.com/fwojciec/korekta"
)

// Interface compliance check.
var _ korekta.Stream = (*Stream)(nil)

// Stream is a test double for korekta.Stream.
// Set the function fields for the methods you need. NextFn and TextFn
// panic when nil to catch missing setup. CloseFn and StateFn are nil-safe
// (no-op and zero value) because callers always defer Close.
type Stream struct {
	NextFn  func() (string, error)
	StateFn func() korekta.StreamState
	TextFn  func() (string, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (string, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() korekta.StreamState {
	if s.StateFn == nil {
		return korekta.StreamStateNew
	}
	return s.StateFn()
}

// Text delegates to TextFn.
func (s *Stream) Text() (string, error) {
	return s.TextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Fragments returns a Stream that yields each fragment in order, then
// io.EOF. Its Text is the trimmed concatenation. Not safe for concurrent use.
func Fragments(fragments ...string) *Stream {
	var (
		i     int
		buf   strings.Builder
		state = korekta.StreamStateNew
	)
	return &Stream{
		NextFn: func() (string, error) {
			if i >= len(fragments) {
				state = korekta.StreamStateComplete
				return "", io.EOF
			}
			f := fragments[i]
			i++
			buf.WriteString(f)
			state = korekta.StreamStateStreaming
			return f, nil
		},
		StateFn: func() korekta.StreamState { return state },
		TextFn: func() (string, error) {
			if state == korekta.StreamStateComplete {
				return strings.TrimSpace(buf.String()), nil
			}
			return buf.String(), nil
		},
	}
}
