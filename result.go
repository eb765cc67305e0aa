package korekta

import (
	"io"
	"strings"
)

// resultStream implements Stream for a backend that answered in one piece.
type resultStream struct {
	text  string
	state StreamState
}

// Interface compliance check.
var _ Stream = (*resultStream)(nil)

// ResultStream returns a Stream holding a complete batch response. It yields
// no fragments: the first Next() returns io.EOF.
func ResultStream(text string) Stream {
	return &resultStream{text: text, state: StreamStateNew}
}

func (s *resultStream) Next() (string, error) {
	switch s.state {
	case StreamStateClosed:
		return "", ErrStreamClosed
	default:
		s.state = StreamStateComplete
		return "", io.EOF
	}
}

func (s *resultStream) State() StreamState {
	return s.state
}

func (s *resultStream) Text() (string, error) {
	if s.state == StreamStateNew {
		return "", ErrStreamNotReady
	}
	return strings.TrimSpace(s.text), nil
}

func (s *resultStream) Close() error {
	if s.state != StreamStateComplete {
		s.state = StreamStateClosed
	}
	return nil
}
