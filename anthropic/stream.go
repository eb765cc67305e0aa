package anthropic

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/korekta"
)

const maxEventSize = 1 << 20

// stream implements [korekta.Stream] by parsing SSE events from an HTTP response body.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	cancel  context.CancelFunc
	wd      *watchdog
	state   korekta.StreamState
	text    strings.Builder
	err     error // terminal error, if any
}

// Interface compliance check.
var _ korekta.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser, wd *watchdog, cancel context.CancelFunc) *stream {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), maxEventSize)
	return &stream{
		body:    body,
		scanner: sc,
		ctx:     ctx,
		cancel:  cancel,
		wd:      wd,
		state:   korekta.StreamStateNew,
	}
}

// Next reads SSE events until the next text fragment.
// Returns io.EOF when message_stop arrives.
func (s *stream) Next() (string, error) {
	switch s.state {
	case korekta.StreamStateComplete:
		return "", io.EOF
	case korekta.StreamStateError:
		return "", s.err
	case korekta.StreamStateClosed:
		return "", korekta.ErrStreamClosed
	}

	for {
		eventType, data, err := s.readSSEEvent()
		if err != nil {
			s.terminate(err)
			return "", s.err
		}
		s.wd.kick()

		s.state = korekta.StreamStateStreaming

		fragment, err := s.processEvent(eventType, data)
		if err != nil {
			s.terminate(err)
			return "", s.err
		}

		if s.state == korekta.StreamStateComplete {
			s.finish()
			if strings.TrimSpace(s.text.String()) == "" {
				s.state = korekta.StreamStateError
				s.err = fmt.Errorf("anthropic: %w: no content in streaming response", korekta.ErrResponse)
				return "", s.err
			}
			return "", io.EOF
		}

		if fragment != "" {
			return fragment, nil
		}
		// ping, message_start and friends carry no text.
	}
}

// State returns the current stream state.
func (s *stream) State() korekta.StreamState {
	return s.state
}

// Text returns the accumulated text, trimmed once the stream is complete.
func (s *stream) Text() (string, error) {
	switch s.state {
	case korekta.StreamStateNew:
		return "", korekta.ErrStreamNotReady
	case korekta.StreamStateComplete:
		return strings.TrimSpace(s.text.String()), nil
	default:
		return s.text.String(), nil
	}
}

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	if s.state != korekta.StreamStateComplete && s.state != korekta.StreamStateError {
		s.state = korekta.StreamStateClosed
	}
	s.finish()
	return s.body.Close()
}

func (s *stream) finish() {
	s.wd.stop()
	s.cancel()
}

// terminate records a terminal error and sets the error state.
func (s *stream) terminate(err error) {
	s.state = korekta.StreamStateError
	expired := s.wd.expired()
	ctxErr := s.ctx.Err()
	s.finish()
	switch {
	case errors.Is(err, io.EOF):
		// message_stop sets StreamStateComplete before we get here, so a raw
		// EOF means the connection dropped mid-stream.
		s.err = fmt.Errorf("anthropic: %w: unexpected end of stream", korekta.ErrResponse)
	case expired:
		s.err = fmt.Errorf("anthropic: %w: no event within %s", korekta.ErrTimeout, s.wd.timeout)
	case errors.Is(ctxErr, context.DeadlineExceeded):
		s.err = korekta.TransportError(korekta.Anthropic, ctxErr)
	case ctxErr != nil:
		s.err = fmt.Errorf("anthropic: %w", ctxErr)
	case errors.Is(err, korekta.ErrResponse):
		s.err = err
	default:
		s.err = korekta.TransportError(korekta.Anthropic, err)
	}
}

// readSSEEvent reads lines until a complete SSE event is assembled.
// Returns the event type and the data payload.
func (s *stream) readSSEEvent() (string, string, error) {
	var eventType string
	var dataBuf strings.Builder

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			if dataBuf.Len() > 0 {
				return eventType, dataBuf.String(), nil
			}
			continue
		}

		if strings.HasPrefix(line, "event: ") {
			eventType = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(line, "data: "))
		}
		// Comments (lines starting with ':') and unknown fields are ignored.
	}

	if err := s.scanner.Err(); err != nil {
		return "", "", err
	}

	if dataBuf.Len() > 0 {
		return eventType, dataBuf.String(), nil
	}
	return "", "", io.EOF
}

// processEvent returns the text carried by an event, if any.
func (s *stream) processEvent(eventType, data string) (string, error) {
	switch eventType {
	case "content_block_delta":
		return s.handleContentBlockDelta(data)
	case "message_stop":
		s.state = korekta.StreamStateComplete
		return "", nil
	case "error":
		return "", s.handleError(data)
	default:
		// message_start, content_block_start/stop, message_delta, ping and
		// unknown event types carry no text.
		return "", nil
	}
}

func (s *stream) handleContentBlockDelta(data string) (string, error) {
	var evt sseContentBlockDelta
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return "", fmt.Errorf("anthropic: %w: failed to parse content_block_delta: %w", korekta.ErrResponse, err)
	}
	if evt.Delta.Type != "text_delta" {
		return "", nil
	}
	s.text.WriteString(evt.Delta.Text)
	return evt.Delta.Text, nil
}

func (s *stream) handleError(data string) error {
	var evt sseError
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return fmt.Errorf("anthropic: %w: failed to parse error event: %w", korekta.ErrResponse, err)
	}
	return fmt.Errorf("anthropic: %w: %s: %s", korekta.ErrResponse, evt.Error.Type, evt.Error.Message)
}
