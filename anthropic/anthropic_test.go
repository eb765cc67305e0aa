package anthropic_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/korekta"
	"github.com/fwojciec/korekta/anthropic"
	"github.com/stretchr/testify/require"
)

// sseResponse is a helper to build SSE responses for tests.
type sseResponse struct {
	events []sseEvent
}

type sseEvent struct {
	event string
	data  string
}

func (s sseResponse) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher, _ := w.(http.Flusher)
		for _, evt := range s.events {
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.event, evt.data)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

func textDelta(text string) sseEvent {
	return sseEvent{"content_block_delta", fmt.Sprintf(`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":%q}}`, text)}
}

var (
	messageStart = sseEvent{"message_start", `{"type":"message_start","message":{"id":"msg_1","type":"message","role":"assistant","content":[],"model":"claude-3-7-sonnet-latest","stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":10,"output_tokens":1}}}`}
	blockStart   = sseEvent{"content_block_start", `{"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}`}
	ping         = sseEvent{"ping", `{"type":"ping"}`}
	blockStop    = sseEvent{"content_block_stop", `{"type":"content_block_stop","index":0}`}
	messageDelta = sseEvent{"message_delta", `{"type":"message_delta","delta":{"stop_reason":"end_turn","stop_sequence":null},"usage":{"output_tokens":5}}`}
	messageStop  = sseEvent{"message_stop", `{"type":"message_stop"}`}
)

// textStreamResponse returns a simple text streaming SSE response.
func textStreamResponse(deltas ...string) sseResponse {
	events := []sseEvent{messageStart, blockStart, ping}
	for _, d := range deltas {
		events = append(events, textDelta(d))
	}
	events = append(events, blockStop, messageDelta, messageStop)
	return sseResponse{events: events}
}

func validRequest() korekta.Request {
	return korekta.Request{
		Model:        "claude-3-7-sonnet-latest",
		APIKey:       "test-key",
		SystemPrompt: "You are a proofreader.",
		Instruction:  "Fix the grammar.",
		Text:         "teh cat",
		Stream:       true,
	}
}

func streamFromSSE(t *testing.T, resp sseResponse) korekta.Stream {
	t.Helper()
	srv := httptest.NewServer(resp.handler())
	t.Cleanup(srv.Close)
	client := anthropic.New(anthropic.WithBaseURL(srv.URL))
	stream, err := client.Stream(context.Background(), validRequest())
	require.NoError(t, err)
	t.Cleanup(func() { stream.Close() })
	return stream
}

func collectFragments(t *testing.T, s korekta.Stream) []string {
	t.Helper()
	var fragments []string
	for {
		f, err := s.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		fragments = append(fragments, f)
	}
	return fragments
}
