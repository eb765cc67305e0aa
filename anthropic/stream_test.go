package anthropic_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/korekta"
	"github.com/fwojciec/korekta/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_TextDeltas(t *testing.T) {
	t.Parallel()
	s := streamFromSSE(t, textStreamResponse("The ", "cat ", "sat.\n"))

	assert.Equal(t, korekta.StreamStateNew, s.State())
	_, err := s.Text()
	require.ErrorIs(t, err, korekta.ErrStreamNotReady)

	first, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "The ", first)
	assert.Equal(t, korekta.StreamStateStreaming, s.State())
	partial, err := s.Text()
	require.NoError(t, err)
	assert.Equal(t, "The ", partial)

	rest := collectFragments(t, s)
	assert.Equal(t, []string{"cat ", "sat.\n"}, rest)
	assert.Equal(t, korekta.StreamStateComplete, s.State())

	text, err := s.Text()
	require.NoError(t, err)
	assert.Equal(t, "The cat sat.", text)

	// Next after completion keeps returning EOF.
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
}

func TestStream_EmptyContent(t *testing.T) {
	t.Parallel()
	s := streamFromSSE(t, textStreamResponse("  ", "\n"))

	var err error
	for err == nil {
		_, err = s.Next()
	}
	require.ErrorIs(t, err, korekta.ErrResponse)
	assert.Contains(t, err.Error(), "no content")
	assert.Equal(t, korekta.StreamStateError, s.State())
}

func TestStream_ErrorEvent(t *testing.T) {
	t.Parallel()
	s := streamFromSSE(t, sseResponse{events: []sseEvent{
		messageStart,
		textDelta("partial"),
		{"error", `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`},
	}})

	f, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "partial", f)

	_, err = s.Next()
	require.ErrorIs(t, err, korekta.ErrResponse)
	assert.Contains(t, err.Error(), "overloaded_error")
	assert.Equal(t, korekta.StreamStateError, s.State())

	// The error is sticky.
	_, again := s.Next()
	assert.Equal(t, err, again)
}

func TestStream_UnexpectedEOF(t *testing.T) {
	t.Parallel()
	s := streamFromSSE(t, sseResponse{events: []sseEvent{messageStart, textDelta("half")}})

	_, err := s.Next()
	require.NoError(t, err)
	_, err = s.Next()
	require.ErrorIs(t, err, korekta.ErrResponse)
	assert.Contains(t, err.Error(), "unexpected end of stream")
}

func TestStream_MalformedDelta(t *testing.T) {
	t.Parallel()
	s := streamFromSSE(t, sseResponse{events: []sseEvent{
		messageStart,
		{"content_block_delta", `{not json`},
	}})

	_, err := s.Next()
	require.ErrorIs(t, err, korekta.ErrResponse)
}

func TestStream_IgnoresNonTextDeltas(t *testing.T) {
	t.Parallel()
	s := streamFromSSE(t, sseResponse{events: []sseEvent{
		messageStart,
		{"content_block_delta", `{"type":"content_block_delta","index":0,"delta":{"type":"signature_delta","signature":"abc"}}`},
		textDelta("text"),
		{"some_future_event", `{}`},
		messageStop,
	}})
	assert.Equal(t, []string{"text"}, collectFragments(t, s))
}

func TestStream_CloseBeforeComplete(t *testing.T) {
	t.Parallel()
	s := streamFromSSE(t, textStreamResponse("a", "b"))

	_, err := s.Next()
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Equal(t, korekta.StreamStateClosed, s.State())

	_, err = s.Next()
	require.ErrorIs(t, err, korekta.ErrStreamClosed)
}

func TestStream_IdleTimeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", textDelta("first").event, textDelta("first").data)
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := anthropic.New(anthropic.WithBaseURL(srv.URL), anthropic.WithTimeout(100*time.Millisecond))
	s, err := client.Stream(context.Background(), validRequest())
	require.NoError(t, err)
	defer s.Close()

	f, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "first", f)

	_, err = s.Next()
	require.ErrorIs(t, err, korekta.ErrTimeout)
}

func TestStream_ContextCancelled(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	client := anthropic.New(anthropic.WithBaseURL(srv.URL))
	s, err := client.Stream(ctx, validRequest())
	require.NoError(t, err)
	defer s.Close()

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = s.Next()
	require.ErrorIs(t, err, context.Canceled)
}
