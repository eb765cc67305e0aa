package anthropic_test

import (
	"context"
	"encoding/json"
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

func TestClient_RequestFormat(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)

		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("Anthropic-Version"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)

		textStreamResponse("ok").handler()(w, r)
	}))
	defer srv.Close()

	client := anthropic.New(anthropic.WithBaseURL(srv.URL))
	s, err := client.Stream(context.Background(), validRequest())
	require.NoError(t, err)
	defer s.Close()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(captured, &body))

	assert.Equal(t, "claude-3-7-sonnet-latest", body["model"])
	assert.Equal(t, float64(4096), body["max_tokens"])
	assert.Equal(t, true, body["stream"])
	assert.Equal(t, "You are a proofreader.", body["system"])
	assert.Equal(t, 0.7, body["temperature"])

	msgs := body["messages"].([]interface{})
	require.Len(t, msgs, 1)
	msg0 := msgs[0].(map[string]interface{})
	assert.Equal(t, "user", msg0["role"])
	assert.Equal(t, "Fix the grammar.\n\n---\nteh cat\n---", msg0["content"])
}

func TestClient_BatchMode(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"  The cat.\n"}],"stop_reason":"end_turn"}`))
	}))
	defer srv.Close()

	req := validRequest()
	req.Stream = false
	client := anthropic.New(anthropic.WithBaseURL(srv.URL))
	s, err := client.Stream(context.Background(), req)
	require.NoError(t, err)
	defer s.Close()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(captured, &body))
	_, hasStream := body["stream"]
	assert.False(t, hasStream)

	assert.Empty(t, collectFragments(t, s))
	assert.Equal(t, korekta.StreamStateComplete, s.State())
	text, err := s.Text()
	require.NoError(t, err)
	assert.Equal(t, "The cat.", text)
}

func TestClient_BatchModeNoText(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	req := validRequest()
	req.Stream = false
	client := anthropic.New(anthropic.WithBaseURL(srv.URL))
	_, err := client.Stream(context.Background(), req)
	require.ErrorIs(t, err, korekta.ErrResponse)
}

func TestClient_ValidationBeforeNetwork(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := anthropic.New(anthropic.WithBaseURL(srv.URL))
	for name, mutate := range map[string]func(*korekta.Request){
		"missing key":   func(r *korekta.Request) { r.APIKey = "" },
		"missing model": func(r *korekta.Request) { r.Model = "" },
		"blank text":    func(r *korekta.Request) { r.Text = "  \n" },
	} {
		req := validRequest()
		mutate(&req)
		_, err := client.Stream(context.Background(), req)
		require.ErrorIs(t, err, korekta.ErrValidation, name)
	}
	assert.False(t, called)
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens: integer above 1 expected"}}`))
	}))
	defer srv.Close()

	client := anthropic.New(anthropic.WithBaseURL(srv.URL))
	_, err := client.Stream(context.Background(), validRequest())
	require.ErrorIs(t, err, korekta.ErrResponse)
	assert.Contains(t, err.Error(), "invalid_request_error")
	assert.Contains(t, err.Error(), "max_tokens")
}

func TestClient_HTTPErrorNonJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	client := anthropic.New(anthropic.WithBaseURL(srv.URL))
	_, err := client.Stream(context.Background(), validRequest())
	require.ErrorIs(t, err, korekta.ErrResponse)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := anthropic.New(anthropic.WithBaseURL(url))
	_, err := client.Stream(context.Background(), validRequest())
	require.ErrorIs(t, err, korekta.ErrConnection)
}

func TestClient_TimeoutBeforeHeaders(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := anthropic.New(anthropic.WithBaseURL(srv.URL), anthropic.WithTimeout(50*time.Millisecond))
	_, err := client.Stream(context.Background(), validRequest())
	require.ErrorIs(t, err, korekta.ErrTimeout)
}
