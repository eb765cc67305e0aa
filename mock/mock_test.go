package mock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/korekta"
	"github.com/fwojciec/korekta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Stream(t *testing.T) {
	t.Parallel()
	t.Run("delegates to StreamFn", func(t *testing.T) {
		t.Parallel()
		var s mock.Stream
		c := mock.Client{
			StreamFn: func(ctx context.Context, req korekta.Request) (korekta.Stream, error) {
				return &s, nil
			},
		}
		got, err := c.Stream(context.Background(), korekta.Request{})
		require.NoError(t, err)
		assert.Equal(t, &s, got)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("api error")
		c := mock.Client{
			StreamFn: func(ctx context.Context, req korekta.Request) (korekta.Stream, error) {
				return nil, wantErr
			},
		}
		_, err := c.Stream(context.Background(), korekta.Request{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when StreamFn not set", func(t *testing.T) {
		t.Parallel()
		c := mock.Client{}
		assert.Panics(t, func() {
			_, _ = c.Stream(context.Background(), korekta.Request{})
		})
	})
}

func TestStream_NilSafeDefaults(t *testing.T) {
	t.Parallel()
	s := mock.Stream{}
	assert.Equal(t, korekta.StreamStateNew, s.State())
	assert.NoError(t, s.Close())
	assert.Panics(t, func() { _, _ = s.Next() })
	assert.Panics(t, func() { _, _ = s.Text() })
}

func TestFragments(t *testing.T) {
	t.Parallel()
	s := mock.Fragments("Hello", " world ")

	f, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "Hello", f)
	assert.Equal(t, korekta.StreamStateStreaming, s.State())

	f, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, " world ", f)

	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, korekta.StreamStateComplete, s.State())

	text, err := s.Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}
