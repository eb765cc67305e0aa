package korekta_test

import (
	"testing"

	"github.com/fwojciec/korekta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamState_ZeroValue(t *testing.T) {
	t.Parallel()
	var s korekta.StreamState
	assert.Equal(t, korekta.StreamStateNew, s, "zero-value StreamState should be StreamStateNew")
}

func TestProviders_DisplayOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []korekta.ProviderID{korekta.OpenAI, korekta.Anthropic, korekta.Gemini, korekta.DeepSeek}, korekta.Providers())
	assert.Len(t, korekta.Providers(), korekta.NumProviders)
}

func TestProviderID_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "OpenAI", korekta.OpenAI.String())
	assert.Equal(t, "DeepSeek", korekta.DeepSeek.String())
	assert.Equal(t, "ProviderID(7)", korekta.ProviderID(7).String())
	assert.False(t, korekta.ProviderID(-1).Valid())
}

func TestParseProviderID(t *testing.T) {
	t.Parallel()

	p, err := korekta.ParseProviderID("gemini")
	require.NoError(t, err)
	assert.Equal(t, korekta.Gemini, p)

	p, err = korekta.ParseProviderID("ANTHROPIC")
	require.NoError(t, err)
	assert.Equal(t, korekta.Anthropic, p)

	_, err = korekta.ParseProviderID("mistral")
	require.ErrorIs(t, err, korekta.ErrValidation)
}

func TestProviderConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, korekta.ProviderConfig{Model: "m"}.Enabled())
	assert.True(t, korekta.ProviderConfig{APIKey: "k"}.Enabled())
}
