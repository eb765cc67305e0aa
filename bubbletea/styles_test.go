package bubbletea_test

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/korekta"
	bt "github.com/fwojciec/korekta/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	theme := korekta.DefaultTheme()
	s := bt.NewStyles(theme)

	assert.Equal(t, lipgloss.Color("3"), s.Border[korekta.Anthropic])
	assert.Equal(t, lipgloss.Color("5"), s.Border[korekta.DeepSeek])
	assert.True(t, s.Added.GetUnderline())
	assert.True(t, s.Removed.GetStrikethrough())
	assert.True(t, s.Header[korekta.OpenAI].GetBold())
}

func TestNewStyles_NegativeIndexHasNoColor(t *testing.T) {
	t.Parallel()

	theme := korekta.DefaultTheme()
	theme.Error = -1
	s := bt.NewStyles(theme)

	assert.Equal(t, lipgloss.NoColor{}, s.Error.GetForeground())
}

func TestStyles_Badge(t *testing.T) {
	t.Parallel()

	s := bt.NewStyles(korekta.DefaultTheme())

	assert.Equal(t, s.Success, s.Badge(korekta.StateCompleted{}))
	assert.Equal(t, s.Error, s.Badge(korekta.StateFailed{Err: errors.New("x")}))
	assert.Equal(t, s.Accent, s.Badge(korekta.StateStreaming{}))
	assert.Equal(t, s.Muted, s.Badge(korekta.StatePending{}))
	assert.Equal(t, s.Muted, s.Badge(korekta.StateCancelled{}))
}
