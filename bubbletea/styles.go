package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/korekta"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Header  [korekta.NumProviders]lipgloss.Style
	Border  [korekta.NumProviders]lipgloss.Color
	Added   lipgloss.Style
	Removed lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t korekta.Theme) Styles {
	s := Styles{
		Added:   lipgloss.NewStyle().Foreground(ansiColor(t.Added)).Underline(true),
		Removed: lipgloss.NewStyle().Foreground(ansiColor(t.Removed)).Strikethrough(true),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
	for _, p := range korekta.Providers() {
		s.Header[p] = lipgloss.NewStyle().Foreground(ansiColor(t.Providers[p])).Bold(true)
		s.Border[p] = lipgloss.Color(strconv.Itoa(t.Providers[p]))
	}
	return s
}

// Badge returns the style for a state label.
func (s Styles) Badge(st korekta.RunState) lipgloss.Style {
	switch st.(type) {
	case korekta.StateCompleted:
		return s.Success
	case korekta.StateFailed:
		return s.Error
	case korekta.StateStreaming:
		return s.Accent
	default:
		return s.Muted
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
