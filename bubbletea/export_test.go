package bubbletea

import "github.com/fwojciec/korekta"

// RenderPanel exports panel for testing.
func RenderPanel(m Model, p korekta.ProviderID, width, height int) string {
	return m.panel(p, width, height)
}

// Diffs returns the diff spans the model holds for highlighting.
func Diffs(m Model) map[korekta.ProviderID][]korekta.Span {
	return m.diffs
}

// Sanitize exports sanitize for testing.
func Sanitize(s string) string { return sanitize(s) }
