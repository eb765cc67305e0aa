package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/korekta"
	"github.com/mattn/go-runewidth"
)

// panel renders one provider's box. width and height include the border.
func (m Model) panel(p korekta.ProviderID, width, height int) string {
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)

	st, dispatched := m.snapshot.States[p]
	header := m.header(p, st, dispatched, innerW)

	body := m.body(p, st, dispatched)
	body = lipgloss.NewStyle().Width(innerW).Render(body)
	lines := strings.Split(body, "\n")
	// Keep the tail so streaming text stays in view.
	if room := innerH - 1; len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	content := header + "\n" + strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Border[p]).
		Width(innerW).
		Height(innerH).
		Render(content)
}

func (m Model) header(p korekta.ProviderID, st korekta.RunState, dispatched bool, width int) string {
	name := p.String()
	label := "disabled"
	if dispatched {
		label = korekta.StateName(st)
	}
	// Plain widths are measured before styling adds escape sequences.
	avail := width - runewidth.StringWidth(label) - 1
	if avail < 1 {
		return m.styles.Header[p].Render(runewidth.Truncate(name, width, "…"))
	}
	name = runewidth.Truncate(name, avail, "…")
	pad := strings.Repeat(" ", max(width-runewidth.StringWidth(name)-runewidth.StringWidth(label), 1))
	badge := m.styles.Muted
	if dispatched {
		badge = m.styles.Badge(st)
	}
	return m.styles.Header[p].Render(name) + pad + badge.Render(label)
}

func (m Model) body(p korekta.ProviderID, st korekta.RunState, dispatched bool) string {
	if !dispatched {
		if m.snapshot.SessionID == 0 {
			return ""
		}
		return m.styles.Muted.Render("no API key configured")
	}
	switch s := st.(type) {
	case korekta.StatePending:
		return m.styles.Muted.Render("waiting for response...")
	case korekta.StateStreaming:
		return sanitize(s.Accumulated)
	case korekta.StateCompleted:
		if spans, ok := m.diffs[p]; ok && m.highlight {
			return m.renderSpans(spans)
		}
		return sanitize(s.Text)
	case korekta.StateFailed:
		return m.styles.Error.Render(s.Kind.String() + " error: " + sanitize(errorText(s.Err)))
	case korekta.StateCancelled:
		return m.styles.Muted.Render("cancelled")
	default:
		return ""
	}
}

func (m Model) renderSpans(spans []korekta.Span) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case korekta.SpanAdded:
			b.WriteString(m.styles.Added.Render(sanitize(s.Text)))
		case korekta.SpanRemoved:
			b.WriteString(m.styles.Removed.Render(sanitize(s.Text)))
		default:
			b.WriteString(sanitize(s.Text))
		}
	}
	return b.String()
}

func errorText(err error) string {
	if err == nil {
		return "unknown"
	}
	return err.Error()
}
