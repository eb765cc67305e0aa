package bubbletea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// sanitize makes provider output safe to place inside a panel. Escape
// sequences are stripped, CRLF and lone CR become LF, tabs become four
// spaces, and other control characters are dropped.
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r == '\r':
			b.WriteByte('\n')
		case r == '\t':
			b.WriteString("    ")
		case r < 0x20 || r == 0x7f:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
