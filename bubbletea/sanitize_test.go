package bubbletea_test

import (
	"testing"

	bt "github.com/fwojciec/korekta/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "Zażółć gęślą jaźń", "Zażółć gęślą jaźń"},
		{"strips color codes", "\x1b[31mred\x1b[0m text", "red text"},
		{"strips OSC sequences", "\x1b]0;title\x07body", "body"},
		{"normalizes CRLF", "a\r\nb", "a\nb"},
		{"lone CR breaks line", "a\rb", "a\nb"},
		{"expands tabs", "a\tb", "a    b"},
		{"drops control characters", "a\x00b\x08c\x7f", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bt.Sanitize(tt.in))
		})
	}
}
