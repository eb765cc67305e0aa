// Package diff computes word-level differences between a submitted text and
// a provider's correction, and memoizes them per session.
package diff

import (
	"strings"
	"unicode"

	"github.com/fwojciec/korekta"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rivo/uniseg"
)

// Words returns the spans that turn original into final at word
// granularity. Whitespace is attached to the word before it, so an
// insertion reads as "big " rather than "big" plus a stray space.
// Within a replaced region removals precede additions, and adjacent spans
// of the same kind are merged.
func Words(original, final string) []korekta.Span {
	a := Tokenize(original)
	b := Tokenize(final)

	var spans []korekta.Span
	emit := func(tokens []string, kind korekta.SpanKind) {
		text := strings.Join(tokens, "")
		if text == "" {
			return
		}
		if n := len(spans); n > 0 && spans[n-1].Kind == kind {
			spans[n-1].Text += text
			return
		}
		spans = append(spans, korekta.Span{Text: text, Kind: kind})
	}

	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			emit(a[op.I1:op.I2], korekta.SpanUnchanged)
		case 'd':
			emit(a[op.I1:op.I2], korekta.SpanRemoved)
		case 'i':
			emit(b[op.J1:op.J2], korekta.SpanAdded)
		case 'r':
			emit(a[op.I1:op.I2], korekta.SpanRemoved)
			emit(b[op.J1:op.J2], korekta.SpanAdded)
		}
	}
	return spans
}

// Tokenize splits s into Unicode words, each carrying the whitespace that
// follows it. Leading whitespace forms its own token.
func Tokenize(s string) []string {
	var tokens []string
	state := -1
	for len(s) > 0 {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		if isSpace(word) && len(tokens) > 0 {
			tokens[len(tokens)-1] += word
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func isSpace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
