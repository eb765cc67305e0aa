package korekta

// SpanKind classifies a diff span relative to the original text.
type SpanKind int

const (
	SpanUnchanged SpanKind = iota
	SpanAdded
	SpanRemoved
)

func (k SpanKind) String() string {
	switch k {
	case SpanAdded:
		return "added"
	case SpanRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

// Span is a contiguous run of text in a word diff.
type Span struct {
	Text string
	Kind SpanKind
}
