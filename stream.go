package korekta

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving fragments.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// Stream uses a pull-based iterator pattern. Cancellation flows through the
// context passed to Client.Stream().
//
// Next() returns the next text fragment, or io.EOF once the backend sent its
// end marker. Batch backends produce no fragments: the first Next() returns
// io.EOF and Text() holds the whole response.
//
// Text() returns the assembled response. Behavior by stream state:
//   - StreamStateComplete: final text with surrounding whitespace trimmed.
//   - StreamStateStreaming, StreamStateError, StreamStateClosed: the
//     fragments received so far, untrimmed.
//   - StreamStateNew: empty string and ErrStreamNotReady.
type Stream interface {
	Next() (string, error)
	State() StreamState
	Text() (string, error)
	Close() error
}
