package korekta

// RunState is a sealed interface describing where one provider's call stands
// within a session. The unexported marker method prevents external
// implementations.
//
// Transitions: Pending -> Streaming -> {Completed | Failed}, and
// Pending | Streaming -> Cancelled. Completed, Failed and Cancelled are
// absorbing.
type RunState interface {
	runState()
}

// StatePending means the call was dispatched and no data arrived yet.
type StatePending struct{}

func (StatePending) runState() {}

// StateStreaming means at least one fragment arrived.
type StateStreaming struct {
	Accumulated string
}

func (StateStreaming) runState() {}

// StateCompleted holds the final corrected text.
type StateCompleted struct {
	Text string
}

func (StateCompleted) runState() {}

// StateFailed holds the classified failure.
type StateFailed struct {
	Kind ErrorKind
	Err  error
}

func (StateFailed) runState() {}

// StateCancelled means the session was cancelled or superseded.
type StateCancelled struct{}

func (StateCancelled) runState() {}

// Interface compliance checks.
var (
	_ RunState = StatePending{}
	_ RunState = StateStreaming{}
	_ RunState = StateCompleted{}
	_ RunState = StateFailed{}
	_ RunState = StateCancelled{}
)

// IsTerminal reports whether s is absorbing.
func IsTerminal(s RunState) bool {
	switch s.(type) {
	case StateCompleted, StateFailed, StateCancelled:
		return true
	default:
		return false
	}
}

// StateName returns a short lowercase label for s.
func StateName(s RunState) string {
	switch s.(type) {
	case StatePending:
		return "pending"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
