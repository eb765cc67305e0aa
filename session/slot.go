package session

import (
	"strings"
	"sync"

	"github.com/fwojciec/korekta"
)

// slot holds one provider's state within a session. Each successful
// transition replaces the immutable RunState value and calls notify.
// Once terminal, every mutator returns false and leaves the state alone.
type slot struct {
	mu     sync.Mutex
	state  korekta.RunState
	buf    strings.Builder
	notify func()
}

func newSlot(notify func()) *slot {
	return &slot{state: korekta.StatePending{}, notify: notify}
}

func (s *slot) load() korekta.RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *slot) append(fragment string) bool {
	return s.transition(func() korekta.RunState {
		s.buf.WriteString(fragment)
		return korekta.StateStreaming{Accumulated: s.buf.String()}
	})
}

func (s *slot) complete(text string) bool {
	return s.transition(func() korekta.RunState {
		return korekta.StateCompleted{Text: text}
	})
}

func (s *slot) fail(err error) bool {
	return s.transition(func() korekta.RunState {
		return korekta.StateFailed{Kind: korekta.KindOf(err), Err: err}
	})
}

func (s *slot) cancel() bool {
	return s.transition(func() korekta.RunState {
		return korekta.StateCancelled{}
	})
}

func (s *slot) transition(next func() korekta.RunState) bool {
	s.mu.Lock()
	if korekta.IsTerminal(s.state) {
		s.mu.Unlock()
		return false
	}
	s.state = next()
	s.mu.Unlock()
	s.notify()
	return true
}
