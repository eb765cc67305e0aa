// Package session runs correction sessions: one text fanned out to every
// enabled provider, with each provider's progress tracked in its own slot.
// A newer session supersedes the previous one, whose in-flight work is
// cancelled and whose late results are discarded.
package session

import (
	"context"
	"sync"

	"github.com/fwojciec/korekta"
)

// Session is one submitted text and its per-provider calls.
type Session struct {
	ID   uint64
	Text string

	ctx       context.Context
	cancel    context.CancelFunc
	providers []korekta.ProviderID
	slots     map[korekta.ProviderID]*slot // fixed at construction
	wg        sync.WaitGroup
	done      chan struct{}
}

func newSession(id uint64, text string, providers []korekta.ProviderID, notify func()) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:        id,
		Text:      text,
		ctx:       ctx,
		cancel:    cancel,
		providers: providers,
		slots:     make(map[korekta.ProviderID]*slot, len(providers)),
		done:      make(chan struct{}),
	}
	for _, p := range providers {
		s.slots[p] = newSlot(notify)
	}
	return s
}

// Providers returns the providers dispatched for this session in display
// order. Disabled providers are absent.
func (s *Session) Providers() []korekta.ProviderID {
	return append([]korekta.ProviderID(nil), s.providers...)
}

// State returns the current state of p's call. ok is false when p was not
// dispatched in this session.
func (s *Session) State(p korekta.ProviderID) (korekta.RunState, bool) {
	sl, ok := s.slots[p]
	if !ok {
		return nil, false
	}
	return sl.load(), true
}

// States returns a copy of every slot's state.
func (s *Session) States() map[korekta.ProviderID]korekta.RunState {
	out := make(map[korekta.ProviderID]korekta.RunState, len(s.slots))
	for p, sl := range s.slots {
		out[p] = sl.load()
	}
	return out
}

// Wait blocks until every provider task of this session has returned.
func (s *Session) Wait() {
	<-s.done
}

// Done is closed once every provider task of this session has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Cancelled reports whether the session's context was cancelled.
func (s *Session) Cancelled() bool {
	return s.ctx.Err() != nil
}

// seal cancels in-flight calls and marks every non-terminal slot Cancelled.
func (s *Session) seal() {
	s.cancel()
	for _, p := range s.providers {
		s.slots[p].cancel()
	}
}
