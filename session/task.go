package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/korekta"
)

// errSuperseded marks a task that stopped because its session is no longer
// current or was cancelled. It never reaches a slot.
var errSuperseded = errors.New("session superseded")

// dispatch runs one provider call for s and records the outcome in p's slot.
func (m *Manager) dispatch(s *Session, p korekta.ProviderID, client korekta.Client, req korekta.Request) {
	defer s.wg.Done()
	start := time.Now()
	err := m.drive(s, p, client, req)
	m.logDispatch(s.ID, p, req.Model, time.Since(start), err)
}

// drive performs the call. The staleness check runs before sending, after
// the response arrives and around every fragment read, always before a
// transition is committed.
func (m *Manager) drive(s *Session, p korekta.ProviderID, client korekta.Client, req korekta.Request) error {
	sl := s.slots[p]

	if err := req.Validate(); err != nil {
		err = fmt.Errorf("%s: %w", p, err)
		sl.fail(err)
		return err
	}
	if m.stale(s) {
		return m.discard(sl)
	}

	stream, err := client.Stream(s.ctx, req)
	if err != nil {
		return m.settle(s, sl, p, err)
	}
	defer stream.Close()

	for {
		if m.stale(s) {
			return m.discard(sl)
		}
		fragment, err := stream.Next()
		if m.stale(s) {
			return m.discard(sl)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return m.settle(s, sl, p, err)
		}
		if fragment != "" {
			sl.append(fragment)
		}
	}

	text, err := stream.Text()
	if err != nil {
		return m.settle(s, sl, p, err)
	}
	if strings.TrimSpace(text) == "" {
		return m.settle(s, sl, p, fmt.Errorf("%s: %w: empty correction", p, korekta.ErrResponse))
	}
	if m.stale(s) {
		return m.discard(sl)
	}
	sl.complete(text)
	return nil
}

// stale reports whether s was cancelled or superseded.
func (m *Manager) stale(s *Session) bool {
	return s.ctx.Err() != nil || m.current.Load() != s.ID
}

// settle records err in the slot, unless the failure is a consequence of
// the session going stale.
func (m *Manager) settle(s *Session, sl *slot, p korekta.ProviderID, err error) error {
	if m.stale(s) || errors.Is(err, context.Canceled) {
		return m.discard(sl)
	}
	err = korekta.TransportError(p, err)
	sl.fail(err)
	return err
}

func (m *Manager) discard(sl *slot) error {
	sl.cancel()
	return errSuperseded
}

func (m *Manager) logDispatch(id uint64, p korekta.ProviderID, model string, d time.Duration, err error) {
	attrs := []slog.Attr{
		slog.Uint64("session_id", id),
		slog.String("provider", p.String()),
		slog.String("model", model),
		slog.Duration("duration", d),
		slog.Bool("success", err == nil),
	}
	level := slog.LevelInfo
	msg := "provider call completed"
	switch {
	case errors.Is(err, errSuperseded):
		level = slog.LevelDebug
		msg = "provider call discarded"
	case err != nil:
		level = slog.LevelWarn
		msg = "provider call failed"
		attrs = append(attrs,
			slog.String("error", err.Error()),
			slog.String("kind", korekta.KindOf(err).String()))
	}
	m.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
