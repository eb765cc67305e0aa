// Package json encodes session snapshots as JSON for non-interactive use.
package json

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fwojciec/korekta"
	"github.com/fwojciec/korekta/session"
)

// envelope is the v1 wire format for a snapshot.
type envelope struct {
	Version   int         `json:"version"`
	SessionID uint64      `json:"session_id"`
	Text      string      `json:"text"`
	Results   []resultDTO `json:"results"`
}

// resultDTO is one provider's state with a state discriminator.
type resultDTO struct {
	Provider    string    `json:"provider"`
	State       string    `json:"state"`
	Text        *string   `json:"text,omitempty"`
	Accumulated *string   `json:"accumulated,omitempty"`
	Kind        *string   `json:"kind,omitempty"`
	Error       *string   `json:"error,omitempty"`
	Diff        []spanDTO `json:"diff,omitempty"`
}

type spanDTO struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// DiffFunc returns the diff for a completed provider, if any.
type DiffFunc func(p korekta.ProviderID) ([]korekta.Span, bool)

// MarshalSnapshot serializes a snapshot in v1 envelope format. Results
// follow the snapshot's provider order. When diffs is non-nil, completed
// results carry their word diff.
func MarshalSnapshot(snap session.Snapshot, diffs DiffFunc) ([]byte, error) {
	env := envelope{
		Version:   1,
		SessionID: snap.SessionID,
		Text:      snap.Text,
		Results:   make([]resultDTO, 0, len(snap.Providers)),
	}
	for _, p := range snap.Providers {
		dto, err := marshalState(p, snap.States[p])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if _, ok := snap.States[p].(korekta.StateCompleted); ok && diffs != nil {
			if spans, ok := diffs(p); ok {
				dto.Diff = marshalSpans(spans)
			}
		}
		env.Results = append(env.Results, dto)
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSnapshot deserializes a snapshot from v1 envelope format.
// Failure errors are restored as plain errors wrapping the sentinel of
// their kind.
func UnmarshalSnapshot(data []byte) (session.Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return session.Snapshot{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return session.Snapshot{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	snap := session.Snapshot{
		SessionID: env.SessionID,
		Text:      env.Text,
		States:    make(map[korekta.ProviderID]korekta.RunState, len(env.Results)),
	}
	for i, dto := range env.Results {
		p, err := korekta.ParseProviderID(dto.Provider)
		if err != nil {
			return session.Snapshot{}, fmt.Errorf("result %d: %w", i, err)
		}
		st, err := unmarshalState(dto)
		if err != nil {
			return session.Snapshot{}, fmt.Errorf("result %d: %w", i, err)
		}
		snap.Providers = append(snap.Providers, p)
		snap.States[p] = st
	}
	return snap, nil
}

func marshalState(p korekta.ProviderID, st korekta.RunState) (resultDTO, error) {
	dto := resultDTO{Provider: p.String(), State: korekta.StateName(st)}
	switch s := st.(type) {
	case korekta.StatePending, korekta.StateCancelled:
	case korekta.StateStreaming:
		dto.Accumulated = &s.Accumulated
	case korekta.StateCompleted:
		dto.Text = &s.Text
	case korekta.StateFailed:
		kind := s.Kind.String()
		dto.Kind = &kind
		if s.Err != nil {
			msg := s.Err.Error()
			dto.Error = &msg
		}
	default:
		return resultDTO{}, fmt.Errorf("unknown state type: %T", st)
	}
	return dto, nil
}

func unmarshalState(dto resultDTO) (korekta.RunState, error) {
	switch dto.State {
	case "pending":
		return korekta.StatePending{}, nil
	case "cancelled":
		return korekta.StateCancelled{}, nil
	case "streaming":
		return korekta.StateStreaming{Accumulated: deref(dto.Accumulated)}, nil
	case "completed":
		return korekta.StateCompleted{Text: deref(dto.Text)}, nil
	case "failed":
		kind := parseKind(deref(dto.Kind))
		return korekta.StateFailed{Kind: kind, Err: restoreError(kind, deref(dto.Error))}, nil
	default:
		return nil, fmt.Errorf("unknown state: %q", dto.State)
	}
}

func marshalSpans(spans []korekta.Span) []spanDTO {
	out := make([]spanDTO, len(spans))
	for i, s := range spans {
		out[i] = spanDTO{Kind: s.Kind.String(), Text: s.Text}
	}
	return out
}

func parseKind(s string) korekta.ErrorKind {
	for _, k := range []korekta.ErrorKind{korekta.KindValidation, korekta.KindConnection, korekta.KindTimeout, korekta.KindResponse} {
		if k.String() == s {
			return k
		}
	}
	return korekta.KindUnknown
}

func restoreError(kind korekta.ErrorKind, msg string) error {
	var sentinel error
	switch kind {
	case korekta.KindValidation:
		sentinel = korekta.ErrValidation
	case korekta.KindConnection:
		sentinel = korekta.ErrConnection
	case korekta.KindTimeout:
		sentinel = korekta.ErrTimeout
	case korekta.KindResponse:
		sentinel = korekta.ErrResponse
	default:
		return errors.New(msg)
	}
	return &restoredError{msg: msg, sentinel: sentinel}
}

// restoredError keeps the original message while matching its sentinel.
type restoredError struct {
	msg      string
	sentinel error
}

func (e *restoredError) Error() string { return e.msg }
func (e *restoredError) Unwrap() error { return e.sentinel }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
