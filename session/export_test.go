package session

import "github.com/fwojciec/korekta"

// Slot exposes the per-provider state cell for tests.
type Slot struct{ s *slot }

func NewSlot(notify func()) Slot { return Slot{newSlot(notify)} }

func (s Slot) Append(fragment string) bool { return s.s.append(fragment) }
func (s Slot) Complete(text string) bool   { return s.s.complete(text) }
func (s Slot) Fail(err error) bool         { return s.s.fail(err) }
func (s Slot) Cancel() bool                { return s.s.cancel() }
func (s Slot) State() korekta.RunState     { return s.s.load() }
