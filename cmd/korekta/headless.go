package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/korekta/json"
	"github.com/fwojciec/korekta/session"
)

// headless runs one session for text and writes its final snapshot as JSON.
// Interrupting ctx cancels the session; the cancelled snapshot is still
// written.
func headless(ctx context.Context, mgr *session.Manager, text string, withDiffs bool, w io.Writer) error {
	s, err := mgr.Start(text)
	if err != nil {
		return err
	}
	select {
	case <-s.Done():
	case <-ctx.Done():
		mgr.Cancel()
		s.Wait()
	}

	var diffs json.DiffFunc
	if withDiffs {
		diffs = mgr.Diff
	}
	data, err := json.MarshalSnapshot(mgr.Snapshot(), diffs)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
