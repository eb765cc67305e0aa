// Package bubbletea provides a Bubble Tea TUI for korekta: an input area and
// one panel per provider showing its correction as it arrives.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/korekta"
	"github.com/fwojciec/korekta/session"
)

// Engine is the session manager as seen by the TUI.
type Engine interface {
	Start(text string) (*session.Session, error)
	Retry() (*session.Session, error)
	Cancel()
	Current() uint64
	Snapshot() session.Snapshot
	Diff(p korekta.ProviderID) ([]korekta.Span, bool)
	Updates() <-chan struct{}
	Style() korekta.Style
	SetStyle(style korekta.Style)
}

var _ Engine = (*session.Manager)(nil)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// SnapshotMsg delivers the engine state after a change.
type SnapshotMsg struct {
	Snapshot session.Snapshot
}

// waitForUpdate blocks until the engine signals a change, then reads a
// snapshot. Signals coalesce, so one pending read covers any number of
// transitions.
func waitForUpdate(e Engine) tea.Cmd {
	return func() tea.Msg {
		<-e.Updates()
		return SnapshotMsg{Snapshot: e.Snapshot()}
	}
}
