package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/korekta"
	"github.com/fwojciec/korekta/session"
)

const (
	inputHeight  = 5
	statusHeight = 1
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the korekta TUI.
type Model struct {
	// Input is the text to correct. Exported for test access.
	Input textarea.Model

	engine    Engine
	styles    Styles
	highlight bool

	snapshot session.Snapshot
	diffs    map[korekta.ProviderID][]korekta.Span
	err      error

	width  int
	height int
	ready  bool
}

// Option configures a [Model].
type Option func(*Model)

// WithHighlight enables or disables diff highlighting of completed
// corrections. Default is enabled.
func WithHighlight(on bool) Option {
	return func(m *Model) { m.highlight = on }
}

// New creates a new TUI Model driving engine.
func New(engine Engine, theme korekta.Theme, opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste or type text to correct..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.SetHeight(inputHeight)
	ta.Focus()

	m := Model{
		Input:     ta,
		engine:    engine,
		styles:    NewStyles(theme),
		highlight: true,
		diffs:     make(map[korekta.ProviderID][]korekta.Span),
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Snapshot returns the state currently displayed.
func (m Model) Snapshot() session.Snapshot { return m.snapshot }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForUpdate(m.engine))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Input.SetWidth(msg.Width)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotMsg:
		m = m.applySnapshot(msg.Snapshot)
		return m, waitForUpdate(m.engine)
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	var b strings.Builder
	b.WriteString(m.renderPanels())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.engine.Cancel()
		return m, tea.Quit

	case tea.KeyCtrlS:
		if _, err := m.engine.Start(m.Input.Value()); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, nil

	case tea.KeyCtrlR:
		if _, err := m.engine.Retry(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, nil

	case tea.KeyEsc:
		m.engine.Cancel()
		return m, nil

	case tea.KeyCtrlT:
		m.engine.SetStyle(nextStyle(m.engine.Style()))
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// applySnapshot replaces the displayed state. Snapshots of a session that
// is no longer current are dropped.
func (m Model) applySnapshot(snap session.Snapshot) Model {
	if snap.SessionID != m.engine.Current() {
		return m
	}
	if snap.SessionID != m.snapshot.SessionID {
		m.diffs = make(map[korekta.ProviderID][]korekta.Span)
	}
	m.snapshot = snap
	if !m.highlight {
		return m
	}
	for _, p := range snap.Providers {
		if _, ok := snap.States[p].(korekta.StateCompleted); !ok {
			continue
		}
		if _, done := m.diffs[p]; done {
			continue
		}
		if spans, ok := m.engine.Diff(p); ok {
			m.diffs[p] = spans
		}
	}
	return m
}

func (m Model) renderPanels() string {
	panelsHeight := m.height - inputHeight - statusHeight - 2
	if panelsHeight < 6 {
		panelsHeight = 6
	}
	rowHeight := panelsHeight / 2
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	p := korekta.Providers()
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(p[0], leftWidth, rowHeight),
		m.panel(p[1], rightWidth, rowHeight))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(p[2], leftWidth, panelsHeight-rowHeight),
		m.panel(p[3], rightWidth, panelsHeight-rowHeight))
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	style := m.styles.Accent.Render(m.engine.Style().Title())
	help := m.styles.Muted.Render("ctrl+s submit · ctrl+r retry · esc cancel · ctrl+t style · ctrl+c quit")
	return style + "  " + help
}

func nextStyle(current korekta.Style) korekta.Style {
	styles := korekta.Styles()
	for i, s := range styles {
		if s == current {
			return styles[(i+1)%len(styles)]
		}
	}
	return styles[0]
}
