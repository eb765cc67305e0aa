package session

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/korekta"
	"github.com/fwojciec/korekta/diff"
)

// Snapshot is a consistent view of the current session for presentation.
type Snapshot struct {
	SessionID uint64
	Text      string
	Providers []korekta.ProviderID // dispatched providers in display order
	States    map[korekta.ProviderID]korekta.RunState
}

// Manager owns the current session. Start, Cancel and Retry may be called
// from any goroutine.
type Manager struct {
	clients map[korekta.ProviderID]korekta.Client
	logger  *slog.Logger
	cache   *diff.Cache
	updates chan struct{}

	current atomic.Uint64 // id of the current session, 0 before the first

	mu       sync.Mutex
	cfg      korekta.Config
	last     uint64
	session  *Session
	lastText string
}

// Option configures a [Manager].
type Option func(*Manager)

// WithLogger sets the logger. Default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithDiffCache sets the cache backing [Manager.Diff].
func WithDiffCache(c *diff.Cache) Option {
	return func(m *Manager) { m.cache = c }
}

// New creates a Manager dispatching to clients. A provider takes part in a
// session when cfg gives it an API key and clients has an entry for it.
func New(clients map[korekta.ProviderID]korekta.Client, cfg korekta.Config, opts ...Option) *Manager {
	m := &Manager{
		clients: clients,
		cfg:     cfg,
		logger:  slog.New(slog.DiscardHandler),
		cache:   diff.NewCache(),
		updates: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(m)
	}
	m.logger = m.logger.With(slog.String("component", "session"))
	return m
}

// Start supersedes the current session with a new one for text and
// dispatches it to every enabled provider.
func (m *Manager) Start(text string) (*Session, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("session: text is empty: %w", korekta.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	providers := m.dispatchable()
	if len(providers) == 0 {
		return nil, fmt.Errorf("session: %w", korekta.ErrNoProviders)
	}

	m.last++
	s := newSession(m.last, text, providers, m.notify)
	prev := m.session
	m.session = s
	m.lastText = text
	m.current.Store(s.ID)

	if prev != nil {
		prev.seal()
	}
	m.cache.Prune(s.ID)

	m.logger.Info("session started",
		slog.Uint64("session_id", s.ID),
		slog.Int("providers", len(providers)),
		slog.String("style", string(m.cfg.Style)))

	s.wg.Add(len(providers))
	for _, p := range providers {
		go m.dispatch(s, p, m.clients[p], m.request(p, text))
	}
	go func() {
		s.wg.Wait()
		close(s.done)
	}()

	m.notify()
	return s, nil
}

// Cancel cancels the current session. Its slots that had not finished
// become Cancelled and stay observable.
func (m *Manager) Cancel() {
	m.mu.Lock()
	s := m.session
	m.mu.Unlock()
	if s == nil {
		return
	}
	s.seal()
	m.logger.Info("session cancelled", slog.Uint64("session_id", s.ID))
}

// Retry starts a new session with the most recently submitted text.
func (m *Manager) Retry() (*Session, error) {
	m.mu.Lock()
	text := m.lastText
	m.mu.Unlock()
	if text == "" {
		return nil, fmt.Errorf("session: nothing to retry: %w", korekta.ErrValidation)
	}
	return m.Start(text)
}

// SetStyle changes the correction style used by subsequent sessions.
func (m *Manager) SetStyle(style korekta.Style) {
	m.mu.Lock()
	m.cfg.Style = style
	m.mu.Unlock()
	m.notify()
}

// Style returns the correction style used for new sessions.
func (m *Manager) Style() korekta.Style {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.Style
}

// Current returns the id of the current session, or 0 before the first.
func (m *Manager) Current() uint64 {
	return m.current.Load()
}

// Session returns the current session, or nil before the first.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Snapshot returns the state of every slot of the current session.
func (m *Manager) Snapshot() Snapshot {
	s := m.Session()
	if s == nil {
		return Snapshot{}
	}
	return Snapshot{
		SessionID: s.ID,
		Text:      s.Text,
		Providers: s.Providers(),
		States:    s.States(),
	}
}

// Diff returns the word diff between the current session's text and p's
// completed correction. ok is false unless p has completed.
func (m *Manager) Diff(p korekta.ProviderID) ([]korekta.Span, bool) {
	s := m.Session()
	if s == nil {
		return nil, false
	}
	st, ok := s.State(p)
	if !ok {
		return nil, false
	}
	done, ok := st.(korekta.StateCompleted)
	if !ok {
		return nil, false
	}
	return m.cache.GetOrCompute(s.ID, p, s.Text, done.Text), true
}

// Updates delivers a signal after any state change. Signals coalesce: a
// receiver that falls behind sees one pending signal, then reads a Snapshot.
func (m *Manager) Updates() <-chan struct{} {
	return m.updates
}

func (m *Manager) notify() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

// dispatchable returns the enabled providers that have a client.
// Caller must hold m.mu.
func (m *Manager) dispatchable() []korekta.ProviderID {
	var out []korekta.ProviderID
	for _, p := range m.cfg.Enabled() {
		if m.clients[p] != nil {
			out = append(out, p)
		}
	}
	return out
}

// request builds p's request from the configuration. Caller must hold m.mu.
func (m *Manager) request(p korekta.ProviderID, text string) korekta.Request {
	pc := m.cfg.Provider(p)
	return korekta.Request{
		Model:        pc.Model,
		APIKey:       pc.APIKey,
		SystemPrompt: m.cfg.Style.SystemPrompt(),
		Instruction:  m.cfg.Style.Instruction(),
		Text:         text,
		Stream:       m.cfg.Streaming,
	}
}
