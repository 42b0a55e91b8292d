package session

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hrygo/portfolioai/ai/agents/orchestrator"
	"github.com/hrygo/portfolioai/ai/knowledge"
)

// HandlerProvider creates a fresh handler for a workflow.
type HandlerProvider func(workflow string) (Handler, error)

// OrchestratorProvider creates handlers from a registry.
func OrchestratorProvider(reg *orchestrator.Registry) HandlerProvider {
	return func(workflow string) (Handler, error) {
		return reg.New(workflow)
	}
}

// ActiveGauge tracks the number of open sessions.
type ActiveGauge interface {
	SetActiveSessions(count int)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithSessionConfig sets the config of new sessions.
func WithSessionConfig(cfg Config) ManagerOption {
	return func(m *Manager) { m.cfg = cfg }
}

// WithTurnRecorder is attached to every new session.
func WithTurnRecorder(r TurnRecorder) ManagerOption {
	return func(m *Manager) { m.recorder = r }
}

// WithActiveGauge reports the session count after every change.
func WithActiveGauge(g ActiveGauge) ManagerOption {
	return func(m *Manager) { m.gauge = g }
}

// Manager owns the open sessions. Each session gets its own orchestrator;
// the knowledge store is shared read-only.
type Manager struct {
	base     *knowledge.Store
	provider HandlerProvider
	cfg      Config
	recorder TurnRecorder
	gauge    ActiveGauge

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager over the shared store.
func NewManager(base *knowledge.Store, provider HandlerProvider, opts ...ManagerOption) *Manager {
	m := &Manager{
		base:     base,
		provider: provider,
		cfg:      DefaultConfig(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create opens a session in workflow.
func (m *Manager) Create(workflow string) (*Session, error) {
	id := uuid.NewString()
	s, err := New(id, workflow, m.base, func() (Handler, error) { return m.provider(workflow) }, m.cfg)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.recorder = m.recorder

	m.mu.Lock()
	m.sessions[id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.report(n)
	slog.Info("session: created", "session_id", id, "workflow", workflow)
	return s, nil
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Delete closes the session with id.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	if _, ok := m.sessions[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	m.report(n)
	return nil
}

// List returns the open sessions, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ExpireIdle closes every session inactive since before and returns how
// many were closed. Session activity is read outside the manager lock.
func (m *Manager) ExpireIdle(before time.Time) int {
	var idle []string
	for _, s := range m.List() {
		if s.LastActive().Before(before) {
			idle = append(idle, s.ID())
		}
	}
	if len(idle) == 0 {
		return 0
	}

	m.mu.Lock()
	expired := 0
	for _, id := range idle {
		s, ok := m.sessions[id]
		if !ok || !s.LastActive().Before(before) {
			continue
		}
		delete(m.sessions, id)
		expired++
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if expired > 0 {
		m.report(n)
	}
	return expired
}

func (m *Manager) report(n int) {
	if m.gauge != nil {
		m.gauge.SetActiveSessions(n)
	}
}
