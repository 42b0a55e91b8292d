// Package session holds conversations: their turns, their orchestrator and
// any events the user uploaded for them.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/time/rate"

	agent "github.com/hrygo/portfolioai/ai/agents"
	"github.com/hrygo/portfolioai/ai/agents/orchestrator"
	"github.com/hrygo/portfolioai/ai/knowledge"
	"github.com/hrygo/portfolioai/ai/observability/logging"
)

var (
	// ErrEmptyMessage is returned by Send for a blank message.
	ErrEmptyMessage = errors.New("session: empty message")
	// ErrRateLimited is returned by Send when the session exceeds its turn rate.
	ErrRateLimited = errors.New("session: rate limited")
	// ErrNotFound is returned by the manager for an unknown session id.
	ErrNotFound = errors.New("session: not found")
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Trace     []string       `json:"trace,omitempty"`
	Agent     string         `json:"agent,omitempty"`
	AgentID   string         `json:"agent_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Handler answers one turn. *orchestrator.Orchestrator implements it.
type Handler interface {
	Handle(ctx context.Context, in orchestrator.Input) *agent.Result
}

// HandlerFactory creates the handler of a session; it runs again on Clear.
type HandlerFactory func() (Handler, error)

// TurnRecorder is notified after each answered turn.
type TurnRecorder interface {
	RecordChatTurn(workflow string, latency time.Duration, success bool)
}

// Config tunes a session.
type Config struct {
	// HistoryWindow is how many prior turns are sent along with a message.
	HistoryWindow int
	// RateLimit is the sustained number of turns per second; zero disables limiting.
	RateLimit rate.Limit
	// Burst is the number of turns allowed at once.
	Burst int
}

// DefaultConfig returns the default session settings.
func DefaultConfig() Config {
	return Config{HistoryWindow: 10, RateLimit: rate.Every(2 * time.Second), Burst: 5}
}

// Session is one conversation. Turns are processed one at a time; turnMu
// is held across the model call, mu only around state reads and writes.
type Session struct {
	id         string
	workflow   string
	createdAt  time.Time
	cfg        Config
	newHandler HandlerFactory
	base       *knowledge.Store
	limiter    *rate.Limiter
	recorder   TurnRecorder

	turnMu sync.Mutex

	mu         sync.Mutex
	handler    Handler
	turns      []Turn
	uploads    []knowledge.Event
	kb         *knowledge.Store
	lastActive time.Time
}

// New creates a session. base is the shared read-only knowledge store.
func New(id, workflow string, base *knowledge.Store, newHandler HandlerFactory, cfg Config) (*Session, error) {
	h, err := newHandler()
	if err != nil {
		return nil, err
	}
	if base == nil {
		base = knowledge.Empty()
	}
	limit, burst := cfg.RateLimit, cfg.Burst
	if limit == 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	now := time.Now()
	return &Session{
		id:         id,
		workflow:   workflow,
		createdAt:  now,
		cfg:        cfg,
		newHandler: newHandler,
		base:       base,
		kb:         base,
		limiter:    rate.NewLimiter(limit, burst),
		handler:    h,
		lastActive: now,
	}, nil
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Workflow() string     { return s.workflow }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// LastActive is the time of the last turn, clear or upload.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Send processes one user message and returns the assistant turn. Both
// turns are appended to the history.
func (s *Session) Send(ctx context.Context, message string) (Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Turn{}, ErrEmptyMessage
	}
	if !s.limiter.Allow() {
		return Turn{}, ErrRateLimited
	}

	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	ctx = logging.WithSession(ctx, s.id, s.workflow)
	log := logging.FromContext(ctx)
	start := time.Now()

	s.mu.Lock()
	history := s.historyLocked()
	s.turns = append(s.turns, Turn{
		ID:        shortuuid.New(),
		Role:      RoleUser,
		Content:   message,
		CreatedAt: start,
	})
	handler, kb := s.handler, s.kb
	s.lastActive = start
	s.mu.Unlock()

	res := handler.Handle(ctx, orchestrator.Input{
		Message:   message,
		History:   history,
		Knowledge: kb,
	})

	reply := Turn{
		ID:        shortuuid.New(),
		Role:      RoleAssistant,
		Content:   res.Content,
		Trace:     res.Trace,
		Agent:     res.Agent,
		AgentID:   res.AgentID,
		Metadata:  res.Metadata,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.turns = append(s.turns, reply)
	s.lastActive = reply.CreatedAt
	turns := len(s.turns)
	s.mu.Unlock()

	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.RecordChatTurn(s.workflow, elapsed, !res.Failed())
	}
	log.Info("session: turn answered",
		"agent", res.AgentID,
		"failed", res.Failed(),
		"turns", turns,
		"duration_ms", elapsed.Milliseconds(),
	)
	return reply, nil
}

// historyLocked returns the last HistoryWindow turns as agent turns.
func (s *Session) historyLocked() []agent.Turn {
	turns := s.turns
	if w := s.cfg.HistoryWindow; w >= 0 && len(turns) > w {
		turns = turns[len(turns)-w:]
	}
	out := make([]agent.Turn, len(turns))
	for i, t := range turns {
		out[i] = agent.Turn{Role: t.Role, Content: t.Content}
	}
	return out
}

// History returns a copy of all turns.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Turn(nil), s.turns...)
}

// Clear discards the history and starts a fresh orchestrator, which drops
// its memory of the previous answer. Uploaded events are kept.
func (s *Session) Clear() error {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	h, err := s.newHandler()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
	s.turns = nil
	s.lastActive = time.Now()
	return nil
}

// Upload adds events visible to this session only and returns how many
// uploaded events the session now holds.
func (s *Session) Upload(events []knowledge.Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads = append(s.uploads, events...)
	s.kb = s.base.WithSupplementary(s.uploads)
	s.lastActive = time.Now()
	return len(s.uploads)
}

// Knowledge returns the session's view of the knowledge store.
func (s *Session) Knowledge() *knowledge.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kb
}
