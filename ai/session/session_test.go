package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	agent "github.com/hrygo/portfolioai/ai/agents"
	"github.com/hrygo/portfolioai/ai/agents/orchestrator"
	"github.com/hrygo/portfolioai/ai/knowledge"
)

// countingHandler answers with the number of the call and remembers inputs.
type countingHandler struct {
	mu     sync.Mutex
	inputs []orchestrator.Input
}

func (h *countingHandler) Handle(_ context.Context, in orchestrator.Input) *agent.Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inputs = append(h.inputs, in)
	return &agent.Result{
		Content:  fmt.Sprintf("answer %d", len(h.inputs)),
		Trace:    []string{"routed"},
		Metadata: map[string]any{},
		Agent:    "Stub Agent",
		AgentID:  "stub",
	}
}

type turnLog struct {
	mu      sync.Mutex
	success []bool
}

func (l *turnLog) RecordChatTurn(_ string, _ time.Duration, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.success = append(l.success, ok)
}

func newTestSession(t *testing.T, cfg Config) (*Session, *[]*countingHandler) {
	t.Helper()
	var handlers []*countingHandler
	s, err := New("s1", "events", knowledge.Empty(), func() (Handler, error) {
		h := &countingHandler{}
		handlers = append(handlers, h)
		return h, nil
	}, cfg)
	require.NoError(t, err)
	return s, &handlers
}

func TestSend_AppendsTurns(t *testing.T) {
	s, handlers := newTestSession(t, Config{HistoryWindow: 10})
	rec := &turnLog{}
	s.recorder = rec

	reply, err := s.Send(context.Background(), "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, "answer 1", reply.Content)
	assert.Equal(t, "Stub Agent", reply.Agent)
	assert.NotEmpty(t, reply.ID)

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, Turn{ID: history[0].ID, Role: RoleUser, Content: "hello", CreatedAt: history[0].CreatedAt}, history[0])
	assert.NotEqual(t, history[0].ID, history[1].ID)

	_, err = s.Send(context.Background(), "again")
	require.NoError(t, err)

	h := (*handlers)[0]
	require.Len(t, h.inputs, 2)
	assert.Empty(t, h.inputs[0].History)
	assert.Equal(t, []agent.Turn{{Role: "user", Content: "hello"}, {Role: "assistant", Content: "answer 1"}}, h.inputs[1].History)
	assert.Equal(t, []bool{true, true}, rec.success)
}

func TestSend_HistoryWindow(t *testing.T) {
	s, handlers := newTestSession(t, Config{HistoryWindow: 2})
	for i := range 3 {
		_, err := s.Send(context.Background(), fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}
	h := (*handlers)[0]
	assert.Equal(t, []agent.Turn{{Role: "user", Content: "m1"}, {Role: "assistant", Content: "answer 2"}}, h.inputs[2].History)
}

func TestSend_EmptyMessage(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	_, err := s.Send(context.Background(), " \n ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, s.History())
}

func TestSend_RateLimited(t *testing.T) {
	s, _ := newTestSession(t, Config{RateLimit: rate.Every(time.Hour), Burst: 2})

	for range 2 {
		_, err := s.Send(context.Background(), "hi")
		require.NoError(t, err)
	}
	_, err := s.Send(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, s.History(), 4)
}

func TestClear_RecreatesHandler(t *testing.T) {
	s, handlers := newTestSession(t, Config{HistoryWindow: 10})
	_, err := s.Send(context.Background(), "hi")
	require.NoError(t, err)
	s.Upload([]knowledge.Event{{Name: "Uploaded"}})

	require.NoError(t, s.Clear())
	assert.Empty(t, s.History())
	require.Len(t, *handlers, 2)

	reply, err := s.Send(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, "answer 1", reply.Content)
	assert.Len(t, s.Knowledge().AllEvents(), 1)
}

func TestClear_FactoryError(t *testing.T) {
	calls := 0
	s, err := New("s", "events", nil, func() (Handler, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("no model")
		}
		return &countingHandler{}, nil
	}, Config{})
	require.NoError(t, err)
	assert.Error(t, s.Clear())
}

func TestUpload_IsSessionScoped(t *testing.T) {
	base := knowledge.NewStore(knowledge.Dataset{Events: []knowledge.Event{{Name: "Base", City: "Riyadh"}}})
	var h *countingHandler
	s, err := New("s", "events", base, func() (Handler, error) {
		h = &countingHandler{}
		return h, nil
	}, Config{})
	require.NoError(t, err)

	assert.Equal(t, 1, s.Upload([]knowledge.Event{{Name: "Extra", City: "Abha"}}))
	assert.Equal(t, 2, s.Upload([]knowledge.Event{{Name: "More", City: "Abha"}}))

	_, err = s.Send(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Len(t, h.inputs[0].Knowledge.AllEvents(), 3)
	assert.Len(t, base.AllEvents(), 1)
}

func TestSend_ConcurrentTurnsAreSerialized(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Send(context.Background(), "hi")
		}()
	}
	wg.Wait()

	history := s.History()
	require.Len(t, history, 20)
	for i := 0; i < len(history); i += 2 {
		assert.Equal(t, RoleUser, history[i].Role)
		assert.Equal(t, RoleAssistant, history[i+1].Role)
	}
}
