package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/hrygo/portfolioai/ai/core/llm"
	"github.com/hrygo/portfolioai/ai/internal/strutil"
	"github.com/hrygo/portfolioai/ai/knowledge"
)

// ErrNoModel is returned when a specialist is built without an LLM service.
var ErrNoModel = errors.New("agent: no LLM service configured")

// DefaultMaxTokens bounds a specialist answer when its config leaves it unset.
const DefaultMaxTokens = 4096

// Preparation is what a PrepareFunc contributes to the model call.
type Preparation struct {
	// Message replaces the user message when non-empty.
	Message string
	// Context is merged over the request context.
	Context map[string]string
	// Metadata is copied into the result metadata.
	Metadata map[string]any
}

// PrepareFunc derives prompt material for one request, typically from the
// knowledge store. It may add lines to trace.
type PrepareFunc func(ctx context.Context, kb *knowledge.Store, req Request, trace *Trace) (Preparation, error)

// Config parameterizes a Specialist.
type Config struct {
	Name         string  `yaml:"name"`
	DisplayName  string  `yaml:"display_name"`
	Description  string  `yaml:"description"`
	SystemPrompt string  `yaml:"system_prompt"`
	Temperature  float32 `yaml:"temperature"`
	MaxTokens    int     `yaml:"max_tokens"`

	// CallNote and DoneNote are the trace lines around the model call.
	CallNote string `yaml:"call_note"`
	DoneNote string `yaml:"done_note"`

	// Metadata is added to every successful result.
	Metadata map[string]any `yaml:"-"`

	Prepare PrepareFunc `yaml:"-"`
}

// Observer receives one event per model call.
type Observer interface {
	ObserveInvocation(agent string, d time.Duration, stats *llm.LLMCallStats, err error)
}

// Option configures a Specialist.
type Option func(*Specialist)

// WithKnowledge sets the default store used when a request carries none.
func WithKnowledge(kb *knowledge.Store) Option {
	return func(s *Specialist) { s.kb = kb }
}

// WithObserver attaches a call observer.
func WithObserver(o Observer) Option {
	return func(s *Specialist) { s.observer = o }
}

// Specialist answers requests with a single LLM call under a fixed role.
// It keeps no per-call state and is safe for concurrent use.
type Specialist struct {
	cfg      Config
	llm      llm.Service
	kb       *knowledge.Store
	observer Observer
}

// New builds a specialist. A missing service or an incomplete config is
// reported here rather than on first use.
func New(cfg Config, svc llm.Service, opts ...Option) (*Specialist, error) {
	if svc == nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, ErrNoModel)
	}
	if cfg.Name == "" {
		return nil, errors.New("agent: config without name")
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		return nil, fmt.Errorf("agent %s: empty system prompt", cfg.Name)
	}
	if cfg.DisplayName == "" {
		cfg.DisplayName = cfg.Name
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.CallNote == "" {
		cfg.CallNote = "Calling language model..."
	}
	if cfg.DoneNote == "" {
		cfg.DoneNote = "Response received successfully"
	}

	s := &Specialist{cfg: cfg, llm: svc}
	for _, opt := range opts {
		opt(s)
	}
	if s.kb == nil {
		s.kb = knowledge.Empty()
	}
	return s, nil
}

func (s *Specialist) Name() string        { return s.cfg.Name }
func (s *Specialist) DisplayName() string { return s.cfg.DisplayName }
func (s *Specialist) Description() string { return s.cfg.Description }

// Config returns the specialist configuration.
func (s *Specialist) Config() Config { return s.cfg }

// Invoke answers req. It never fails: model and preparation errors come
// back as a Result whose metadata holds the error text.
func (s *Specialist) Invoke(ctx context.Context, req Request) (res *Result) {
	start := time.Now()
	trace := &Trace{}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("agent: invocation panicked", "agent", s.cfg.Name, "panic", r)
			res = s.failure(trace, fmt.Errorf("internal error: %v", r), start)
		}
	}()

	trace.Add("Received request: %s", strutil.Truncate(req.Message, 100))

	kb := req.Knowledge
	if kb == nil {
		kb = s.kb
	}

	message := req.Message
	reqContext := maps.Clone(req.Context)
	meta := maps.Clone(s.cfg.Metadata)
	if meta == nil {
		meta = map[string]any{}
	}

	if s.cfg.Prepare != nil && !req.Direct {
		prep, err := s.cfg.Prepare(ctx, kb, req, trace)
		if err != nil {
			return s.failure(trace, err, start)
		}
		if prep.Message != "" {
			message = prep.Message
		}
		if len(prep.Context) > 0 {
			if reqContext == nil {
				reqContext = map[string]string{}
			}
			maps.Copy(reqContext, prep.Context)
		}
		maps.Copy(meta, prep.Metadata)
	}

	messages := BuildMessages(s.cfg.SystemPrompt, message, reqContext, req.History)
	trace.Add("Messages prepared for model")
	trace.Add(s.cfg.CallNote)

	content, stats, err := s.llm.Chat(ctx, messages,
		llm.WithTemperature(s.cfg.Temperature),
		llm.WithMaxTokens(s.cfg.MaxTokens),
	)
	if err != nil {
		return s.failure(trace, err, start)
	}
	trace.Add(s.cfg.DoneNote)

	elapsed := time.Since(start)
	meta[MetaModel] = s.llm.Model()
	meta[MetaDurationMs] = elapsed.Milliseconds()
	if stats != nil {
		if stats.Model != "" {
			meta[MetaModel] = stats.Model
		}
		meta[MetaInputTokens] = stats.PromptTokens
		meta[MetaOutputTokens] = stats.CompletionTokens
		meta[MetaStopReason] = stats.FinishReason
	}

	slog.Debug("agent: invocation completed",
		"agent", s.cfg.Name,
		"model", meta[MetaModel],
		"input_tokens", meta[MetaInputTokens],
		"output_tokens", meta[MetaOutputTokens],
		"duration_ms", elapsed.Milliseconds(),
	)
	s.observe(elapsed, stats, nil)

	return &Result{
		Content:  content,
		Trace:    trace.Lines(),
		Metadata: meta,
		Agent:    s.cfg.DisplayName,
		AgentID:  s.cfg.Name,
	}
}

func (s *Specialist) failure(trace *Trace, err error, start time.Time) *Result {
	trace.Add("Error occurred: %v", err)
	slog.Error("agent: invocation failed", "agent", s.cfg.Name, "error", err)
	s.observe(time.Since(start), nil, err)
	return &Result{
		Content:  fmt.Sprintf("Sorry, an error occurred while processing your request: %v", err),
		Trace:    trace.Lines(),
		Metadata: map[string]any{MetaError: err.Error()},
		Agent:    s.cfg.DisplayName,
		AgentID:  s.cfg.Name,
	}
}

func (s *Specialist) observe(d time.Duration, stats *llm.LLMCallStats, err error) {
	if s.observer != nil {
		s.observer.ObserveInvocation(s.cfg.Name, d, stats, err)
	}
}

// BuildMessages assembles system prompt, history and the current turn.
// Context entries are rendered in key order above the request text.
func BuildMessages(systemPrompt, message string, reqContext map[string]string, history []Turn) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.SystemPrompt(systemPrompt))
	for _, t := range history {
		if t.Role == "assistant" {
			messages = append(messages, llm.AssistantMessage(t.Content))
		} else {
			messages = append(messages, llm.UserMessage(t.Content))
		}
	}
	return append(messages, llm.UserMessage(RenderContext(message, reqContext)))
}

// RenderContext merges a context map into the request text.
func RenderContext(message string, reqContext map[string]string) string {
	if len(reqContext) == 0 {
		return message
	}
	var b strings.Builder
	b.WriteString("Context:\n")
	for _, k := range slices.Sorted(maps.Keys(reqContext)) {
		fmt.Fprintf(&b, "%s: %s\n", k, reqContext[k])
	}
	b.WriteString("\nRequest:\n")
	b.WriteString(message)
	return b.String()
}
