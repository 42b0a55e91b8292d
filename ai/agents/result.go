// Package agent implements the LLM-backed specialists that answer routed
// requests, plus the knowledge-derived context each of them prepares.
package agent

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/hrygo/portfolioai/ai/knowledge"
)

// Metadata keys shared by every Result.
const (
	MetaModel        = "model"
	MetaInputTokens  = "input_tokens"
	MetaOutputTokens = "output_tokens"
	MetaStopReason   = "stop_reason"
	MetaDurationMs   = "duration_ms"
	MetaError        = "error"
	MetaType         = "type"
)

// Turn is one prior message handed to a specialist for continuity.
type Turn struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

// Request is the input of one specialist invocation.
type Request struct {
	Message string
	Context map[string]string
	History []Turn

	// Knowledge replaces the specialist's own store for this call, e.g. a
	// session view that includes uploaded events.
	Knowledge *knowledge.Store

	// Direct sends Message as-is, skipping the specialist's preparation step.
	Direct bool
}

// Result is the structured output of one invocation.
type Result struct {
	Content  string         `json:"content"`
	Trace    []string       `json:"trace,omitempty"`
	Metadata map[string]any `json:"metadata"`
	Agent    string         `json:"agent"`
	AgentID  string         `json:"agent_id"`
}

// Failed reports whether the result carries a contained error.
func (r *Result) Failed() bool {
	_, ok := r.Metadata[MetaError]
	return ok
}

// TraceText renders the trace as a bulleted list; empty lines separate sections.
func (r *Result) TraceText() string {
	lines := make([]string, len(r.Trace))
	for i, l := range r.Trace {
		if l != "" {
			lines[i] = "- " + l
		}
	}
	return strings.Join(lines, "\n")
}

// PrependTrace puts lines before the existing trace, separated by a blank line.
func (r *Result) PrependTrace(lines []string) {
	if len(lines) == 0 {
		return
	}
	merged := make([]string, 0, len(lines)+1+len(r.Trace))
	merged = append(merged, lines...)
	if len(r.Trace) > 0 {
		merged = append(merged, "")
		merged = append(merged, r.Trace...)
	}
	r.Trace = merged
}

// Clone returns a copy that shares no slices or maps with r.
func (r *Result) Clone() *Result {
	out := *r
	out.Trace = append([]string(nil), r.Trace...)
	out.Metadata = maps.Clone(r.Metadata)
	return &out
}

// Trace accumulates human-readable steps of a single call.
type Trace struct {
	lines []string
}

// Add appends one formatted line.
func (t *Trace) Add(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the recorded lines.
func (t *Trace) Lines() []string {
	return append([]string(nil), t.lines...)
}

// Invoker is anything that can answer a Request. Implementations never
// return an error: failures are encoded in the Result.
type Invoker interface {
	Invoke(ctx context.Context, req Request) *Result
	Name() string
	DisplayName() string
	Description() string
}
