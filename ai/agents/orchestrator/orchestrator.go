// Package orchestrator routes user requests to specialists.
//
// Each turn goes through three steps:
//
//	message
//	   ↓
//	┌──────────────────────┐
//	│ follow-up shortcuts  │ ← review / slides on the previous answer
//	└──────────┬───────────┘
//	           ↓
//	┌──────────────────────┐
//	│ keyword intent rules │ ← routing.RuleSet of the workflow
//	└──────────┬───────────┘
//	           ↓
//	  specialist or guidance
//
// An Orchestrator keeps the last specialist answer so that the shortcuts can
// act on it. It belongs to one conversation; create a new one to reset.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	agent "github.com/hrygo/portfolioai/ai/agents"
	"github.com/hrygo/portfolioai/ai/routing"
)

// Trace lines written by the orchestrator.
const (
	traceAnalyzing = "Analyzing request to determine appropriate agent..."
	traceReview    = "Request relates to reviewing previous content"
	traceSlides    = "Request relates to formatting content for presentation"
	traceNoAgent   = "No specific agent identified, providing general guidance"
)

// MetaTypeGuidance marks guidance answers in Result metadata.
const MetaTypeGuidance = "general_guidance"

// Dependencies are the collaborators of an Orchestrator.
type Dependencies struct {
	// Specialists by name. Every name in the workflow dispatch table must be present.
	Specialists map[string]agent.Invoker

	// Critic and Formatter serve the review and slides shortcuts. They
	// default to the critique and slides specialists; when neither is
	// available the shortcut is disabled.
	Critic    agent.Invoker
	Formatter agent.Invoker

	Recorder Recorder
}

// Orchestrator is the intent router of one conversation.
type Orchestrator struct {
	wf          Workflow
	matcher     *routing.RuleMatcher
	specialists map[routing.Intent]agent.Invoker
	critic      agent.Invoker
	formatter   agent.Invoker
	recorder    Recorder

	mu         sync.Mutex
	lastResult *agent.Result
	lastAgent  string
}

// New creates an orchestrator for wf.
func New(wf Workflow, deps Dependencies) (*Orchestrator, error) {
	if err := wf.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("workflow %s: %w", wf.ID, err)
	}

	specialists := make(map[routing.Intent]agent.Invoker, len(wf.Dispatch))
	for intent, name := range wf.Dispatch {
		inv, ok := deps.Specialists[name]
		if !ok || inv == nil {
			return nil, fmt.Errorf("workflow %s: no specialist %q for intent %s", wf.ID, name, intent)
		}
		specialists[intent] = inv
	}

	o := &Orchestrator{
		wf:          wf,
		matcher:     routing.NewRuleMatcher(wf.Rules),
		specialists: specialists,
		critic:      deps.Critic,
		formatter:   deps.Formatter,
		recorder:    deps.Recorder,
	}
	if o.critic == nil {
		o.critic = deps.Specialists[agent.NameCritique]
	}
	if o.formatter == nil {
		o.formatter = deps.Specialists[agent.NameSlides]
	}
	return o, nil
}

// Workflow returns the workflow the orchestrator routes for.
func (o *Orchestrator) Workflow() Workflow { return o.wf }

// Route decides where message goes without calling any specialist.
// The result depends only on message, the rules and whether a previous
// answer exists.
func (o *Orchestrator) Route(message string) Decision {
	o.mu.Lock()
	hasLast := o.lastResult != nil
	o.mu.Unlock()
	return o.route(message, hasLast)
}

func (o *Orchestrator) route(message string, hasLast bool) Decision {
	if hasLast && o.critic != nil && o.matcher.WantsReview(message) {
		return Decision{Intent: routing.IntentReviewPrevious, Confidence: 1, Shortcut: true, Agent: o.critic.Name()}
	}
	if hasLast && o.formatter != nil && o.matcher.WantsSlides(message) {
		return Decision{Intent: routing.IntentFormatSlides, Confidence: 1, Shortcut: true, Agent: o.formatter.Name()}
	}

	c := o.matcher.Classify(message)
	d := Decision{Intent: c.Intent, Confidence: c.Confidence}
	if inv, ok := o.specialists[c.Intent]; ok {
		d.Agent = inv.Name()
	}
	return d
}

// Handle answers one user turn. It never fails: specialist errors arrive
// as failed Results and unmatched requests get the workflow guidance.
// The orchestrator trace precedes the specialist trace in the result.
func (o *Orchestrator) Handle(ctx context.Context, in Input) *agent.Result {
	start := time.Now()
	routeID := shortuuid.New()

	o.mu.Lock()
	last, lastAgent := o.lastResult, o.lastAgent
	o.mu.Unlock()

	trace := &agent.Trace{}
	trace.Add(traceAnalyzing)

	d := o.route(in.Message, last != nil)
	if o.recorder != nil {
		o.recorder.ObserveRoute(o.wf.ID, string(d.Intent))
	}
	slog.Info("orchestrator: request routed",
		"route_id", routeID,
		"workflow", o.wf.ID,
		"intent", d.Intent,
		"confidence", d.Confidence,
		"agent", d.Agent,
		"shortcut", d.Shortcut,
	)

	var (
		res *agent.Result
		inv agent.Invoker
	)
	switch d.Intent {
	case routing.IntentReviewPrevious:
		inv = o.critic
		trace.Add(traceReview)
		trace.Add("Routing to: %s", inv.DisplayName())
		res = agent.Review(ctx, inv, agent.ReviewRequest{
			Content:         last.Content,
			SourceAgent:     lastAgent,
			OriginalRequest: in.Message,
		})
	case routing.IntentFormatSlides:
		inv = o.formatter
		trace.Add(traceSlides)
		trace.Add("Routing to: %s", inv.DisplayName())
		res = agent.FormatForSlides(ctx, inv, last.Content, agent.SlideOptions{})
	default:
		trace.Add("Intent classified: %s (confidence: %.0f%%)", d.Intent, d.Confidence*100)
		inv = o.specialists[d.Intent]
		if inv == nil {
			trace.Add(traceNoAgent)
			return o.guidance(trace)
		}
		trace.Add("Routing to: %s", inv.DisplayName())
		res = inv.Invoke(ctx, agent.Request{
			Message:   in.Message,
			History:   in.History,
			Knowledge: in.Knowledge,
		})
	}

	if !res.Failed() {
		o.mu.Lock()
		o.lastResult = res.Clone()
		o.lastAgent = inv.DisplayName()
		o.mu.Unlock()
	}

	res.PrependTrace(trace.Lines())
	slog.Debug("orchestrator: turn completed",
		"route_id", routeID,
		"agent", inv.Name(),
		"failed", res.Failed(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res
}

func (o *Orchestrator) guidance(trace *agent.Trace) *agent.Result {
	return &agent.Result{
		Content:  o.wf.Guidance,
		Trace:    trace.Lines(),
		Metadata: map[string]any{agent.MetaType: MetaTypeGuidance},
		Agent:    o.wf.Orchestrator,
		AgentID:  o.wf.ID,
	}
}

// LastResult returns a copy of the last specialist answer and the display
// name of its agent, or nil when there is none yet.
func (o *Orchestrator) LastResult() (*agent.Result, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastResult == nil {
		return nil, ""
	}
	return o.lastResult.Clone(), o.lastAgent
}

// AvailableAgents lists the specialists the workflow dispatches to.
func (o *Orchestrator) AvailableAgents() []AgentInfo {
	var out []AgentInfo
	for _, name := range o.wf.specialistNames() {
		for _, inv := range o.specialists {
			if inv.Name() == name {
				out = append(out, AgentInfo{Name: name, DisplayName: inv.DisplayName(), Description: inv.Description()})
				break
			}
		}
	}
	return out
}
