package orchestrator

import (
	agent "github.com/hrygo/portfolioai/ai/agents"
	"github.com/hrygo/portfolioai/ai/knowledge"
	"github.com/hrygo/portfolioai/ai/routing"
)

// Decision is the routing outcome for one message.
type Decision struct {
	Intent     routing.Intent `json:"intent"`
	Confidence float64        `json:"confidence"`

	// Shortcut is set when the message acts on the previous answer.
	Shortcut bool `json:"shortcut,omitempty"`

	// Agent is the name of the specialist to call, empty for guidance.
	Agent string `json:"agent,omitempty"`
}

// Guidance reports whether the decision falls back to the help text.
func (d Decision) Guidance() bool { return d.Agent == "" }

// Input is one user turn handed to the orchestrator.
type Input struct {
	Message string
	History []agent.Turn

	// Knowledge overrides the specialists' default store for this turn.
	Knowledge *knowledge.Store
}

// AgentInfo describes a dispatchable specialist.
type AgentInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// Recorder is notified of every routing decision.
type Recorder interface {
	ObserveRoute(workflow, intent string)
}
