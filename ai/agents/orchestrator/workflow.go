package orchestrator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	agent "github.com/hrygo/portfolioai/ai/agents"
	"github.com/hrygo/portfolioai/ai/routing"
)

// Workflow ids.
const (
	WorkflowEvents       = "events"
	WorkflowCelebrations = "celebrations"
)

// Workflow is one routing domain: its rules, dispatch table and help text.
type Workflow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// Orchestrator is the display name used on guidance answers.
	Orchestrator string `json:"orchestrator"`

	Rules routing.RuleSet `json:"-"`

	// Dispatch maps intents to specialist names.
	Dispatch map[routing.Intent]string `json:"-"`

	Guidance     string   `json:"-"`
	QuickActions []string `json:"quick_actions"`
}

// EventsWorkflow is the events planning oversight workflow.
func EventsWorkflow() Workflow {
	return Workflow{
		ID:           WorkflowEvents,
		Name:         "National Events Planning Oversight",
		Description:  "Analyze event submissions, chase missing information and report to the oversight committee",
		Orchestrator: "Coordination Agent",
		Rules:        routing.EventsRules(),
		Dispatch: map[routing.Intent]string{
			routing.IntentDataAnalysis: agent.NameDataAnalysis,
			routing.IntentFollowUp:     agent.NameFollowUp,
			routing.IntentReporting:    agent.NameReporting,
			routing.IntentQualityCheck: agent.NameQualityCheck,
		},
		Guidance: eventsGuidance,
		QuickActions: []string{
			"Analyze the event data we received",
			"What information is missing?",
			"Prepare a committee report",
			"Check data quality",
		},
	}
}

// CelebrationsWorkflow is the celebration strategic planning workflow.
func CelebrationsWorkflow() Workflow {
	return Workflow{
		ID:           WorkflowCelebrations,
		Name:         "Celebration Strategic Planning",
		Description:  "Benchmark international precedents, define KPIs and prepare leadership material",
		Orchestrator: "Strategic Planning Agent",
		Rules:        routing.CelebrationsRules(),
		Dispatch: map[routing.Intent]string{
			routing.IntentBenchmarking: agent.NameBenchmarking,
			routing.IntentKPI:          agent.NameKPI,
			routing.IntentCritique:     agent.NameCritique,
			routing.IntentSlide:        agent.NameSlides,
		},
		Guidance: celebrationsGuidance,
		QuickActions: []string{
			"I need benchmarking on St. Petersburg",
			"What KPIs do you recommend?",
			"Review the previous analysis",
			"Convert to presentation slides",
		},
	}
}

// Workflows returns the built-in workflows.
func Workflows() []Workflow {
	return []Workflow{EventsWorkflow(), CelebrationsWorkflow()}
}

// ErrUnknownWorkflow is returned for a workflow id that is not defined.
var ErrUnknownWorkflow = errors.New("orchestrator: unknown workflow")

// LoadWorkflows returns the built-in workflows, replacing a workflow's rule
// table with <dir>/<id>.yaml when that file exists. An empty dir keeps the
// built-in tables.
func LoadWorkflows(dir string) ([]Workflow, error) {
	wfs := Workflows()
	if dir == "" {
		return wfs, nil
	}
	for i, wf := range wfs {
		path := filepath.Join(dir, wf.ID+".yaml")
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		rs, err := routing.LoadRuleSet(path)
		if err != nil {
			return nil, fmt.Errorf("workflow %s: %w", wf.ID, err)
		}
		if rs.Workflow != "" && rs.Workflow != wf.ID {
			return nil, fmt.Errorf("workflow %s: rules file declares workflow %q", wf.ID, rs.Workflow)
		}
		for _, in := range rs.Intents() {
			if _, ok := wf.Dispatch[in]; !ok {
				slog.Warn("orchestrator: intent has no specialist and will fall back to guidance",
					"workflow", wf.ID, "intent", in)
			}
		}
		wfs[i].Rules = rs
		slog.Info("orchestrator: loaded routing rules", "workflow", wf.ID, "path", path, "intents", len(rs.Rules))
	}
	return wfs, nil
}

// specialistNames lists the specialists a workflow dispatches to, in rule order.
func (w Workflow) specialistNames() []string {
	var names []string
	for _, in := range w.Rules.Intents() {
		if n, ok := w.Dispatch[in]; ok && !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	for _, n := range slices.Sorted(maps.Values(w.Dispatch)) {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}
