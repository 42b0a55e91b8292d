package orchestrator

import (
	"fmt"
	"maps"

	agent "github.com/hrygo/portfolioai/ai/agents"
	"github.com/hrygo/portfolioai/ai/core/llm"
	"github.com/hrygo/portfolioai/ai/knowledge"
)

// Registry owns the specialists shared by all conversations and creates
// per-conversation orchestrators over them. Specialists are stateless, so
// one set serves every session.
type Registry struct {
	specialists map[string]agent.Invoker
	workflows   map[string]Workflow
	order       []string
	recorder    Recorder
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	workflows []Workflow
	observer  agent.Observer
	recorder  Recorder
	configs   []agent.Config
}

// WithWorkflows replaces the built-in workflows, e.g. with LoadWorkflows output.
func WithWorkflows(wfs []Workflow) RegistryOption {
	return func(c *registryConfig) { c.workflows = wfs }
}

// WithInvocationObserver is passed to every specialist.
func WithInvocationObserver(o agent.Observer) RegistryOption {
	return func(c *registryConfig) { c.observer = o }
}

// WithRouteRecorder is passed to every orchestrator.
func WithRouteRecorder(r Recorder) RegistryOption {
	return func(c *registryConfig) { c.recorder = r }
}

// WithSpecialistConfigs replaces the built-in specialist catalog.
func WithSpecialistConfigs(cfgs []agent.Config) RegistryOption {
	return func(c *registryConfig) { c.configs = cfgs }
}

// NewRegistry builds every specialist up front so that a missing model or
// a broken config fails at startup.
func NewRegistry(svc llm.Service, kb *knowledge.Store, opts ...RegistryOption) (*Registry, error) {
	cfg := &registryConfig{workflows: Workflows(), configs: agent.Catalog()}
	for _, opt := range opts {
		opt(cfg)
	}

	specialistOpts := []agent.Option{agent.WithKnowledge(kb)}
	if cfg.observer != nil {
		specialistOpts = append(specialistOpts, agent.WithObserver(cfg.observer))
	}

	specialists := make(map[string]agent.Invoker, len(cfg.configs))
	for _, c := range cfg.configs {
		s, err := agent.New(c, svc, specialistOpts...)
		if err != nil {
			return nil, fmt.Errorf("build specialist: %w", err)
		}
		specialists[c.Name] = s
	}
	return newRegistry(specialists, cfg.workflows, cfg.recorder)
}

func newRegistry(specialists map[string]agent.Invoker, wfs []Workflow, rec Recorder) (*Registry, error) {
	r := &Registry{
		specialists: specialists,
		workflows:   make(map[string]Workflow, len(wfs)),
		recorder:    rec,
	}
	for _, wf := range wfs {
		if _, dup := r.workflows[wf.ID]; dup {
			return nil, fmt.Errorf("duplicate workflow %q", wf.ID)
		}
		for intent, name := range wf.Dispatch {
			if _, ok := specialists[name]; !ok {
				return nil, fmt.Errorf("workflow %s: intent %s dispatches to unknown specialist %q", wf.ID, intent, name)
			}
		}
		r.workflows[wf.ID] = wf
		r.order = append(r.order, wf.ID)
	}
	return r, nil
}

// New creates a fresh orchestrator for one conversation in workflowID.
func (r *Registry) New(workflowID string) (*Orchestrator, error) {
	wf, ok := r.workflows[workflowID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkflow, workflowID)
	}
	return New(wf, Dependencies{
		Specialists: r.specialists,
		Recorder:    r.recorder,
	})
}

// Workflow returns the workflow with the given id.
func (r *Registry) Workflow(id string) (Workflow, bool) {
	wf, ok := r.workflows[id]
	return wf, ok
}

// Workflows returns the registered workflows in registration order.
func (r *Registry) Workflows() []Workflow {
	out := make([]Workflow, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.workflows[id])
	}
	return out
}

// Specialist returns the named specialist.
func (r *Registry) Specialist(name string) (agent.Invoker, bool) {
	inv, ok := r.specialists[name]
	return inv, ok
}

// Specialists returns all specialists by name.
func (r *Registry) Specialists() map[string]agent.Invoker {
	return maps.Clone(r.specialists)
}

// AgentsFor lists the specialists a workflow dispatches to.
func (r *Registry) AgentsFor(workflowID string) []AgentInfo {
	wf, ok := r.workflows[workflowID]
	if !ok {
		return nil
	}
	out := make([]AgentInfo, 0, len(wf.Dispatch))
	for _, name := range wf.specialistNames() {
		inv := r.specialists[name]
		out = append(out, AgentInfo{Name: name, DisplayName: inv.DisplayName(), Description: inv.Description()})
	}
	return out
}
