// Package mcp serves the knowledge store and the orchestrators as MCP tools
// over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	agent "github.com/hrygo/portfolioai/ai/agents"
	"github.com/hrygo/portfolioai/ai/knowledge"
	"github.com/hrygo/portfolioai/ai/session"
)

var errNoModel = errors.New("no language model is configured")

// SpecialistLookup finds a specialist by name; *orchestrator.Registry's
// Specialist method satisfies it.
type SpecialistLookup func(name string) (agent.Invoker, bool)

// Option configures a Server.
type Option func(*Server)

// WithSpecialists enables the tools that call one specialist directly.
func WithSpecialists(lookup SpecialistLookup) Option {
	return func(s *Server) { s.specialists = lookup }
}

type Server struct {
	kb              *knowledge.Store
	provider        session.HandlerProvider
	specialists     SpecialistLookup
	defaultWorkflow string
	mcp             *sdk.Server

	// One orchestrator per workflow, kept across calls so that "review
	// that" refers to the previous ask.
	mu       sync.Mutex
	handlers map[string]session.Handler
}

// NewServer registers every tool. provider may be nil, in which case the
// ask tool reports that no model is configured; the same holds for the
// review and follow-up tools without WithSpecialists.
func NewServer(kb *knowledge.Store, provider session.HandlerProvider, defaultWorkflow, version string, opts ...Option) *Server {
	if kb == nil {
		kb = knowledge.Empty()
	}
	s := &Server{
		kb:              kb,
		provider:        provider,
		defaultWorkflow: defaultWorkflow,
		handlers:        make(map[string]session.Handler),
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "portfolioai",
			Version: version,
		}, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

func (s *Server) specialist(name string) (agent.Invoker, error) {
	if s.specialists == nil {
		return nil, errNoModel
	}
	inv, ok := s.specialists(name)
	if !ok {
		return nil, fmt.Errorf("specialist %q is not available", name)
	}
	return inv, nil
}

func (s *Server) handler(workflow string) (session.Handler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.handlers[workflow]; ok {
		return h, nil
	}
	h, err := s.provider(workflow)
	if err != nil {
		return nil, err
	}
	s.handlers[workflow] = h
	return h, nil
}
