package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	agent "github.com/hrygo/portfolioai/ai/agents"
	"github.com/hrygo/portfolioai/ai/agents/orchestrator"
	"github.com/hrygo/portfolioai/ai/knowledge"
)

type EventsSummaryInput struct{}

type CrossTabulateInput struct {
	Rows    string `json:"rows" jsonschema:"row dimension: city, tier, type, inclusion_status or organization"`
	Columns string `json:"columns" jsonschema:"column dimension, same choices as rows"`
}

type SearchBenchmarksInput struct {
	Query string `json:"query,omitempty" jsonschema:"name, country or keyword; empty lists every case"`
}

type ListKPIsInput struct {
	Category string `json:"category,omitempty" jsonschema:"category name or part of it; empty lists every category"`
}

type FindOrganizationInput struct {
	Name string `json:"name" jsonschema:"organization name or part of it"`
}

type AskInput struct {
	Message  string `json:"message" jsonschema:"the request for the assistant"`
	Workflow string `json:"workflow,omitempty" jsonschema:"events or celebrations"`
}

type QuickReviewInput struct {
	Content string `json:"content" jsonschema:"the text to review; long text is truncated"`
}

type DraftFollowUpInput struct {
	Entity   string   `json:"entity" jsonschema:"the responsible organization to write to"`
	Requests []string `json:"requests,omitempty" jsonschema:"what to ask for; empty uses the entity's missing event fields"`
}

type CrossTabOutput struct {
	Rows      string                    `json:"rows"`
	Columns   string                    `json:"columns"`
	Counts    map[string]map[string]int `json:"counts"`
	RowTotals map[string]int            `json:"row_totals"`
}

type BenchmarkOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Year    int    `json:"year,omitempty"`
	Details string `json:"details"`
}

type SearchBenchmarksOutput struct {
	Cases []BenchmarkOutput `json:"cases"`
}

type ListKPIsOutput struct {
	Categories []knowledge.KPICategory `json:"categories"`
}

type FindOrganizationOutput struct {
	Organization knowledge.Organization `json:"organization"`
	Events       []string               `json:"events"`
}

type AskOutput struct {
	Content string   `json:"content"`
	Agent   string   `json:"agent"`
	AgentID string   `json:"agent_id"`
	Trace   []string `json:"trace"`
	Failed  bool     `json:"failed,omitempty"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "events_summary",
		Description: "Count events by city, tier, type, inclusion status and organization",
	}, s.handleEventsSummary)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "cross_tabulate",
		Description: "Count events across two dimensions",
	}, s.handleCrossTabulate)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_benchmarks",
		Description: "Search international benchmark cases",
	}, s.handleSearchBenchmarks)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_kpis",
		Description: "List KPI definitions by category",
	}, s.handleListKPIs)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "find_organization",
		Description: "Find an organization and the events it is responsible for",
	}, s.handleFindOrganization)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "quick_review",
		Description: "Short critique of a document: strengths, improvements and one recommendation",
	}, s.handleQuickReview)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "draft_followup",
		Description: "Draft a follow-up email asking one organization for missing event information",
	}, s.handleDraftFollowUp)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "ask",
		Description: "Ask the planning assistant; the request is routed to a specialist agent",
	}, s.handleAsk)
}

func (s *Server) handleEventsSummary(ctx context.Context, req *sdk.CallToolRequest, input EventsSummaryInput) (*sdk.CallToolResult, knowledge.Summary, error) {
	return nil, s.kb.EventsSummary(), nil
}

func (s *Server) handleCrossTabulate(ctx context.Context, req *sdk.CallToolRequest, input CrossTabulateInput) (*sdk.CallToolResult, CrossTabOutput, error) {
	rows, err := knowledge.ParseDimension(input.Rows)
	if err != nil {
		return nil, CrossTabOutput{}, err
	}
	cols, err := knowledge.ParseDimension(input.Columns)
	if err != nil {
		return nil, CrossTabOutput{}, err
	}
	ct, err := s.kb.CrossTabulate(rows, cols)
	if err != nil {
		return nil, CrossTabOutput{}, err
	}
	return nil, CrossTabOutput{
		Rows:      string(ct.Rows),
		Columns:   string(ct.Columns),
		Counts:    ct.Counts,
		RowTotals: ct.RowTotals,
	}, nil
}

func (s *Server) handleSearchBenchmarks(ctx context.Context, req *sdk.CallToolRequest, input SearchBenchmarksInput) (*sdk.CallToolResult, SearchBenchmarksOutput, error) {
	cases := s.kb.AllBenchmarks()
	if q := strings.TrimSpace(input.Query); q != "" {
		cases = s.kb.SearchBenchmarks(q)
	}
	out := make([]BenchmarkOutput, 0, len(cases))
	for _, c := range cases {
		out = append(out, BenchmarkOutput{
			ID:      c.ID,
			Name:    c.Name,
			Country: c.Country,
			Year:    c.Year,
			Details: knowledge.FormatBenchmark(c),
		})
	}
	return nil, SearchBenchmarksOutput{Cases: out}, nil
}

func (s *Server) handleListKPIs(ctx context.Context, req *sdk.CallToolRequest, input ListKPIsInput) (*sdk.CallToolResult, ListKPIsOutput, error) {
	needle := strings.ToLower(strings.TrimSpace(input.Category))
	out := make([]knowledge.KPICategory, 0)
	for _, c := range s.kb.KPICategories() {
		if needle == "" || strings.Contains(strings.ToLower(c.Name), needle) || strings.EqualFold(c.ID, needle) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, ListKPIsOutput{}, fmt.Errorf("no KPI category matches %q", input.Category)
	}
	return nil, ListKPIsOutput{Categories: out}, nil
}

func (s *Server) handleFindOrganization(ctx context.Context, req *sdk.CallToolRequest, input FindOrganizationInput) (*sdk.CallToolResult, FindOrganizationOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, FindOrganizationOutput{}, errors.New("name is required")
	}
	org, ok := s.kb.OrganizationByName(input.Name)
	if !ok {
		return nil, FindOrganizationOutput{}, fmt.Errorf("organization %q not found", input.Name)
	}
	events := make([]string, 0)
	for _, e := range s.kb.EventsByOrganization(org.Name) {
		events = append(events, e.Name)
	}
	return nil, FindOrganizationOutput{Organization: org, Events: events}, nil
}

func (s *Server) handleAsk(ctx context.Context, req *sdk.CallToolRequest, input AskInput) (*sdk.CallToolResult, AskOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, AskOutput{}, errors.New("message is required")
	}
	if s.provider == nil {
		return nil, AskOutput{}, errNoModel
	}
	workflow := input.Workflow
	if workflow == "" {
		workflow = s.defaultWorkflow
	}
	h, err := s.handler(workflow)
	if err != nil {
		return nil, AskOutput{}, err
	}

	res := h.Handle(ctx, orchestrator.Input{Message: input.Message, Knowledge: s.kb})
	return nil, askOutput(res), nil
}

func (s *Server) handleQuickReview(ctx context.Context, req *sdk.CallToolRequest, input QuickReviewInput) (*sdk.CallToolResult, AskOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, AskOutput{}, errors.New("content is required")
	}
	critic, err := s.specialist(agent.NameCritique)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, askOutput(agent.QuickReview(ctx, critic, input.Content)), nil
}

func (s *Server) handleDraftFollowUp(ctx context.Context, req *sdk.CallToolRequest, input DraftFollowUpInput) (*sdk.CallToolResult, AskOutput, error) {
	if strings.TrimSpace(input.Entity) == "" {
		return nil, AskOutput{}, errors.New("entity is required")
	}
	followUp, err := s.specialist(agent.NameFollowUp)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, askOutput(agent.DraftFollowUp(ctx, followUp, s.kb, input.Entity, input.Requests)), nil
}

func askOutput(res *agent.Result) AskOutput {
	return AskOutput{
		Content: res.Content,
		Agent:   res.Agent,
		AgentID: res.AgentID,
		Trace:   res.Trace,
		Failed:  res.Failed(),
	}
}
