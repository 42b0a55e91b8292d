package agent

import (
	"context"
	"sync"
	"time"

	"github.com/hrygo/portfolioai/ai/core/llm"
	"github.com/hrygo/portfolioai/ai/knowledge"
)

// fakeLLM records every call and answers with a canned reply.
type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	panicMsg string
	calls    [][]llm.Message
	opts     []llm.CallOptions
}

func (f *fakeLLM) Chat(_ context.Context, messages []llm.Message, opts ...llm.CallOption) (string, *llm.LLMCallStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var o llm.CallOptions
	for _, opt := range opts {
		opt(&o)
	}
	f.calls = append(f.calls, messages)
	f.opts = append(f.opts, o)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return "", nil, f.err
	}
	reply := f.reply
	if reply == "" {
		reply = "fake answer"
	}
	return reply, &llm.LLMCallStats{Model: "fake-model", PromptTokens: 10, CompletionTokens: 5, FinishReason: "stop"}, nil
}

func (f *fakeLLM) Model() string          { return "fake-model" }
func (f *fakeLLM) Warmup(context.Context) {}

func (f *fakeLLM) lastUserMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	msgs := f.calls[len(f.calls)-1]
	return msgs[len(msgs)-1].Content
}

type observation struct {
	agent string
	err   error
}

type recordingObserver struct {
	mu  sync.Mutex
	got []observation
}

func (r *recordingObserver) ObserveInvocation(agent string, _ time.Duration, _ *llm.LLMCallStats, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, observation{agent: agent, err: err})
}

func testStore() *knowledge.Store {
	return knowledge.NewStore(knowledge.Dataset{
		Celebration: knowledge.Celebration{Name: "National Year of Culture", Year: 2026, DurationMonths: 12, Theme: "Heritage"},
		Events: []knowledge.Event{
			{
				Name: "Capital Expo", Organization: "Ministry of Culture", StartDate: "2026-02-01", EndDate: "2026-02-10",
				Duration: "10 days", City: "Riyadh", Tier: "Marquee", Type: "Exhibition", InclusionStatus: "included",
				Description: "Flagship expo", FundingNote: "Funded", CommunicationNote: "Press kit ready",
			},
			{
				Name: "Poetry Nights", Organization: "Literature Commission", City: "Riyadh", Tier: "Tier1",
				Type: "Festival", InclusionStatus: "excluded", Duration: "2 years",
			},
			{Name: "Harbour Gala", Organization: "Ministry of Culture", City: "Jeddah", Tier: "Marquee"},
		},
		Benchmarks: []knowledge.BenchmarkCase{
			{ID: "BM001", Name: "St. Petersburg 300", Country: "Russia", Year: 2003, Keywords: []string{"petersburg"},
				KeyMetrics: map[string]any{"total_events": 300.0}},
			{ID: "BM002", Name: "Rome Jubilee", Country: "Italy", Year: 2000},
		},
		KPICategories: []knowledge.KPICategory{
			{ID: "ATT", Name: "Attendance & Participation KPIs", KPIs: []knowledge.KPIDefinition{{Name: "Total visitors"}, {Name: "Repeat visits"}}},
			{ID: "MED", Name: "Media Coverage KPIs", KPIs: []knowledge.KPIDefinition{{Name: "Media reach", Unit: "impressions"}}},
		},
	})
}

func newSpecialist(cfg Config, svc llm.Service, opts ...Option) *Specialist {
	s, err := New(cfg, svc, append([]Option{WithKnowledge(testStore())}, opts...)...)
	if err != nil {
		panic(err)
	}
	return s
}
