package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/hrygo/portfolioai/ai/agents/orchestrator"
	"github.com/hrygo/portfolioai/ai/core/llm"
	"github.com/hrygo/portfolioai/ai/knowledge"
	"github.com/hrygo/portfolioai/ai/metrics"
	"github.com/hrygo/portfolioai/ai/session"
	"github.com/hrygo/portfolioai/internal/profile"
)

var errNoModel = errors.New("no language model configured: set PORTFOLIOAI_LLM_API_KEY or use the ollama provider")

// app is the shared wiring of every command.
type app struct {
	profile  *profile.Profile
	kb       *knowledge.Store
	metrics  *metrics.PrometheusExporter
	llm      llm.Service
	registry *orchestrator.Registry // nil without a model
}

// newApp loads the knowledge directory and, when a model is configured,
// builds the specialists and workflows.
func newApp(ctx context.Context, prof *profile.Profile, requireModel bool) (*app, error) {
	kb, err := knowledge.Load(ctx, prof.Data)
	if err != nil {
		return nil, err
	}
	a := &app{
		profile: prof,
		kb:      kb,
		metrics: metrics.NewPrometheusExporter(metrics.DefaultConfig()),
	}

	if !prof.IsAIEnabled() {
		if requireModel {
			return nil, errNoModel
		}
		slog.Warn("AI features disabled", "provider", prof.LLMProvider)
		return a, nil
	}

	svc, err := llm.NewService(prof.LLMConfig())
	if err != nil {
		return nil, err
	}
	wfs, err := orchestrator.LoadWorkflows(prof.Rules)
	if err != nil {
		return nil, err
	}
	reg, err := orchestrator.NewRegistry(svc, kb,
		orchestrator.WithWorkflows(wfs),
		orchestrator.WithInvocationObserver(a.metrics),
		orchestrator.WithRouteRecorder(a.metrics),
	)
	if err != nil {
		return nil, err
	}
	a.llm = svc
	a.registry = reg
	slog.Info("LLM service initialized", "provider", prof.LLMProvider, "model", svc.Model())
	return a, nil
}

// warmup pings the model in the background to shorten the first answer.
func (a *app) warmup() {
	if a.llm == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.llm.Warmup(ctx)
	}()
}

func (a *app) sessionConfig() session.Config {
	cfg := session.Config{
		HistoryWindow: a.profile.HistoryWindow,
		Burst:         a.profile.TurnBurst,
	}
	if n := a.profile.TurnsPerMinute; n > 0 {
		cfg.RateLimit = rate.Every(time.Minute / time.Duration(n))
	}
	return cfg
}

func (a *app) provider() session.HandlerProvider {
	if a.registry == nil {
		return nil
	}
	return session.OrchestratorProvider(a.registry)
}
