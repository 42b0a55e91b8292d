// Package metrics exports assistant metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hrygo/portfolioai/ai/core/llm"
)

const (
	namespace = "portfolioai"
	subsystem = "ai"
)

// PrometheusExporter exports agent, routing and session metrics.
// It satisfies agent.Observer, orchestrator.Recorder and the session
// manager's gauge hook.
type PrometheusExporter struct {
	registry *prometheus.Registry

	// Agent metrics
	agentInvocations *prometheus.CounterVec
	agentLatency     *prometheus.HistogramVec

	// LLM token metrics
	llmTokensUsed   *prometheus.CounterVec
	llmTokensCached *prometheus.CounterVec

	// Routing metrics
	routeDecisions *prometheus.CounterVec

	// Session metrics
	chatTurns      *prometheus.CounterVec
	chatLatency    *prometheus.HistogramVec
	sessionsActive prometheus.Gauge
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter.
func NewPrometheusExporter(cfg Config) *PrometheusExporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &PrometheusExporter{registry: registry}

	e.agentInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "agent_invocations_total",
			Help:      "Total number of specialist invocations",
		},
		[]string{"agent", "status"},
	)

	e.agentLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "agent_latency_seconds",
			Help:      "Specialist invocation latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"agent"},
	)

	e.llmTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"model", "token_type"},
	)

	e.llmTokensCached = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "llm_tokens_cached_total",
			Help:      "Total LLM tokens served from cache",
		},
		[]string{"model"},
	)

	e.routeDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "route_decisions_total",
			Help:      "Total number of routing decisions by intent",
		},
		[]string{"workflow", "intent"},
	)

	e.chatTurns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "chat_turns_total",
			Help:      "Total number of answered chat turns",
		},
		[]string{"workflow", "status"},
	)

	e.chatLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "chat_latency_seconds",
			Help:      "Chat turn latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"workflow"},
	)

	e.sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions_active",
			Help:      "Number of open chat sessions",
		},
	)

	registry.MustRegister(
		e.agentInvocations,
		e.agentLatency,
		e.llmTokensUsed,
		e.llmTokensCached,
		e.routeDecisions,
		e.chatTurns,
		e.chatLatency,
		e.sessionsActive,
	)

	return e
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// ObserveInvocation records one specialist model call.
func (e *PrometheusExporter) ObserveInvocation(agentName string, d time.Duration, stats *llm.LLMCallStats, err error) {
	e.agentInvocations.WithLabelValues(agentName, status(err == nil)).Inc()
	e.agentLatency.WithLabelValues(agentName).Observe(d.Seconds())
	if stats == nil {
		return
	}
	e.RecordLLMTokens(stats.Model, "prompt", stats.PromptTokens)
	e.RecordLLMTokens(stats.Model, "completion", stats.CompletionTokens)
	if stats.CacheReadTokens > 0 {
		e.llmTokensCached.WithLabelValues(stats.Model).Add(float64(stats.CacheReadTokens))
	}
}

// RecordLLMTokens records LLM token usage.
func (e *PrometheusExporter) RecordLLMTokens(model, tokenType string, count int) {
	if count <= 0 {
		return
	}
	e.llmTokensUsed.WithLabelValues(model, tokenType).Add(float64(count))
}

// ObserveRoute records one routing decision.
func (e *PrometheusExporter) ObserveRoute(workflow, intent string) {
	e.routeDecisions.WithLabelValues(workflow, intent).Inc()
}

// RecordChatTurn records one answered turn.
func (e *PrometheusExporter) RecordChatTurn(workflow string, latency time.Duration, success bool) {
	e.chatTurns.WithLabelValues(workflow, status(success)).Inc()
	e.chatLatency.WithLabelValues(workflow).Observe(latency.Seconds())
}

// SetActiveSessions sets the number of open sessions.
func (e *PrometheusExporter) SetActiveSessions(count int) {
	e.sessionsActive.Set(float64(count))
}

// Handler returns the HTTP handler for the metrics endpoint.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ServeHTTP implements http.Handler for the metrics endpoint.
func (e *PrometheusExporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.Handler().ServeHTTP(w, r)
}

// Registry returns the Prometheus registry.
func (e *PrometheusExporter) Registry() *prometheus.Registry {
	return e.registry
}
