// Package routing classifies free-text requests into intents with a
// keyword-count heuristic over an explicit rule table.
package routing

// Intent is a coarse request category used only for routing.
type Intent string

const (
	// IntentGeneral is the fallback when no rule keyword matches.
	IntentGeneral Intent = "general"

	// Events oversight workflow.
	IntentDataAnalysis Intent = "data_analysis"
	IntentFollowUp     Intent = "followup"
	IntentReporting    Intent = "reporting"
	IntentQualityCheck Intent = "quality_check"

	// Celebrations strategic planning workflow.
	IntentBenchmarking Intent = "benchmarking"
	IntentKPI          Intent = "kpi"
	IntentCritique     Intent = "critique"
	IntentSlide        Intent = "slide"

	// Follow-up shortcuts that act on the previous answer.
	IntentReviewPrevious Intent = "review_previous"
	IntentFormatSlides   Intent = "format_slides"
)

// GeneralConfidence is the fixed confidence reported for IntentGeneral.
const GeneralConfidence = 0.5

// confidenceDivisor normalizes a keyword count into (0, 1].
const confidenceDivisor = 3.0

// IntentRule binds an intent to the keywords that vote for it.
type IntentRule struct {
	Intent   Intent   `json:"intent" yaml:"intent"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// IntentScore is the number of rule keywords found in a message.
type IntentScore struct {
	Intent  Intent   `json:"intent"`
	Count   int      `json:"count"`
	Matched []string `json:"matched,omitempty"`
}

// Classification is the outcome of classifying one message.
type Classification struct {
	Intent     Intent        `json:"intent"`
	Confidence float64       `json:"confidence"`
	Scores     []IntentScore `json:"scores,omitempty"`
}
