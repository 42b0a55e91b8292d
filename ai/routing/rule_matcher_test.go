package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	events := EventsRules().Rules
	celebrations := CelebrationsRules().Rules

	tests := []struct {
		name       string
		rules      []IntentRule
		input      string
		intent     Intent
		confidence float64
	}{
		{"kpi example", celebrations, "What KPIs do you recommend for media coverage?", IntentKPI, 1.0 / 3},
		{"benchmark", celebrations, "Compare with the St. Petersburg experience", IntentBenchmarking, 1.0},
		{"slides", celebrations, "Make a slide deck", IntentSlide, 2.0 / 3},
		{"data analysis", events, "Give me a summary of events by city", IntentDataAnalysis, 2.0 / 3},
		{"follow-up", events, "Which entities have missing data? draft an email", IntentFollowUp, 2.0 / 3},
		{"quality", events, "Run a quality check", IntentQualityCheck, 2.0 / 3},
		{"uppercase", events, "PREPARE A COMMITTEE REPORT", IntentReporting, 1.0},
		{"no match", events, "hello there", IntentGeneral, GeneralConfidence},
		{"empty", celebrations, "", IntentGeneral, GeneralConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input, tt.rules)
			assert.Equal(t, tt.intent, got.Intent)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
		})
	}
}

func TestClassify_TieKeepsRuleOrder(t *testing.T) {
	// "summary" belongs to both data_analysis and reporting.
	got := Classify("summary please", EventsRules().Rules)
	assert.Equal(t, IntentDataAnalysis, got.Intent)
	require.Len(t, got.Scores, 2)
	assert.Equal(t, IntentReporting, got.Scores[1].Intent)

	reversed := []IntentRule{EventsRules().Rules[2], EventsRules().Rules[0]}
	assert.Equal(t, IntentReporting, Classify("summary please", reversed).Intent)
}

func TestClassify_Deterministic(t *testing.T) {
	rules := CelebrationsRules().Rules
	msg := "review the KPI targets and compare with international benchmarks"
	first := Classify(msg, rules)
	for range 10 {
		assert.Equal(t, first, Classify(msg, rules))
	}
}

func TestScore(t *testing.T) {
	scores := Score("benchmark KPI metric target", CelebrationsRules().Rules)
	require.Len(t, scores, 2)
	assert.Equal(t, IntentScore{Intent: IntentKPI, Count: 3, Matched: []string{"kpi", "metric", "target"}}, scores[0])
	assert.Equal(t, IntentBenchmarking, scores[1].Intent)

	assert.Empty(t, Score("nothing relevant", CelebrationsRules().Rules))
}

func TestClassify_ConfidenceCapped(t *testing.T) {
	got := Classify("kpi indicator metric measure performance", CelebrationsRules().Rules)
	assert.Equal(t, IntentKPI, got.Intent)
	assert.InDelta(t, 1.0, got.Confidence, 1e-9)
}

func TestRuleMatcher_Triggers(t *testing.T) {
	m := NewRuleMatcher(CelebrationsRules())

	assert.True(t, m.WantsReview("Please review that"))
	assert.True(t, m.WantsReview("any feedback?"))
	assert.False(t, m.WantsReview("benchmark Rome"))

	assert.True(t, m.WantsSlides("convert it to a presentation"))
	assert.False(t, m.WantsSlides("give me KPIs"))

	assert.Equal(t, IntentKPI, m.Classify("KPI").Intent)
}

func TestRuleMatcher_CopiesRules(t *testing.T) {
	rs := EventsRules()
	m := NewRuleMatcher(rs)
	rs.Rules[0].Keywords[0] = "mutated"

	assert.Equal(t, "analyze", m.Rules().Rules[0].Keywords[0])
}

func TestClassify_QualityWordsAreScoredLikeAnyOther(t *testing.T) {
	// "incomplete" also contains "complete", so follow-up and quality tie
	// with "events", and the first rule wins.
	got := Classify("Which events are incomplete?", EventsRules().Rules)
	assert.Equal(t, IntentDataAnalysis, got.Intent)
	assert.InDelta(t, 1.0/3, got.Confidence, 1e-9)
	require.Len(t, got.Scores, 3)
	assert.Equal(t, []Intent{IntentDataAnalysis, IntentFollowUp, IntentQualityCheck},
		[]Intent{got.Scores[0].Intent, got.Scores[1].Intent, got.Scores[2].Intent})

	// A quality word only wins on count, not by precedence.
	assert.Equal(t, IntentFollowUp, Classify("validate the missing contact email", EventsRules().Rules).Intent)
}
