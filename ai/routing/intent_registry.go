package routing

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// RuleSet is the complete routing policy of one workflow.
// Rule order is significant: it breaks ties between equal scores.
type RuleSet struct {
	Workflow       string       `yaml:"workflow"`
	Rules          []IntentRule `yaml:"rules"`
	ReviewTriggers []string     `yaml:"review_triggers"`
	SlideTriggers  []string     `yaml:"slide_triggers"`
}

// Clone returns a deep copy.
func (rs RuleSet) Clone() RuleSet {
	out := RuleSet{
		Workflow:       rs.Workflow,
		ReviewTriggers: slices.Clone(rs.ReviewTriggers),
		SlideTriggers:  slices.Clone(rs.SlideTriggers),
		Rules:          make([]IntentRule, len(rs.Rules)),
	}
	for i, r := range rs.Rules {
		out.Rules[i] = IntentRule{Intent: r.Intent, Keywords: slices.Clone(r.Keywords)}
	}
	return out
}

// Intents lists the rule intents in table order.
func (rs RuleSet) Intents() []Intent {
	out := make([]Intent, len(rs.Rules))
	for i, r := range rs.Rules {
		out[i] = r.Intent
	}
	return out
}

// Validate rejects empty tables, duplicate intents and keywordless rules.
func (rs RuleSet) Validate() error {
	if len(rs.Rules) == 0 {
		return fmt.Errorf("routing: rule set %q has no rules", rs.Workflow)
	}
	seen := make(map[Intent]bool, len(rs.Rules))
	for _, r := range rs.Rules {
		if r.Intent == "" {
			return fmt.Errorf("routing: rule set %q has a rule without intent", rs.Workflow)
		}
		if r.Intent == IntentGeneral {
			return fmt.Errorf("routing: rule set %q must not bind %q", rs.Workflow, IntentGeneral)
		}
		if seen[r.Intent] {
			return fmt.Errorf("routing: rule set %q repeats intent %q", rs.Workflow, r.Intent)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("routing: intent %q has no keywords", r.Intent)
		}
		seen[r.Intent] = true
	}
	return nil
}

var defaultReviewTriggers = []string{"review", "critique", "evaluate", "feedback", "improve", "assess"}

var defaultSlideTriggers = []string{"slide", "presentation", "convert", "format", "powerpoint"}

// EventsRules is the events oversight routing table.
func EventsRules() RuleSet {
	return RuleSet{
		Workflow: "events",
		Rules: []IntentRule{
			{Intent: IntentDataAnalysis, Keywords: []string{"analyze", "analysis", "statistics", "distribution", "data", "events", "total", "count", "summary"}},
			{Intent: IntentFollowUp, Keywords: []string{"missing", "incomplete", "follow-up", "follow up", "email", "contact", "gap", "lacking"}},
			{Intent: IntentReporting, Keywords: []string{"report", "committee", "executive", "briefing", "document", "prepare", "summary"}},
			{Intent: IntentQualityCheck, Keywords: []string{"quality", "check", "validate", "verify", "complete", "accuracy"}},
		},
		ReviewTriggers: slices.Clone(defaultReviewTriggers),
		SlideTriggers:  slices.Clone(defaultSlideTriggers),
	}
}

// CelebrationsRules is the strategic planning routing table.
func CelebrationsRules() RuleSet {
	return RuleSet{
		Workflow: "celebrations",
		Rules: []IntentRule{
			{Intent: IntentBenchmarking, Keywords: []string{"benchmark", "compare", "comparison", "international", "case study", "st. petersburg", "petersburg", "experience", "best practice"}},
			{Intent: IntentKPI, Keywords: []string{"kpi", "indicator", "metric", "measure", "performance", "target", "goal"}},
			{Intent: IntentCritique, Keywords: []string{"review", "critique", "feedback", "improve", "evaluate", "assess", "previous"}},
			{Intent: IntentSlide, Keywords: []string{"slide", "presentation", "convert", "format", "content", "powerpoint", "deck"}},
		},
		ReviewTriggers: slices.Clone(defaultReviewTriggers),
		SlideTriggers:  slices.Clone(defaultSlideTriggers),
	}
}

// LoadRuleSet reads a YAML rule set from path and validates it.
// Missing trigger lists fall back to the built-in review/slide triggers.
func LoadRuleSet(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("routing: read rules: %w", err)
	}
	return ParseRuleSet(data)
}

// ParseRuleSet decodes and validates a YAML rule set. Unknown fields are rejected.
func ParseRuleSet(data []byte) (RuleSet, error) {
	var rs RuleSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		return RuleSet{}, fmt.Errorf("routing: decode rules: %w", err)
	}
	if rs.ReviewTriggers == nil {
		rs.ReviewTriggers = slices.Clone(defaultReviewTriggers)
	}
	if rs.SlideTriggers == nil {
		rs.SlideTriggers = slices.Clone(defaultSlideTriggers)
	}
	if err := rs.Validate(); err != nil {
		return RuleSet{}, err
	}
	return rs, nil
}
