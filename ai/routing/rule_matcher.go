package routing

import (
	"sort"

	"github.com/hrygo/portfolioai/ai/internal/strutil"
)

// Score counts, for every rule, how many of its keywords occur in message
// (case-insensitive substring). Rules with zero matches are dropped. The
// result is ordered by descending count; equal counts keep rule order.
func Score(message string, rules []IntentRule) []IntentScore {
	var scores []IntentScore
	for _, r := range rules {
		matched := strutil.MatchedKeywords(message, r.Keywords)
		if len(matched) == 0 {
			continue
		}
		scores = append(scores, IntentScore{Intent: r.Intent, Count: len(matched), Matched: matched})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Count > scores[j].Count
	})
	return scores
}

// Classify picks the highest scoring intent. With no match it returns
// IntentGeneral at GeneralConfidence; otherwise confidence is count/3 capped at 1.
func Classify(message string, rules []IntentRule) Classification {
	scores := Score(message, rules)
	if len(scores) == 0 {
		return Classification{Intent: IntentGeneral, Confidence: GeneralConfidence}
	}
	best := scores[0]
	return Classification{
		Intent:     best.Intent,
		Confidence: min(float64(best.Count)/confidenceDivisor, 1.0),
		Scores:     scores,
	}
}

// RuleMatcher classifies messages against one rule set.
type RuleMatcher struct {
	rules RuleSet
}

// NewRuleMatcher creates a matcher over a copy of rs.
func NewRuleMatcher(rs RuleSet) *RuleMatcher {
	return &RuleMatcher{rules: rs.Clone()}
}

// Rules returns the matcher's rule set.
func (m *RuleMatcher) Rules() RuleSet {
	return m.rules.Clone()
}

// Classify classifies message with the matcher's intent rules.
func (m *RuleMatcher) Classify(message string) Classification {
	return Classify(message, m.rules.Rules)
}

// WantsReview reports whether message asks to review the previous answer.
func (m *RuleMatcher) WantsReview(message string) bool {
	return strutil.ContainsAny(message, m.rules.ReviewTriggers)
}

// WantsSlides reports whether message asks to turn the previous answer into slides.
func (m *RuleMatcher) WantsSlides(message string) bool {
	return strutil.ContainsAny(message, m.rules.SlideTriggers)
}
