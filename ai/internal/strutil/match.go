package strutil

import "strings"

// Normalize lower-cases s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchedKeywords returns the keywords that occur as substrings of text,
// compared case-insensitively, in keyword order. Empty keywords never match.
func MatchedKeywords(text string, keywords []string) []string {
	lowered := strings.ToLower(text)
	var matched []string
	for _, kw := range keywords {
		k := Normalize(kw)
		if k == "" {
			continue
		}
		if strings.Contains(lowered, k) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// ContainsAny reports whether any keyword occurs in text, case-insensitively.
func ContainsAny(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if k := Normalize(kw); k != "" && strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// ContainsFold reports whether substr occurs in s, case-insensitively.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
