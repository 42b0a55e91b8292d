package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"empty string", "", 10, ""},
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 5, "hello..."},
		{"negative maxLen", "hello", -1, ""},
		{"zero maxLen", "hello", 0, ""},
		{"arabic truncated", "مرحبا بكم", 5, "مرحبا..."},
		{"mixed unicode", "aé b", 2, "aé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.maxLen))
		})
	}
}

func TestClip(t *testing.T) {
	assert.Equal(t, "hel", Clip("hello", 3))
	assert.Equal(t, "hi", Clip("hi", 3))
	assert.Equal(t, "", Clip("hi", 0))
}

func TestMatchedKeywords(t *testing.T) {
	matched := MatchedKeywords("Compare our KPIs with St. Petersburg", []string{"kpi", "petersburg", "st. petersburg", "", "rome"})
	assert.Equal(t, []string{"kpi", "petersburg", "st. petersburg"}, matched)

	assert.Empty(t, MatchedKeywords("hello", []string{"bye"}))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("Please REVIEW that", []string{"review", "critique"}))
	assert.False(t, ContainsAny("hello there", []string{"review", ""}))
	assert.False(t, ContainsAny("anything", nil))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Ministry of Culture", "culture"))
	assert.False(t, ContainsFold("Ministry of Culture", "sport"))
}
