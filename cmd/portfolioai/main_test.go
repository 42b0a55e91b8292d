package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/portfolioai/ai/knowledge"
)

const eventsJSON = `{
  "celebration": {"name": "National Year of Culture", "year": 2026, "duration_months": 12},
  "events": [
    {"name": "Capital Expo", "responsible_org": "Ministry of Culture", "city": "Riyadh", "tier": "Tier 1"},
    {"name": "Harbour Gala", "responsible_org": "Ministry of Culture", "city": "Jeddah", "tier": "Tier 2"},
    {"name": "Poetry Nights", "responsible_org": "Literature Commission", "city": "Riyadh", "tier": "Tier 1"}
  ]
}`

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.json"), []byte(eventsJSON), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"PORTFOLIOAI_LLM_API_KEY", "PORTFOLIOAI_LLM_PROVIDER"} {
		t.Setenv(key, "")
	}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestWriteSummary(t *testing.T) {
	kb := knowledge.NewStore(knowledge.Dataset{Events: []knowledge.Event{
		{Name: "A", City: "Riyadh", Tier: "Tier 1"},
		{Name: "B", City: "Riyadh", Tier: "Tier 2"},
		{Name: "C", City: "Abha"},
	}})

	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, kb, "", ""))
	out := buf.String()
	assert.Contains(t, out, "Total events: 3")
	assert.Contains(t, out, "By city")
	assert.Contains(t, out, "By organization")
	assert.Contains(t, out, "66.7%")

	buf.Reset()
	require.NoError(t, writeSummary(&buf, kb, "city", "tier"))
	out = buf.String()
	assert.Contains(t, out, "city by tier")
	assert.Contains(t, out, "Unspecified")
	assert.NotContains(t, out, "By organization")

	assert.Error(t, writeSummary(&buf, kb, "", "tier"))
	assert.Error(t, writeSummary(&buf, kb, "colour", ""))
	assert.Error(t, writeSummary(&buf, kb, "city", "colour"))
}

func TestSummaryCommand(t *testing.T) {
	dir := writeDataDir(t)

	out, err := execute(t, "--data", dir, "summary", "--by", "city", "--cross", "")
	require.NoError(t, err)
	assert.Contains(t, out, "By city")
	assert.Contains(t, out, "Riyadh")
	assert.Less(t, strings.Index(out, "Riyadh"), strings.Index(out, "Jeddah"))
}

func TestSummaryCommand_MissingDataDir(t *testing.T) {
	_, err := execute(t, "--data", filepath.Join(t.TempDir(), "absent"), "summary", "--by", "", "--cross", "")
	assert.Error(t, err)
}

func TestAskCommand_RequiresModel(t *testing.T) {
	dir := writeDataDir(t)
	_, err := execute(t, "--data", dir, "ask", "hello")
	assert.ErrorIs(t, err, errNoModel)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version=")
}
