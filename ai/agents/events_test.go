package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/portfolioai/ai/knowledge"
)

func TestPrepareDataAnalysis(t *testing.T) {
	trace := &Trace{}
	prep, err := PrepareDataAnalysis(context.Background(), testStore(), Request{Message: "Analyze events by city"}, trace)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prep.Message, "User request: Analyze events by city\n"))
	assert.Contains(t, prep.Message, "**Total events:** 3")
	assert.Contains(t, prep.Message, "| Riyadh | 2 | 66.7% |")
	assert.Contains(t, prep.Message, "### City by Tier")
	assert.Contains(t, prep.Message, "| Jeddah | 1 | 0 | 1 |")
	assert.Contains(t, prep.Message, "### Events with incomplete data (2)")
	assert.Contains(t, prep.Message, "- Harbour Gala: missing Start Date, Event Type, Inclusion Status")
	assert.Equal(t, 3, prep.Metadata["events_analyzed"])
	assert.Equal(t, "events_data", prep.Metadata["analysis_type"])
	assert.Equal(t, "Loaded 3 events for analysis", trace.Lines()[0])
}

func TestPrepareDataAnalysis_CapsIncompleteList(t *testing.T) {
	events := make([]knowledge.Event, 12)
	for i := range events {
		events[i] = knowledge.Event{Name: "E", City: "Riyadh"}
	}
	prep, err := PrepareDataAnalysis(context.Background(), knowledge.NewStore(knowledge.Dataset{Events: events}), Request{Message: "x"}, &Trace{})
	require.NoError(t, err)
	assert.Equal(t, maxIncompleteListed, strings.Count(prep.Message, "- E: missing"))
	assert.Contains(t, prep.Message, "- ... and 2 more")
}

func TestMissingByEntity(t *testing.T) {
	entries := MissingByEntity(testStore().AllEvents())
	require.Len(t, entries, 2)

	assert.Equal(t, "Literature Commission", entries[0].Entity)
	require.Len(t, entries[0].Items, 1)
	assert.Equal(t, []string{"Start Date", "Description", "Funding Note", "Communication Note"}, entries[0].Items[0].Missing)

	assert.Equal(t, "Ministry of Culture", entries[1].Entity)
	assert.Equal(t, 2, entries[1].Events)
	require.Len(t, entries[1].Items, 1)
	assert.Equal(t, "Harbour Gala", entries[1].Items[0].Event)
}

func TestFormatMissingReport(t *testing.T) {
	items := make([]FollowUpItem, 7)
	for i := range items {
		items[i] = FollowUpItem{Event: "Event", Missing: []string{"City"}}
	}
	report := FormatMissingReport([]EntityFollowUp{
		{Entity: "Complete Org", Events: 2},
		{Entity: "Late Org", Events: 9, Items: items},
	})

	assert.True(t, strings.HasPrefix(report, "## Missing Information Report\n"))
	assert.Contains(t, report, "### Complete Org\nAll data complete")
	assert.Contains(t, report, "**7 of 9 events need completion:**")
	assert.Equal(t, maxItemsPerEntity, strings.Count(report, "- **Event**"))
	assert.Contains(t, report, "*and 2 more events...*")
}

func TestPrepareFollowUp(t *testing.T) {
	prep, err := PrepareFollowUp(context.Background(), testStore(), Request{Message: "Who needs follow up?"}, &Trace{})
	require.NoError(t, err)

	assert.Contains(t, prep.Message, "User request: Who needs follow up?")
	assert.Contains(t, prep.Message, "Current Missing Information Report:")
	assert.Contains(t, prep.Message, "3. Draft professional follow-up messages")
	assert.Equal(t, 2, prep.Metadata["entities_needing_followup"])
}

func TestComputeCompletion(t *testing.T) {
	stats := ComputeCompletion(testStore().AllEvents())

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Complete)
	assert.InDelta(t, 100.0/3, stats.Rate, 1e-9)
	assert.Equal(t, map[string]int{"included": 1, "excluded": 1, knowledge.Unspecified: 1}, stats.ByStatus)
	require.Len(t, stats.ByEntity, 2)
	assert.Equal(t, EntityCompletion{Entity: "Ministry of Culture", Total: 2, Complete: 1, Rate: 50}, stats.ByEntity[1])
}

func TestPrepareReporting(t *testing.T) {
	prep, err := PrepareReporting(context.Background(), testStore(), Request{Message: "Weekly report"}, &Trace{})
	require.NoError(t, err)

	assert.Contains(t, prep.Message, "- Completion rate: 33%")
	assert.Contains(t, prep.Message, "| Ministry of Culture | 2 | 1 | 50% |")
	assert.Equal(t, 3, prep.Metadata["total_events"])
}

func TestPrepareQualityCheck(t *testing.T) {
	trace := &Trace{}
	prep, err := PrepareQualityCheck(context.Background(), testStore(), Request{Message: "Check quality"}, trace)
	require.NoError(t, err)

	assert.Contains(t, prep.Message, "Overall score: 33% (Poor)")
	assert.Contains(t, prep.Message, "| Ministry of Culture | 2 | 1 | 50% | Average | 1 |")
	assert.Contains(t, prep.Message, "[Medium] Poetry Nights (Literature Commission): Unrealistic value - Duration too long: 2 years")
	assert.Equal(t, 3, prep.Metadata["issues_found"])
	assert.Equal(t, "Assessed 2 entities, found 3 issues", trace.Lines()[1])
}
