package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventsCSV(t *testing.T) {
	in := "Event Name,City,Tier,Responsible Org,Notes\n" +
		"Desert Run,Alula,Tier2,Sports Authority,ignored\n" +
		",,,,\n" +
		"Book Fair,Riyadh,Tier1,,\n"

	events, err := ParseEventsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, Event{Name: "Desert Run", City: "Alula", Tier: "Tier2", Organization: "Sports Authority"}, events[0])
	assert.Equal(t, "", events[1].Organization)
}

func TestParseEventsCSV_Errors(t *testing.T) {
	_, err := ParseEventsCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoEvents)

	_, err = ParseEventsCSV(strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)

	_, err = ParseEventsCSV(strings.NewReader("name,city\n"))
	assert.ErrorIs(t, err, ErrNoEvents)
}

func TestParseEventsJSON(t *testing.T) {
	events, err := ParseEventsJSON([]byte(`[{"name": "A", "city": "Riyadh"}]`))
	require.NoError(t, err)
	assert.Equal(t, "Riyadh", events[0].City)

	events, err = ParseEventsJSON([]byte(`{"events": [{"name": "B"}, {"name": "C"}]}`))
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = ParseEventsJSON([]byte(`{"events": []}`))
	assert.ErrorIs(t, err, ErrNoEvents)

	_, err = ParseEventsJSON([]byte(`not json`))
	assert.Error(t, err)
}
