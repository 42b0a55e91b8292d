package knowledge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStore() *Store {
	return NewStore(Dataset{
		Celebration: Celebration{Name: "National Year of Culture", Year: 2026, DurationMonths: 12},
		Events: []Event{
			{Name: "Capital Expo", City: "Riyadh", Tier: "Marquee", Type: "Exhibition", Organization: "Ministry of Culture", InclusionStatus: "included"},
			{Name: "Poetry Nights", City: "Riyadh", Tier: "Tier1", Type: "Festival", Organization: "Literature Commission", InclusionStatus: "Counted-without-inclusion"},
			{Name: "Harbour Gala", City: "Jeddah", Tier: "Marquee", Organization: "Ministry of Culture", InclusionStatus: "excluded"},
		},
		Benchmarks: []BenchmarkCase{
			{ID: "BM001", Name: "St. Petersburg 300", NameEN: "Saint Petersburg Tercentenary", Country: "Russia", Keywords: []string{"petersburg"}, Overview: Overview{Summary: "City anniversary programme"}},
			{ID: "BM002", Name: "Rome Jubilee", Country: "Italy", Overview: Overview{Summary: "Religious and cultural year"}},
		},
		KPICategories: []KPICategory{
			{ID: "ATT", Name: "Attendance & Participation KPIs", KPIs: []KPIDefinition{{Name: "Total visitors"}, {Name: "Repeat visits"}}},
			{ID: "MED", Name: "Media Coverage KPIs", KPIs: []KPIDefinition{{Name: "Media reach"}}},
		},
		Organizations: []Organization{
			{ID: "ORG1", Name: "Ministry of Culture", NameEN: "MoC", Type: "governmental", ContactCity: "Riyadh"},
			{ID: "ORG2", Name: "Events Co", Type: "private", ContactCity: "Jeddah"},
		},
	})
}

func TestEventFilters(t *testing.T) {
	s := sampleStore()

	assert.Len(t, s.AllEvents(), 3)
	assert.Len(t, s.EventsByCity("Riyadh"), 2)
	assert.Empty(t, s.EventsByCity("Dammam"))
	assert.Len(t, s.EventsByTier("Marquee"), 2)
	assert.Len(t, s.EventsByType("Festival"), 1)
	assert.Len(t, s.EventsByOrganization("ministry"), 2)
	assert.Empty(t, s.EventsByOrganization(""))
	assert.Len(t, s.EventsByInclusionStatus(StatusCountedWithoutInclusion), 1)
	assert.Len(t, s.EventsByInclusionStatus(StatusIncluded), 1)
	assert.Empty(t, s.EventsByInclusionStatus("unknown"))
}

func TestAllEventsReturnsCopy(t *testing.T) {
	s := sampleStore()
	events := s.AllEvents()
	events[0].Name = "changed"
	assert.Equal(t, "Capital Expo", s.AllEvents()[0].Name)
}

func TestEventsSummary_ExampleScenario(t *testing.T) {
	s := NewStore(Dataset{Events: []Event{
		{City: "Riyadh", Tier: "Marquee"},
		{City: "Riyadh", Tier: "Tier1"},
		{City: "Jeddah", Tier: "Marquee"},
	}})

	sum := s.EventsSummary()
	assert.Equal(t, 3, sum.TotalCount)
	if diff := cmp.Diff(map[string]int{"Riyadh": 2, "Jeddah": 1}, sum.ByCity); diff != "" {
		t.Errorf("by_city mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"Marquee": 2, "Tier1": 1}, sum.ByTier); diff != "" {
		t.Errorf("by_tier mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]int{Unspecified: 3}, sum.ByType)

	ct, err := s.CrossTabulate(DimensionCity, DimensionTier)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Marquee": 1, "Tier1": 1}, ct.Counts["Riyadh"])
	assert.Equal(t, 2, ct.RowTotals["Riyadh"])
	assert.Equal(t, []string{"Riyadh", "Jeddah"}, ct.RowValues())
	assert.Equal(t, []string{"Marquee", "Tier1"}, ct.ColumnValues())
}

func TestEventsSummary_TotalsInvariant(t *testing.T) {
	s := sampleStore().WithSupplementary([]Event{{Name: "Bare"}, {City: "Abha", InclusionStatus: "INCLUDED"}})
	sum := s.EventsSummary()
	require.Equal(t, 5, sum.TotalCount)

	for _, d := range Dimensions {
		total := 0
		for _, n := range sum.Dimension(d) {
			total += n
		}
		assert.Equal(t, sum.TotalCount, total, "dimension %s", d)
	}
	assert.Equal(t, 2, sum.ByInclusionStatus["included"])
}

func TestCrossTabulate_UnknownDimension(t *testing.T) {
	_, err := sampleStore().CrossTabulate(DimensionCity, Dimension("budget"))
	assert.Error(t, err)
}

func TestCrossTabulate_SeesSupplementaryEvents(t *testing.T) {
	base := sampleStore()
	before, err := base.CrossTabulate(DimensionCity, DimensionTier)
	require.NoError(t, err)

	augmented := base.WithSupplementary([]Event{{City: "Riyadh", Tier: "Tier3"}})
	after, err := augmented.CrossTabulate(DimensionCity, DimensionTier)
	require.NoError(t, err)

	assert.Equal(t, 2, before.RowTotals["Riyadh"])
	assert.Equal(t, 3, after.RowTotals["Riyadh"])
	assert.Len(t, base.AllEvents(), 3, "base store must not change")
}

func TestBenchmarks(t *testing.T) {
	s := sampleStore()

	b, ok := s.BenchmarkByID("BM002")
	require.True(t, ok)
	assert.Equal(t, "Rome Jubilee", b.Name)

	_, ok = s.BenchmarkByID("BM999")
	assert.False(t, ok)

	b, ok = s.BenchmarkByName("tercentenary", true)
	require.True(t, ok)
	assert.Equal(t, "BM001", b.ID)

	_, ok = s.BenchmarkByName("tercentenary", false)
	assert.False(t, ok)

	assert.Len(t, s.SearchBenchmarks("italy"), 1)
	assert.Len(t, s.SearchBenchmarks("anniversary"), 1)
	assert.Empty(t, s.SearchBenchmarks("olympics"))

	assert.Contains(t, b.MatchTerms(), "petersburg")
	assert.Contains(t, b.MatchTerms(), "russia")
}

func TestKPIs(t *testing.T) {
	s := sampleStore()

	kpis := s.KPIsByCategory("media coverage")
	require.Len(t, kpis, 1)
	assert.Equal(t, "Media reach", kpis[0].Name)
	assert.Nil(t, s.KPIsByCategory("economic"))

	all := s.AllKPIs()
	require.Len(t, all, 3)
	assert.Equal(t, "Attendance & Participation KPIs", all[0].CategoryName)
	assert.Equal(t, "MED", all[2].CategoryID)
}

func TestOrganizations(t *testing.T) {
	s := sampleStore()

	o, ok := s.OrganizationByName("moc")
	require.True(t, ok)
	assert.Equal(t, "ORG1", o.ID)

	_, ok = s.OrganizationByName("")
	assert.False(t, ok)

	assert.Len(t, s.OrganizationsByType("private"), 1)
	assert.Len(t, s.AllOrganizations(), 2)
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want Dimension
	}{
		{"city", DimensionCity},
		{"Tier", DimensionTier},
		{"category", DimensionType},
		{"status", DimensionInclusionStatus},
		{"entity", DimensionOrganization},
	}
	for _, tt := range tests {
		got, err := ParseDimension(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseDimension("budget")
	assert.Error(t, err)
}
