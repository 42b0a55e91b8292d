package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/portfolioai/ai/internal/strutil"
	"github.com/hrygo/portfolioai/ai/knowledge"
)

// PrepareBenchmarking selects the cases the user mentions, or every case
// when none is named, and hands their full text to the model as context.
// A broad request also gets the side-by-side metrics digest.
func PrepareBenchmarking(_ context.Context, kb *knowledge.Store, req Request, trace *Trace) (Preparation, error) {
	sections := map[string]string{}
	cases := MatchBenchmarks(kb, req.Message)
	if len(cases) > 0 {
		trace.Add("Matched %d benchmark case(s) by name", len(cases))
	} else {
		cases = kb.AllBenchmarks()
		trace.Add("No specific case named, using all %d benchmark cases", len(cases))
		if digest := kb.BenchmarksDigest(); digest != "" {
			sections["benchmarks_overview"] = digest
		}
	}

	blocks := make([]string, len(cases))
	names := make([]string, len(cases))
	for i, c := range cases {
		blocks[i] = knowledge.FormatBenchmark(c)
		names[i] = c.Name
	}
	sections["benchmark_data"] = strings.Join(blocks, "\n\n---\n\n")

	return Preparation{
		Message: fmt.Sprintf(`User request: %s

Use the benchmark case data provided in the context. Compare the cases where relevant, cite their key metrics, and close with lessons applicable to our celebration.`, req.Message),
		Context:  sections,
		Metadata: map[string]any{"benchmarks_used": names},
	}, nil
}

// MatchBenchmarks returns the cases whose name, alias, country, location or
// keywords appear in text, in store order.
func MatchBenchmarks(kb *knowledge.Store, text string) []knowledge.BenchmarkCase {
	lower := strutil.Normalize(text)
	var out []knowledge.BenchmarkCase
	for _, c := range kb.AllBenchmarks() {
		for _, term := range c.MatchTerms() {
			if strings.Contains(lower, term) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// categoryHint maps user vocabulary onto a KPI category name fragment.
type categoryHint struct {
	Category string
	Keywords []string
}

var kpiCategoryHints = []categoryHint{
	{Category: "attendance", Keywords: []string{"attendance", "participation", "visitor", "attendee", "footfall"}},
	{Category: "media", Keywords: []string{"media", "press", "coverage", "social", "digital", "reach"}},
	{Category: "economic", Keywords: []string{"economic", "economy", "revenue", "tourism", "investment", "spending"}},
	{Category: "satisfaction", Keywords: []string{"satisfaction", "survey", "experience", "sentiment"}},
	{Category: "delivery", Keywords: []string{"delivery", "operational", "schedule", "on time", "budget"}},
}

// MatchKPICategories returns the categories the text refers to, either by
// hint vocabulary or by naming the category directly.
func MatchKPICategories(kb *knowledge.Store, text string) []knowledge.KPICategory {
	lower := strutil.Normalize(text)
	var out []knowledge.KPICategory
	seen := map[string]bool{}
	add := func(c knowledge.KPICategory) {
		if !seen[c.Name] {
			seen[c.Name] = true
			out = append(out, c)
		}
	}

	categories := kb.KPICategories()
	for _, h := range kpiCategoryHints {
		if len(strutil.MatchedKeywords(lower, h.Keywords)) == 0 {
			continue
		}
		for _, c := range categories {
			if strutil.ContainsFold(c.Name, h.Category) {
				add(c)
			}
		}
	}
	for _, c := range categories {
		stem := strings.TrimSuffix(strutil.Normalize(c.Name), " kpis")
		if stem != "" && strings.Contains(lower, stem) {
			add(c)
		}
	}
	return out
}

// PrepareKPI feeds the matching KPI definitions, plus the celebration and
// an events overview, to the model. Without a category the library index
// is added so the answer can cover every category.
func PrepareKPI(_ context.Context, kb *knowledge.Store, req Request, trace *Trace) (Preparation, error) {
	index := ""
	categories := MatchKPICategories(kb, req.Message)
	if len(categories) > 0 {
		trace.Add("KPI categories inferred: %s", categoryNames(categories))
	} else {
		categories = kb.KPICategories()
		trace.Add("No category inferred, considering all %d KPI categories", len(categories))
		index = kb.KPIsDigest()
	}

	var library strings.Builder
	kpis := 0
	for _, c := range categories {
		library.WriteString(knowledge.FormatKPIs(c.Name, c.KPIs))
		library.WriteString("\n")
		kpis += len(c.KPIs)
	}

	sum := kb.EventsSummary()
	var overview strings.Builder
	fmt.Fprintf(&overview, "%d events", sum.TotalCount)
	for _, t := range knowledge.SortedByCount(sum.ByType) {
		fmt.Fprintf(&overview, "; %s: %d", t, sum.ByType[t])
	}

	sections := map[string]string{
		"celebration":     describeCelebration(kb.Celebration()),
		"events_overview": overview.String(),
		"kpi_library":     strings.TrimSpace(library.String()),
	}
	if index != "" {
		sections["kpi_index"] = index
	}

	return Preparation{
		Message: fmt.Sprintf(`User request: %s

Recommend KPIs using the library in the context. For each KPI give its definition, unit, measurement method, data source, frequency and a suggested target.`, req.Message),
		Context: sections,
		Metadata: map[string]any{
			"categories_analyzed": categoryNames(categories),
			"kpis_considered":     kpis,
		},
	}, nil
}

func categoryNames(cs []knowledge.KPICategory) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func describeCelebration(c knowledge.Celebration) string {
	if c.Name == "" {
		return knowledge.Unspecified
	}
	s := c.Name
	if c.Year > 0 {
		s += fmt.Sprintf(" (%d)", c.Year)
	}
	if c.DurationMonths > 0 {
		s += fmt.Sprintf(", %d months", c.DurationMonths)
	}
	if c.Theme != "" {
		s += ", theme: " + c.Theme
	}
	return s
}
