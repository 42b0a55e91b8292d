package knowledge

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const notAvailable = "N/A"

// FormatMetric renders a key-metric value without exponent notation.
func FormatMetric(v any) string {
	switch x := v.(type) {
	case nil:
		return notAvailable
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case string:
		if x == "" {
			return notAvailable
		}
		return x
	default:
		return fmt.Sprint(x)
	}
}

// BenchmarksDigest is a short multi-case overview for broad prompts.
func (s *Store) BenchmarksDigest() string {
	var b strings.Builder
	for _, c := range s.data.Benchmarks {
		m := c.KeyMetrics
		fmt.Fprintf(&b, "### %s (%d) - %s\n", displayName(c), c.Year, c.Country)
		fmt.Fprintf(&b, "- Total events: %s\n", FormatMetric(m["total_events"]))
		fmt.Fprintf(&b, "- Visitors: %s\n", FormatMetric(m["total_visitors"]))
		fmt.Fprintf(&b, "- Economic impact (USD): %s\n", FormatMetric(m["economic_impact_usd"]))
		fmt.Fprintf(&b, "- Tourism increase: %s%%\n\n", FormatMetric(m["tourism_increase_percent"]))
	}
	return strings.TrimSpace(b.String())
}

// KPIsDigest lists each category with its KPI names.
func (s *Store) KPIsDigest() string {
	var b strings.Builder
	for _, c := range s.data.KPICategories {
		names := make([]string, len(c.KPIs))
		for i, k := range c.KPIs {
			names[i] = k.Name
		}
		fmt.Fprintf(&b, "### %s\nIndicators: %s\n\n", c.Name, strings.Join(names, ", "))
	}
	return strings.TrimSpace(b.String())
}

// FormatBenchmark renders one case in full for a prompt.
func FormatBenchmark(c BenchmarkCase) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", displayName(c))
	fmt.Fprintf(&b, "- Country: %s\n", orNA(c.Country))
	if c.Location != "" {
		fmt.Fprintf(&b, "- Location: %s\n", c.Location)
	}
	if c.Year != 0 {
		fmt.Fprintf(&b, "- Year: %d\n", c.Year)
	}
	fmt.Fprintf(&b, "- Duration: %s\n", orNA(c.Duration))

	if c.Overview.Summary != "" {
		fmt.Fprintf(&b, "\n### Overview\n%s\n", c.Overview.Summary)
	}
	if c.Overview.StrategicVision != "" {
		fmt.Fprintf(&b, "\n### Strategic vision\n%s\n", c.Overview.StrategicVision)
	}
	writeList(&b, "Objectives", c.Objectives)

	if len(c.KeyMetrics) > 0 {
		b.WriteString("\n### Key metrics\n")
		keys := make([]string, 0, len(c.KeyMetrics))
		for k := range c.KeyMetrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, FormatMetric(c.KeyMetrics[k]))
		}
	}

	writeList(&b, "Success factors", c.SuccessFactors)
	writeList(&b, "Lessons to adopt", c.Lessons.Adopt)
	writeList(&b, "Lessons to adapt", c.Lessons.Adapt)
	writeList(&b, "Pitfalls to avoid", c.Lessons.Avoid)
	writeList(&b, "Challenges", c.Challenges)
	if c.Legacy != "" {
		fmt.Fprintf(&b, "\n### Legacy\n%s\n", c.Legacy)
	}
	return b.String()
}

// FormatKPIs renders definitions under a category heading.
func FormatKPIs(category string, kpis []KPIDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", category)
	for _, k := range kpis {
		fmt.Fprintf(&b, "\n### %s\n", k.Name)
		if k.Definition != "" {
			fmt.Fprintf(&b, "- Definition: %s\n", k.Definition)
		}
		fmt.Fprintf(&b, "- Unit: %s\n", orNA(k.Unit))
		fmt.Fprintf(&b, "- Measurement: %s\n", orNA(k.MeasurementMethod))
		fmt.Fprintf(&b, "- Data source: %s\n", orNA(k.DataSource))
		fmt.Fprintf(&b, "- Frequency: %s\n", orNA(k.Frequency))
		fmt.Fprintf(&b, "- Target: %s\n", orNA(k.Target))
		if k.Benchmark != "" {
			fmt.Fprintf(&b, "- Benchmark: %s\n", k.Benchmark)
		}
	}
	return b.String()
}

func displayName(c BenchmarkCase) string {
	if c.NameEN != "" && c.NameEN != c.Name {
		return fmt.Sprintf("%s (%s)", c.Name, c.NameEN)
	}
	return c.Name
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
