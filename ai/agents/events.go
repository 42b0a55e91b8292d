package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hrygo/portfolioai/ai/knowledge"
)

// Limits on how much detail goes into a prompt.
const (
	maxIncompleteListed = 10
	maxItemsPerEntity   = 5
	maxIssuesListed     = 10
)

// PrepareDataAnalysis aggregates events into distribution tables.
func PrepareDataAnalysis(_ context.Context, kb *knowledge.Store, req Request, trace *Trace) (Preparation, error) {
	events := kb.AllEvents()
	trace.Add("Loaded %d events for analysis", len(events))

	sum := kb.EventsSummary()
	ct, err := kb.CrossTabulate(knowledge.DimensionCity, knowledge.DimensionTier)
	if err != nil {
		return Preparation{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Events Data Summary\n\n**Total events:** %d\n\n", sum.TotalCount)
	writeCountTable(&b, "By Responsible Organization", "Organization", sum.ByOrganization, sum.TotalCount)
	writeCountTable(&b, "By Event Type", "Type", sum.ByType, sum.TotalCount)
	writeCountTable(&b, "By City", "City", sum.ByCity, sum.TotalCount)
	writeCountTable(&b, "By Tier", "Tier", sum.ByTier, sum.TotalCount)
	writeCountTable(&b, "By Inclusion Status", "Status", sum.ByInclusionStatus, sum.TotalCount)
	writeCrossTab(&b, "City by Tier", ct)

	var incomplete []string
	for _, e := range events {
		if missing := MissingFields(e, RequiredFields); len(missing) > 0 {
			incomplete = append(incomplete, fmt.Sprintf("- %s: missing %s", nameOf(e), strings.Join(missing, ", ")))
		}
	}
	if len(incomplete) > 0 {
		fmt.Fprintf(&b, "### Events with incomplete data (%d)\n\n", len(incomplete))
		b.WriteString(strings.Join(incomplete[:min(len(incomplete), maxIncompleteListed)], "\n"))
		if len(incomplete) > maxIncompleteListed {
			fmt.Fprintf(&b, "\n- ... and %d more", len(incomplete)-maxIncompleteListed)
		}
		b.WriteString("\n")
	}
	trace.Add("Statistics computed: %d cities, %d tiers, %d incomplete records", len(sum.ByCity), len(sum.ByTier), len(incomplete))

	return Preparation{
		Message: fmt.Sprintf("User request: %s\n\nAvailable data for analysis:\n%s\nProvide a comprehensive analysis based on this data and the user's request.",
			req.Message, b.String()),
		Metadata: map[string]any{
			"analysis_type":   "events_data",
			"events_analyzed": len(events),
		},
	}, nil
}

// FollowUpItem is one event that needs more information.
type FollowUpItem struct {
	Event   string   `json:"event"`
	Missing []string `json:"missing"`
}

// EntityFollowUp groups follow-up items by responsible organization.
type EntityFollowUp struct {
	Entity string         `json:"entity"`
	Events int            `json:"events"`
	Items  []FollowUpItem `json:"items"`
}

// MissingByEntity lists, for every responsible organization, the events
// lacking any follow-up field. Entities come out in name order.
func MissingByEntity(events []knowledge.Event) []EntityFollowUp {
	byEntity := map[string]*EntityFollowUp{}
	for _, e := range events {
		entity := e.Bucket(knowledge.DimensionOrganization)
		ef := byEntity[entity]
		if ef == nil {
			ef = &EntityFollowUp{Entity: entity}
			byEntity[entity] = ef
		}
		ef.Events++
		if missing := MissingFields(e, FollowUpFields); len(missing) > 0 {
			ef.Items = append(ef.Items, FollowUpItem{Event: nameOf(e), Missing: missing})
		}
	}
	out := make([]EntityFollowUp, 0, len(byEntity))
	for _, ef := range byEntity {
		out = append(out, *ef)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entity < out[j].Entity })
	return out
}

// FormatMissingReport renders follow-up needs per entity.
func FormatMissingReport(entries []EntityFollowUp) string {
	var b strings.Builder
	b.WriteString("## Missing Information Report\n\n")
	for _, ef := range entries {
		fmt.Fprintf(&b, "### %s\n", ef.Entity)
		if len(ef.Items) == 0 {
			b.WriteString("All data complete\n\n")
			continue
		}
		fmt.Fprintf(&b, "**%d of %d events need completion:**\n\n", len(ef.Items), ef.Events)
		for _, it := range ef.Items[:min(len(ef.Items), maxItemsPerEntity)] {
			fmt.Fprintf(&b, "- **%s**\n  - Missing fields: %s\n", it.Event, strings.Join(it.Missing, ", "))
		}
		if len(ef.Items) > maxItemsPerEntity {
			fmt.Fprintf(&b, "\n  *and %d more events...*\n", len(ef.Items)-maxItemsPerEntity)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func entitiesNeedingFollowUp(entries []EntityFollowUp) int {
	n := 0
	for _, ef := range entries {
		if len(ef.Items) > 0 {
			n++
		}
	}
	return n
}

// PrepareFollowUp builds the missing-information report.
func PrepareFollowUp(_ context.Context, kb *knowledge.Store, req Request, trace *Trace) (Preparation, error) {
	trace.Add("Identifying missing information...")
	entries := MissingByEntity(kb.AllEvents())
	needing := entitiesNeedingFollowUp(entries)
	trace.Add("Missing information identified for %d of %d entities", needing, len(entries))

	return Preparation{
		Message: fmt.Sprintf(`User request: %s

Current Missing Information Report:
%s
Based on this data, please:
1. Summarize the current status
2. Prioritize follow-ups
3. Draft professional follow-up messages for entities that need data completion`, req.Message, FormatMissingReport(entries)),
		Metadata: map[string]any{"entities_needing_followup": needing},
	}, nil
}

// EntityCompletion is the completion rate of one organization.
type EntityCompletion struct {
	Entity   string  `json:"entity"`
	Total    int     `json:"total"`
	Complete int     `json:"complete"`
	Rate     float64 `json:"rate"`
}

// CompletionStats summarises how many events have every required field.
type CompletionStats struct {
	Total    int                `json:"total"`
	Complete int                `json:"complete"`
	Rate     float64            `json:"rate"`
	ByStatus map[string]int     `json:"by_status"`
	ByEntity []EntityCompletion `json:"by_entity"`
}

// ComputeCompletion counts complete events overall, per inclusion status and per entity.
func ComputeCompletion(events []knowledge.Event) CompletionStats {
	stats := CompletionStats{Total: len(events), ByStatus: map[string]int{}}
	byEntity := map[string]*EntityCompletion{}
	for _, e := range events {
		stats.ByStatus[e.Bucket(knowledge.DimensionInclusionStatus)]++
		entity := e.Bucket(knowledge.DimensionOrganization)
		ec := byEntity[entity]
		if ec == nil {
			ec = &EntityCompletion{Entity: entity}
			byEntity[entity] = ec
		}
		ec.Total++
		if len(MissingFields(e, RequiredFields)) == 0 {
			ec.Complete++
			stats.Complete++
		}
	}
	for _, ec := range byEntity {
		ec.Rate = percent(ec.Complete, ec.Total)
		stats.ByEntity = append(stats.ByEntity, *ec)
	}
	sort.Slice(stats.ByEntity, func(i, j int) bool { return stats.ByEntity[i].Entity < stats.ByEntity[j].Entity })
	stats.Rate = percent(stats.Complete, stats.Total)
	return stats
}

// PrepareReporting compiles completion statistics for an executive brief.
func PrepareReporting(_ context.Context, kb *knowledge.Store, req Request, trace *Trace) (Preparation, error) {
	trace.Add("Compiling status data...")
	stats := ComputeCompletion(kb.AllEvents())

	var b strings.Builder
	fmt.Fprintf(&b, "## Current Status\n\n- Total events: %d\n- Complete records: %d\n- Completion rate: %.0f%%\n\n",
		stats.Total, stats.Complete, stats.Rate)
	writeCountTable(&b, "By Inclusion Status", "Status", stats.ByStatus, stats.Total)
	b.WriteString("### By Responsible Organization\n\n| Organization | Events | Complete | Rate |\n|---|---|---|---|\n")
	for _, ec := range stats.ByEntity {
		fmt.Fprintf(&b, "| %s | %d | %d | %.0f%% |\n", ec.Entity, ec.Total, ec.Complete, ec.Rate)
	}
	trace.Add("Completion rate %.0f%% across %d events", stats.Rate, stats.Total)

	return Preparation{
		Message: fmt.Sprintf("User request: %s\n\nStatus data:\n%s\nPrepare a professional report for the oversight committee based on this data.", req.Message, b.String()),
		Metadata: map[string]any{
			"completion_rate": stats.Rate,
			"total_events":    stats.Total,
		},
	}, nil
}

// FormatQualityReport renders entity scores and the first issues.
func FormatQualityReport(r QualityReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Data Quality Assessment\n\n- Total events: %d\n- Overall score: %.0f%% (%s)\n\n",
		r.TotalEvents, r.OverallScore, r.OverallGrade.Label())
	b.WriteString("### By Responsible Organization\n\n| Organization | Events | Complete | Score | Grade | Issues |\n|---|---|---|---|---|---|\n")
	for _, eq := range r.Entities {
		fmt.Fprintf(&b, "| %s | %d | %d | %.0f%% | %s | %d |\n", eq.Entity, eq.Total, eq.Complete, eq.Score, eq.Grade.Label(), eq.Issues)
	}
	if len(r.Issues) > 0 {
		fmt.Fprintf(&b, "\n### Issues (%d)\n\n", len(r.Issues))
		for _, is := range r.Issues[:min(len(r.Issues), maxIssuesListed)] {
			fmt.Fprintf(&b, "- [%s] %s (%s): %s - %s\n", is.Severity, is.Event, is.Entity, is.Type, is.Details)
		}
		if len(r.Issues) > maxIssuesListed {
			fmt.Fprintf(&b, "- ... and %d more\n", len(r.Issues)-maxIssuesListed)
		}
	}
	return b.String()
}

// PrepareQualityCheck grades data completeness per entity.
func PrepareQualityCheck(_ context.Context, kb *knowledge.Store, req Request, trace *Trace) (Preparation, error) {
	trace.Add("Checking data quality...")
	report := AssessQuality(kb.AllEvents())
	trace.Add("Assessed %d entities, found %d issues", len(report.Entities), len(report.Issues))

	return Preparation{
		Message: fmt.Sprintf("User request: %s\n\nQuality check results:\n%s\nBased on these results, explain the quality status and recommend concrete fixes.", req.Message, FormatQualityReport(report)),
		Metadata: map[string]any{
			"overall_score": report.OverallScore,
			"issues_found":  len(report.Issues),
		},
	}, nil
}

func nameOf(e knowledge.Event) string {
	if isBlank(e.Name) {
		return "Unnamed"
	}
	return e.Name
}
