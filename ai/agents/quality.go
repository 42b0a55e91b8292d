package agent

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hrygo/portfolioai/ai/knowledge"
)

// Grade is the four-tier quality classification of a completeness score.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeAverage   Grade = "average"
	GradePoor      Grade = "poor"
)

// GradeFor maps a percentage score to a grade. Boundaries belong to the upper tier.
func GradeFor(score float64) Grade {
	switch {
	case score >= 90:
		return GradeExcellent
	case score >= 70:
		return GradeGood
	case score >= 50:
		return GradeAverage
	default:
		return GradePoor
	}
}

// Label returns the display form of g.
func (g Grade) Label() string {
	if g == "" {
		return ""
	}
	return strings.ToUpper(string(g[:1])) + string(g[1:])
}

// Field is one checked event attribute.
type Field struct {
	Key   string
	Label string
	get   func(knowledge.Event) string
}

// RequiredFields must be filled for an event to count as complete.
var RequiredFields = []Field{
	{"name", "Event Name", func(e knowledge.Event) string { return e.Name }},
	{"responsible_org", "Responsible Organization", func(e knowledge.Event) string { return e.Organization }},
	{"start_date", "Start Date", func(e knowledge.Event) string { return e.StartDate }},
	{"city", "City", func(e knowledge.Event) string { return e.City }},
	{"tier", "Tier", func(e knowledge.Event) string { return e.Tier }},
	{"event_type", "Event Type", func(e knowledge.Event) string { return e.Type }},
	{"inclusion_status", "Inclusion Status", func(e knowledge.Event) string { return e.InclusionStatus }},
}

// OptionalFields improve completeness but do not block it.
var OptionalFields = []Field{
	{"end_date", "End Date", func(e knowledge.Event) string { return e.EndDate }},
	{"duration", "Duration", func(e knowledge.Event) string { return e.Duration }},
	{"description", "Description", func(e knowledge.Event) string { return e.Description }},
	{"funding_note", "Funding Note", func(e knowledge.Event) string { return e.FundingNote }},
	{"communication_note", "Communication Note", func(e knowledge.Event) string { return e.CommunicationNote }},
}

// FollowUpFields are the attributes entities are chased for.
var FollowUpFields = append(append([]Field{}, RequiredFields...), OptionalFields[2:]...)

// completeThreshold is the completeness at which an event counts as complete.
const completeThreshold = 0.9

func isBlank(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unspecified", "n/a", "tbd", "-":
		return true
	}
	return false
}

// MissingFields returns the labels of fields that are blank on e.
func MissingFields(e knowledge.Event, fields []Field) []string {
	var missing []string
	for _, f := range fields {
		if isBlank(f.get(e)) {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// Completeness is the share of required and optional fields filled on e, in [0, 1].
func Completeness(e knowledge.Event) float64 {
	total := len(RequiredFields) + len(OptionalFields)
	missing := len(MissingFields(e, RequiredFields)) + len(MissingFields(e, OptionalFields))
	return float64(total-missing) / float64(total)
}

// Severity of a quality issue.
const (
	SeverityHigh   = "High"
	SeverityMedium = "Medium"
)

// maxDurationDays is the longest plausible single-event duration.
const maxDurationDays = 365

// QualityIssue is one problem found on an event.
type QualityIssue struct {
	Event    string `json:"event"`
	Entity   string `json:"entity"`
	Type     string `json:"type"`
	Details  string `json:"details"`
	Severity string `json:"severity"`
}

// EntityQuality scores the events of one responsible organization.
type EntityQuality struct {
	Entity   string  `json:"entity"`
	Total    int     `json:"total"`
	Complete int     `json:"complete"`
	Score    float64 `json:"score"`
	Grade    Grade   `json:"grade"`
	Issues   int     `json:"issues"`
}

// QualityReport is the quality assessment of an event set.
type QualityReport struct {
	TotalEvents  int             `json:"total_events"`
	Entities     []EntityQuality `json:"entities"`
	Issues       []QualityIssue  `json:"issues"`
	OverallScore float64         `json:"overall_score"`
	OverallGrade Grade           `json:"overall_grade"`
}

// AssessQuality scores each entity by the share of its events that are
// complete and lists missing-field and implausible-duration issues.
func AssessQuality(events []knowledge.Event) QualityReport {
	report := QualityReport{TotalEvents: len(events)}
	byEntity := map[string]*EntityQuality{}
	complete := 0

	for _, e := range events {
		entity := e.Bucket(knowledge.DimensionOrganization)
		eq := byEntity[entity]
		if eq == nil {
			eq = &EntityQuality{Entity: entity}
			byEntity[entity] = eq
		}
		eq.Total++
		if Completeness(e) >= completeThreshold {
			eq.Complete++
			complete++
		}

		name := nameOf(e)
		if missing := MissingFields(e, RequiredFields); len(missing) > 0 {
			report.Issues = append(report.Issues, QualityIssue{
				Event:    name,
				Entity:   entity,
				Type:     "Missing required fields",
				Details:  strings.Join(missing, ", "),
				Severity: SeverityHigh,
			})
			eq.Issues++
		}
		if days, ok := DurationDays(e.Duration); ok && days > maxDurationDays {
			report.Issues = append(report.Issues, QualityIssue{
				Event:    name,
				Entity:   entity,
				Type:     "Unrealistic value",
				Details:  fmt.Sprintf("Duration too long: %s", e.Duration),
				Severity: SeverityMedium,
			})
			eq.Issues++
		}
	}

	for _, eq := range byEntity {
		eq.Score = percent(eq.Complete, eq.Total)
		eq.Grade = GradeFor(eq.Score)
		report.Entities = append(report.Entities, *eq)
	}
	sort.Slice(report.Entities, func(i, j int) bool {
		return report.Entities[i].Entity < report.Entities[j].Entity
	})

	report.OverallScore = percent(complete, len(events))
	report.OverallGrade = GradeFor(report.OverallScore)
	return report
}

var durationPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s*(?:(day|week|month|year)s?)?\s*$`)

// DurationDays parses durations such as "3 days", "2 weeks" or "14".
// A bare number is read as days.
func DurationDays(s string) (int, bool) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "week":
		n *= 7
	case "month":
		n *= 30
	case "year":
		n *= 365
	}
	return n, true
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
