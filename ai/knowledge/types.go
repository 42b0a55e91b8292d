package knowledge

import (
	"fmt"
	"strings"
)

// Unspecified buckets events that carry no value for a dimension.
const Unspecified = "Unspecified"

// InclusionStatus tells whether an event counts toward the official tally.
type InclusionStatus string

const (
	StatusIncluded                InclusionStatus = "included"
	StatusExcluded                InclusionStatus = "excluded"
	StatusCountedWithoutInclusion InclusionStatus = "counted_without_inclusion"
)

// NormalizeInclusionStatus folds case, spaces and dashes so that
// "Counted-without inclusion" and "counted_without_inclusion" compare equal.
func NormalizeInclusionStatus(s string) InclusionStatus {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return InclusionStatus(s)
}

// Event is one planned occurrence in the portfolio.
type Event struct {
	ID                string `json:"id,omitempty" yaml:"id,omitempty"`
	Name              string `json:"name" yaml:"name"`
	Organization      string `json:"responsible_org" yaml:"responsible_org"`
	Description       string `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate         string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate           string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Duration          string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Tier              string `json:"tier,omitempty" yaml:"tier,omitempty"`
	Type              string `json:"event_type,omitempty" yaml:"event_type,omitempty"`
	City              string `json:"city,omitempty" yaml:"city,omitempty"`
	InclusionStatus   string `json:"inclusion_status,omitempty" yaml:"inclusion_status,omitempty"`
	FundingNote       string `json:"funding_note,omitempty" yaml:"funding_note,omitempty"`
	CommunicationNote string `json:"communication_note,omitempty" yaml:"communication_note,omitempty"`
}

// Dimension names an event attribute used for grouping.
type Dimension string

const (
	DimensionCity            Dimension = "city"
	DimensionTier            Dimension = "tier"
	DimensionType            Dimension = "type"
	DimensionInclusionStatus Dimension = "inclusion_status"
	DimensionOrganization    Dimension = "organization"
)

// Dimensions lists every groupable dimension.
var Dimensions = []Dimension{
	DimensionCity,
	DimensionTier,
	DimensionType,
	DimensionInclusionStatus,
	DimensionOrganization,
}

// ParseDimension accepts a dimension name and a few common aliases.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "city", "cities":
		return DimensionCity, nil
	case "tier", "tiers":
		return DimensionTier, nil
	case "type", "event_type", "category":
		return DimensionType, nil
	case "inclusion_status", "inclusion", "status":
		return DimensionInclusionStatus, nil
	case "organization", "org", "responsible_org", "entity":
		return DimensionOrganization, nil
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// Value returns the event's raw value for d, or "" when unset or d is unknown.
func (e Event) Value(d Dimension) string {
	switch d {
	case DimensionCity:
		return e.City
	case DimensionTier:
		return e.Tier
	case DimensionType:
		return e.Type
	case DimensionInclusionStatus:
		if e.InclusionStatus == "" {
			return ""
		}
		return string(NormalizeInclusionStatus(e.InclusionStatus))
	case DimensionOrganization:
		return e.Organization
	}
	return ""
}

// Bucket is Value with empty values mapped to Unspecified.
func (e Event) Bucket(d Dimension) string {
	if v := strings.TrimSpace(e.Value(d)); v != "" {
		return v
	}
	return Unspecified
}

// Celebration is the umbrella programme the events belong to.
type Celebration struct {
	Name           string `json:"name" yaml:"name"`
	Year           int    `json:"year,omitempty" yaml:"year,omitempty"`
	DurationMonths int    `json:"duration_months,omitempty" yaml:"duration_months,omitempty"`
	Theme          string `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// Overview is the narrative part of a benchmark case.
type Overview struct {
	Summary         string `json:"summary,omitempty" yaml:"summary,omitempty"`
	StrategicVision string `json:"strategic_vision,omitempty" yaml:"strategic_vision,omitempty"`
}

// Lessons groups benchmark learnings by what to do with them.
type Lessons struct {
	Adopt []string `json:"adopt,omitempty" yaml:"adopt,omitempty"`
	Adapt []string `json:"adapt,omitempty" yaml:"adapt,omitempty"`
	Avoid []string `json:"avoid,omitempty" yaml:"avoid,omitempty"`
}

// BenchmarkCase is an international precedent used for comparison.
type BenchmarkCase struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	NameEN         string         `json:"name_en,omitempty" yaml:"name_en,omitempty"`
	Country        string         `json:"country,omitempty" yaml:"country,omitempty"`
	Location       string         `json:"location,omitempty" yaml:"location,omitempty"`
	Year           int            `json:"year,omitempty" yaml:"year,omitempty"`
	Duration       string         `json:"duration,omitempty" yaml:"duration,omitempty"`
	Keywords       []string       `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Overview       Overview       `json:"overview" yaml:"overview"`
	Objectives     []string       `json:"objectives,omitempty" yaml:"objectives,omitempty"`
	SuccessFactors []string       `json:"success_factors,omitempty" yaml:"success_factors,omitempty"`
	KeyMetrics     map[string]any `json:"key_metrics,omitempty" yaml:"key_metrics,omitempty"`
	Lessons        Lessons        `json:"lessons_learned" yaml:"lessons_learned"`
	Challenges     []string       `json:"challenges,omitempty" yaml:"challenges,omitempty"`
	Legacy         string         `json:"legacy,omitempty" yaml:"legacy,omitempty"`
}

// MatchTerms returns the lower-cased names a user might mention to refer to the case.
func (b BenchmarkCase) MatchTerms() []string {
	terms := make([]string, 0, 4+len(b.Keywords))
	for _, t := range append([]string{b.Name, b.NameEN, b.Country, b.Location}, b.Keywords...) {
		if t = strings.ToLower(strings.TrimSpace(t)); len(t) >= 3 {
			terms = append(terms, t)
		}
	}
	return terms
}

// KPIDefinition describes one measurable indicator.
type KPIDefinition struct {
	ID                string `json:"id,omitempty" yaml:"id,omitempty"`
	Name              string `json:"name" yaml:"name"`
	Definition        string `json:"definition,omitempty" yaml:"definition,omitempty"`
	Unit              string `json:"unit,omitempty" yaml:"unit,omitempty"`
	MeasurementMethod string `json:"measurement_method,omitempty" yaml:"measurement_method,omitempty"`
	DataSource        string `json:"data_source,omitempty" yaml:"data_source,omitempty"`
	Frequency         string `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Target            string `json:"target,omitempty" yaml:"target,omitempty"`
	Benchmark         string `json:"benchmark,omitempty" yaml:"benchmark,omitempty"`
}

// KPICategory is a named bucket of KPI definitions.
type KPICategory struct {
	ID   string          `json:"id" yaml:"id"`
	Name string          `json:"name" yaml:"name"`
	KPIs []KPIDefinition `json:"kpis" yaml:"kpis"`
}

// CategorizedKPI is a KPI flattened out of its category.
type CategorizedKPI struct {
	KPIDefinition `yaml:",inline"`
	CategoryID    string `json:"category_id" yaml:"category_id"`
	CategoryName  string `json:"category_name" yaml:"category_name"`
}

// Organization is an entity responsible for events.
type Organization struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	NameEN      string `json:"name_en,omitempty" yaml:"name_en,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	ContactCity string `json:"contact_city,omitempty" yaml:"contact_city,omitempty"`
}
