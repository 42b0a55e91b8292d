// Package knowledge holds the read-only reference records (events, benchmark
// cases, KPI definitions and organizations) that specialists draw context from.
package knowledge

import (
	"slices"
	"strings"
)

// Dataset is the raw content a Store is built from.
type Dataset struct {
	Celebration   Celebration
	Events        []Event
	Benchmarks    []BenchmarkCase
	KPICategories []KPICategory
	Organizations []Organization
}

// Store is an immutable in-memory view over a Dataset.
// It is safe for concurrent readers; nothing mutates it after construction.
type Store struct {
	data Dataset
}

// NewStore builds a store over a copy of the dataset slices.
func NewStore(data Dataset) *Store {
	return &Store{data: Dataset{
		Celebration:   data.Celebration,
		Events:        slices.Clone(data.Events),
		Benchmarks:    slices.Clone(data.Benchmarks),
		KPICategories: slices.Clone(data.KPICategories),
		Organizations: slices.Clone(data.Organizations),
	}}
}

// Empty returns a store with no records.
func Empty() *Store {
	return &Store{}
}

// WithSupplementary returns a new store whose events are the receiver's
// events followed by extra. Every other record set is shared.
func (s *Store) WithSupplementary(extra []Event) *Store {
	if len(extra) == 0 {
		return s
	}
	events := make([]Event, 0, len(s.data.Events)+len(extra))
	events = append(events, s.data.Events...)
	events = append(events, extra...)
	out := &Store{data: s.data}
	out.data.Events = events
	return out
}

// Celebration returns the umbrella programme header.
func (s *Store) Celebration() Celebration {
	return s.data.Celebration
}

// ==================== Events ====================

// AllEvents returns every loaded event.
func (s *Store) AllEvents() []Event {
	return slices.Clone(s.data.Events)
}

// EventsByCity returns events whose city equals city.
func (s *Store) EventsByCity(city string) []Event {
	return s.filterEvents(func(e Event) bool { return e.City == city })
}

// EventsByTier returns events of the given tier.
func (s *Store) EventsByTier(tier string) []Event {
	return s.filterEvents(func(e Event) bool { return e.Tier == tier })
}

// EventsByType returns events of the given type.
func (s *Store) EventsByType(eventType string) []Event {
	return s.filterEvents(func(e Event) bool { return e.Type == eventType })
}

// EventsByOrganization returns events whose responsible organization
// contains partialName, ignoring case. An empty name matches nothing.
func (s *Store) EventsByOrganization(partialName string) []Event {
	needle := strings.ToLower(strings.TrimSpace(partialName))
	if needle == "" {
		return nil
	}
	return s.filterEvents(func(e Event) bool {
		return strings.Contains(strings.ToLower(e.Organization), needle)
	})
}

// EventsByInclusionStatus returns events with the given status.
func (s *Store) EventsByInclusionStatus(status InclusionStatus) []Event {
	want := NormalizeInclusionStatus(string(status))
	return s.filterEvents(func(e Event) bool {
		return e.InclusionStatus != "" && NormalizeInclusionStatus(e.InclusionStatus) == want
	})
}

func (s *Store) filterEvents(keep func(Event) bool) []Event {
	var out []Event
	for _, e := range s.data.Events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// ==================== Benchmarks ====================

// AllBenchmarks returns every benchmark case.
func (s *Store) AllBenchmarks() []BenchmarkCase {
	return slices.Clone(s.data.Benchmarks)
}

// BenchmarkByID looks a case up by its identifier.
func (s *Store) BenchmarkByID(id string) (BenchmarkCase, bool) {
	for _, b := range s.data.Benchmarks {
		if b.ID == id {
			return b, true
		}
	}
	return BenchmarkCase{}, false
}

// BenchmarkByName returns the first case whose name or English alias contains partialName.
func (s *Store) BenchmarkByName(partialName string, caseInsensitive bool) (BenchmarkCase, bool) {
	fold := func(v string) string { return v }
	if caseInsensitive {
		fold = strings.ToLower
	}
	needle := fold(partialName)
	for _, b := range s.data.Benchmarks {
		if strings.Contains(fold(b.Name), needle) || strings.Contains(fold(b.NameEN), needle) {
			return b, true
		}
	}
	return BenchmarkCase{}, false
}

// SearchBenchmarks returns cases whose name, alias, country or summary contains query, ignoring case.
func (s *Store) SearchBenchmarks(query string) []BenchmarkCase {
	q := strings.ToLower(query)
	var out []BenchmarkCase
	for _, b := range s.data.Benchmarks {
		for _, field := range []string{b.Name, b.NameEN, b.Country, b.Overview.Summary} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// ==================== KPIs ====================

// KPICategories returns every KPI category.
func (s *Store) KPICategories() []KPICategory {
	return slices.Clone(s.data.KPICategories)
}

// KPIsByCategory returns the KPIs of the first category whose name contains
// categoryName, ignoring case. Nil when nothing matches.
func (s *Store) KPIsByCategory(categoryName string) []KPIDefinition {
	needle := strings.ToLower(categoryName)
	for _, c := range s.data.KPICategories {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return slices.Clone(c.KPIs)
		}
	}
	return nil
}

// AllKPIs flattens every category, tagging each KPI with its category.
func (s *Store) AllKPIs() []CategorizedKPI {
	var out []CategorizedKPI
	for _, c := range s.data.KPICategories {
		for _, k := range c.KPIs {
			out = append(out, CategorizedKPI{KPIDefinition: k, CategoryID: c.ID, CategoryName: c.Name})
		}
	}
	return out
}

// ==================== Organizations ====================

// AllOrganizations returns every organization.
func (s *Store) AllOrganizations() []Organization {
	return slices.Clone(s.data.Organizations)
}

// OrganizationByName returns the first organization whose name or alias contains partialName, ignoring case.
func (s *Store) OrganizationByName(partialName string) (Organization, bool) {
	needle := strings.ToLower(strings.TrimSpace(partialName))
	if needle == "" {
		return Organization{}, false
	}
	for _, o := range s.data.Organizations {
		if strings.Contains(strings.ToLower(o.Name), needle) || strings.Contains(strings.ToLower(o.NameEN), needle) {
			return o, true
		}
	}
	return Organization{}, false
}

// OrganizationsByType returns organizations of the given classification.
func (s *Store) OrganizationsByType(orgType string) []Organization {
	var out []Organization
	for _, o := range s.data.Organizations {
		if o.Type == orgType {
			out = append(out, o)
		}
	}
	return out
}
