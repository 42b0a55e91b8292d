package knowledge

import (
	"fmt"
	"sort"
)

// Summary counts events along every grouping dimension.
// For each dimension the counts sum to TotalCount.
type Summary struct {
	TotalCount        int            `json:"total_count"`
	ByCity            map[string]int `json:"by_city"`
	ByTier            map[string]int `json:"by_tier"`
	ByType            map[string]int `json:"by_type"`
	ByInclusionStatus map[string]int `json:"by_inclusion_status"`
	ByOrganization    map[string]int `json:"by_organization"`
}

// Dimension returns the counts for d, or nil for an unknown dimension.
func (s Summary) Dimension(d Dimension) map[string]int {
	switch d {
	case DimensionCity:
		return s.ByCity
	case DimensionTier:
		return s.ByTier
	case DimensionType:
		return s.ByType
	case DimensionInclusionStatus:
		return s.ByInclusionStatus
	case DimensionOrganization:
		return s.ByOrganization
	}
	return nil
}

// EventsSummary aggregates all events. Missing values land in Unspecified.
func (s *Store) EventsSummary() Summary {
	sum := Summary{
		TotalCount:        len(s.data.Events),
		ByCity:            map[string]int{},
		ByTier:            map[string]int{},
		ByType:            map[string]int{},
		ByInclusionStatus: map[string]int{},
		ByOrganization:    map[string]int{},
	}
	for _, e := range s.data.Events {
		for _, d := range Dimensions {
			sum.Dimension(d)[e.Bucket(d)]++
		}
	}
	return sum
}

// CrossTab is a two-dimensional count of events.
type CrossTab struct {
	Rows      Dimension                 `json:"rows"`
	Columns   Dimension                 `json:"columns"`
	Counts    map[string]map[string]int `json:"counts"`
	RowTotals map[string]int            `json:"row_totals"`
}

// CrossTabulate counts events by rows × cols. It is recomputed on every call.
func (s *Store) CrossTabulate(rows, cols Dimension) (*CrossTab, error) {
	for _, d := range []Dimension{rows, cols} {
		if !validDimension(d) {
			return nil, fmt.Errorf("unknown dimension %q", d)
		}
	}
	ct := &CrossTab{
		Rows:      rows,
		Columns:   cols,
		Counts:    map[string]map[string]int{},
		RowTotals: map[string]int{},
	}
	for _, e := range s.data.Events {
		r, c := e.Bucket(rows), e.Bucket(cols)
		if ct.Counts[r] == nil {
			ct.Counts[r] = map[string]int{}
		}
		ct.Counts[r][c]++
		ct.RowTotals[r]++
	}
	return ct, nil
}

// RowValues lists row keys by descending total, then name.
func (c *CrossTab) RowValues() []string {
	return SortedByCount(c.RowTotals)
}

// ColumnValues lists every observed column key in name order.
func (c *CrossTab) ColumnValues() []string {
	seen := map[string]struct{}{}
	for _, row := range c.Counts {
		for col := range row {
			seen[col] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for col := range seen {
		out = append(out, col)
	}
	sort.Strings(out)
	return out
}

// SortedByCount returns the keys of counts ordered by descending count, ties by key.
func SortedByCount(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func validDimension(d Dimension) bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}
