package knowledge

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoEvents is returned when an upload decodes but carries no event rows.
var ErrNoEvents = errors.New("knowledge: upload contains no events")

var columnAliases = map[string]string{
	"name":               "name",
	"event":              "name",
	"event_name":         "name",
	"responsible_org":    "organization",
	"organization":       "organization",
	"organisation":       "organization",
	"entity":             "organization",
	"description":        "description",
	"start_date":         "start_date",
	"start":              "start_date",
	"date":               "start_date",
	"end_date":           "end_date",
	"end":                "end_date",
	"duration":           "duration",
	"tier":               "tier",
	"event_type":         "type",
	"type":               "type",
	"category":           "type",
	"city":               "city",
	"inclusion_status":   "inclusion_status",
	"status":             "inclusion_status",
	"funding_note":       "funding_note",
	"funding":            "funding_note",
	"communication_note": "communication_note",
	"communication":      "communication_note",
}

func normalizeColumn(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func setField(e *Event, field, v string) {
	v = strings.TrimSpace(v)
	switch field {
	case "name":
		e.Name = v
	case "organization":
		e.Organization = v
	case "description":
		e.Description = v
	case "start_date":
		e.StartDate = v
	case "end_date":
		e.EndDate = v
	case "duration":
		e.Duration = v
	case "tier":
		e.Tier = v
	case "type":
		e.Type = v
	case "city":
		e.City = v
	case "inclusion_status":
		e.InclusionStatus = v
	case "funding_note":
		e.FundingNote = v
	case "communication_note":
		e.CommunicationNote = v
	}
}

// ParseEventsCSV reads events from a CSV document with a header row.
// Unknown columns are ignored; rows without any mapped value are skipped.
func ParseEventsCSV(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoEvents
	}
	if err != nil {
		return nil, fmt.Errorf("knowledge: read csv header: %w", err)
	}

	fields := make([]string, len(header))
	mapped := 0
	for i, h := range header {
		if f, ok := columnAliases[normalizeColumn(h)]; ok {
			fields[i] = f
			mapped++
		}
	}
	if mapped == 0 {
		return nil, fmt.Errorf("knowledge: csv header has no known event columns: %v", header)
	}

	var events []Event
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("knowledge: read csv row: %w", err)
		}
		var e Event
		filled := false
		for i, v := range rec {
			if i >= len(fields) || fields[i] == "" || strings.TrimSpace(v) == "" {
				continue
			}
			setField(&e, fields[i], v)
			filled = true
		}
		if filled {
			events = append(events, e)
		}
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	return events, nil
}

// ParseEventsJSON accepts either a bare array of events or an
// {"events": [...]} document.
func ParseEventsJSON(data []byte) ([]Event, error) {
	data = bytes.TrimSpace(data)
	var events []Event
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, fmt.Errorf("knowledge: decode events array: %w", err)
		}
	} else {
		var doc eventsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("knowledge: decode events document: %w", err)
		}
		events = doc.Events
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	return events, nil
}
