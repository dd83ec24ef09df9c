// Package search implements the record filter pipeline: an AND of
// independently-optional predicates evaluated over a snapshot of the
// record set.
package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chartlog/chartlog/internal/match"
	"github.com/chartlog/chartlog/internal/model"
)

// Criteria carries the optional search predicates. A zero value means no
// predicate is active.
type Criteria struct {
	// SerialNumber is matched exactly against the record's display serial
	// (1-based from the oldest). A leading '#' is stripped before comparison.
	SerialNumber string `json:"serialNumber,omitempty"`

	// Classification is an exact, case-insensitive classification match.
	Classification string `json:"classification,omitempty"`

	// NotesSubstring is a case-insensitive substring match against notes.
	// A record without notes never matches a non-empty query.
	NotesSubstring string `json:"notesSubstring,omitempty"`

	// Fields holds search values for the four identifying fields, matched
	// via match.FieldsMatch. Blank values are wildcards.
	Fields map[string]string `json:"fields,omitempty"`
}

// Empty reports whether no predicate is active.
func (c Criteria) Empty() bool {
	if c.SerialNumber != "" || c.Classification != "" || c.NotesSubstring != "" {
		return false
	}
	for _, v := range c.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Result pairs a matched record with its display serial so clients do not
// recompute ordering.
type Result struct {
	Record *model.Record `json:"record"`
	Serial int           `json:"serialNumber"`
}

// Run filters a snapshot of records against the criteria and returns matches
// newest first. Active predicates are ANDed. With no active predicate the
// result is always empty; search never silently dumps the full record set.
// The input slice and its records are not mutated.
func Run(records []*model.Record, c Criteria) []Result {
	if c.Empty() {
		return nil
	}

	newestFirst := make([]*model.Record, len(records))
	copy(newestFirst, records)
	sort.SliceStable(newestFirst, func(i, j int) bool {
		return newestFirst[i].Seq > newestFirst[j].Seq
	})

	wantSerial, serialActive, serialValid := parseSerial(c.SerialNumber)
	fieldCriteria := &model.Record{Fields: c.Fields}
	names := model.IdentifyingFieldNames()
	total := len(newestFirst)

	var out []Result
	for i, r := range newestFirst {
		serial := total - i
		if serialActive {
			if !serialValid || serial != wantSerial {
				continue
			}
		}
		if c.Classification != "" && !strings.EqualFold(c.Classification, string(r.Classification)) {
			continue
		}
		if c.NotesSubstring != "" {
			if r.Notes == "" || !strings.Contains(strings.ToUpper(r.Notes), strings.ToUpper(c.NotesSubstring)) {
				continue
			}
		}
		if !match.FieldsMatch(fieldCriteria, r, names) {
			continue
		}
		out = append(out, Result{Record: r, Serial: serial})
	}
	return out
}

// WithSerials orders a snapshot newest first and pairs every record with its
// display serial (oldest record is serial 1, newest is the total count).
func WithSerials(records []*model.Record) []Result {
	newestFirst := make([]*model.Record, len(records))
	copy(newestFirst, records)
	sort.SliceStable(newestFirst, func(i, j int) bool {
		return newestFirst[i].Seq > newestFirst[j].Seq
	})
	out := make([]Result, len(newestFirst))
	for i, r := range newestFirst {
		out[i] = Result{Record: r, Serial: len(newestFirst) - i}
	}
	return out
}

// parseSerial strips an optional leading '#' and parses the remainder. An
// active but unparsable serial matches nothing rather than failing the call.
func parseSerial(s string) (serial int, active, valid bool) {
	if s == "" {
		return 0, false, false
	}
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "#")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, true, false
	}
	return n, true, true
}
