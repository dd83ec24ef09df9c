// Package match defines record identity for duplicate detection and field
// search, independent of classification and notes.
package match

import (
	"strings"

	"github.com/chartlog/chartlog/internal/model"
)

// keyDelimiter separates key segments. The unit separator cannot appear in
// hand-entered field values, so distinct field tuples never collide.
const keyDelimiter = "\x1f"

// CompositeKey derives the dedup/search identity of a record from its four
// identifying fields (intro combination, candle, open value, close value).
// Segments are upper-cased so keys compare case-insensitively; internal
// whitespace is preserved, so "CG UP" and "CG  UP" are distinct keys. Empty
// fields contribute empty segments rather than an error.
func CompositeKey(r *model.Record) string {
	names := model.IdentifyingFieldNames()
	segs := make([]string, len(names))
	for i, name := range names {
		segs[i] = strings.ToUpper(r.Field(name))
	}
	return strings.Join(segs, keyDelimiter)
}

// FieldsMatch reports whether candidate satisfies the search values in
// criteria for the given field names. The contract is asymmetric: a field
// with an empty search value is a wildcard and always matches, while a
// non-empty search value must equal the candidate's field case-insensitively.
// Empty candidate fields are a distinct matchable value, not "any".
func FieldsMatch(criteria, candidate *model.Record, names []string) bool {
	for _, name := range names {
		want := criteria.Field(name)
		if want == "" {
			continue
		}
		if !strings.EqualFold(want, candidate.Field(name)) {
			return false
		}
	}
	return true
}
