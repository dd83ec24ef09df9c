package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/chartlog/chartlog/internal/model"
)

// fieldColumns maps canonical field names to their snake_case row columns.
// The row shape mirrors every record field one-to-one.
var fieldColumns = map[string]string{
	model.FieldIntro:              "intro",
	model.FieldPrimaryDirection:   "primary_direction",
	model.FieldSecondaryDirection: "secondary_direction",
	model.FieldCandle:             "candle",
	model.FieldOpenA:              "open_a",
	model.FieldCloseA:             "close_a",
	model.FieldOpenB:              "open_b",
	model.FieldCloseB:             "close_b",
	model.FieldSupport:            "support",
	model.FieldResistance:         "resistance",
	model.FieldOGDirectionOne:     "og_direction_one",
	model.FieldOGDirectionTwo:     "og_direction_two",
	model.FieldOGDirectionThree:   "og_direction_three",
	model.FieldOGDirectionFour:    "og_direction_four",
	model.FieldOGCandle:           "og_candle",
	model.FieldOGOpen:             "og_open",
	model.FieldOGClose:            "og_close",
}

// FieldColumns returns the observation field columns in canonical order.
func FieldColumns() []string {
	names := model.FieldNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fieldColumns[n]
	}
	return out
}

// RecordColumns returns every column read and written for a record row, in
// the order RecordValues produces and ScanRecord consumes.
func RecordColumns() []string {
	cols := []string{"id", "owner_id", "seq"}
	cols = append(cols, FieldColumns()...)
	return append(cols, "field_dates", "classification", "notes", "attachment", "entry_kind", "legacy_timestamp")
}

// RecordValues flattens a record into driver arguments aligned with
// RecordColumns.
func RecordValues(ownerID string, r *model.Record) ([]any, error) {
	vals := []any{r.ID, ownerID, r.Seq}
	for _, name := range model.FieldNames() {
		vals = append(vals, r.Field(name))
	}

	var dates any
	if r.FieldDates != nil {
		b, err := json.Marshal(r.FieldDates)
		if err != nil {
			return nil, fmt.Errorf("encode field dates: %w", err)
		}
		dates = string(b)
	}
	vals = append(vals, dates, string(r.Classification), r.Notes, r.Attachment, string(r.Kind), r.LegacyTimestamp)
	return vals, nil
}

// Scanner matches *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanRecord reads one row produced by selecting RecordColumns.
func ScanRecord(row Scanner) (*model.Record, error) {
	var (
		r       model.Record
		ownerID string
		class   string
		kind    string
		dates   sql.NullString
		legacy  sql.NullInt64
	)
	dest := []any{&r.ID, &ownerID, &r.Seq}
	fieldVals := make([]string, len(model.FieldNames()))
	for i := range fieldVals {
		dest = append(dest, &fieldVals[i])
	}
	dest = append(dest, &dates, &class, &r.Notes, &r.Attachment, &kind, &legacy)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	for i, name := range model.FieldNames() {
		if fieldVals[i] != "" {
			r.SetField(name, fieldVals[i])
		}
	}
	if dates.Valid && dates.String != "" {
		if err := json.Unmarshal([]byte(dates.String), &r.FieldDates); err != nil {
			return nil, fmt.Errorf("decode field dates: %w", err)
		}
	}
	r.Classification = model.Classification(class)
	r.Kind = model.EntryKind(kind)
	if legacy.Valid {
		ts := legacy.Int64
		r.LegacyTimestamp = &ts
	}
	return &r, nil
}
