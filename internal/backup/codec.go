// Package backup round-trips the full record set through a portable JSON
// document for export and import.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chartlog/chartlog/internal/model"
)

// Serialize writes the record set as an indented top-level JSON array so the
// document stays human-diffable. Dates are encoded as ISO-8601 strings, never
// epoch numbers; a nil date marshals to null (explicitly cleared) and an
// absent key is omitted (never set). The document carries no schema version
// field, so consumers must tolerate added or removed optional keys.
func Serialize(records []*model.Record) ([]byte, error) {
	if records == nil {
		records = []*model.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// Deserialize decodes a backup document back into records. It fails with
// model.ErrFormat when the document is not valid JSON or its top-level value
// is not an array. Individual elements are decoded permissively: unknown keys
// are tolerated, missing fields default, and classification values outside
// the closed enumeration pass through as-is so documents written under older
// or newer schemas still import.
func Deserialize(doc []byte) ([]*model.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: not a JSON document: %v", model.ErrFormat, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("%w: top-level value must be an array", model.ErrFormat)
	}

	records := []*model.Record{}
	for dec.More() {
		var r model.Record
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", model.ErrFormat, len(records), err)
		}
		records = append(records, &r)
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: truncated document: %v", model.ErrFormat, err)
	}
	return records, nil
}

// Filename returns the conventional date-stamped export filename.
func Filename(d model.Date) string {
	return fmt.Sprintf("chartlog-backup-%s.json", d)
}
