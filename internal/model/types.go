package model

// EntryKind marks which stage of the two-step entry workflow produced a record.
type EntryKind string

const (
	KindPartOne EntryKind = "partOne"
	KindPartTwo EntryKind = "partTwo"
	KindCommon  EntryKind = "common"
)

// Valid reports whether k is one of the known entry kinds.
func (k EntryKind) Valid() bool {
	switch k {
	case KindPartOne, KindPartTwo, KindCommon:
		return true
	}
	return false
}

// Canonical observation field names. Keys of Record.Fields and Record.FieldDates
// are always drawn from this set; values are free-form user text.
const (
	FieldIntro              = "intro"
	FieldPrimaryDirection   = "primaryDirection"
	FieldSecondaryDirection = "secondaryDirection"
	FieldCandle             = "candle"
	FieldOpenA              = "openA"
	FieldCloseA             = "closeA"
	FieldOpenB              = "openB"
	FieldCloseB             = "closeB"
	FieldSupport            = "support"
	FieldResistance         = "resistance"
	FieldOGDirectionOne     = "ogDirectionOne"
	FieldOGDirectionTwo     = "ogDirectionTwo"
	FieldOGDirectionThree   = "ogDirectionThree"
	FieldOGDirectionFour    = "ogDirectionFour"
	FieldOGCandle           = "ogCandle"
	FieldOGOpen             = "ogOpen"
	FieldOGClose            = "ogClose"
)

// FieldNames returns every observation field name in canonical display order.
func FieldNames() []string {
	return []string{
		FieldIntro,
		FieldPrimaryDirection,
		FieldSecondaryDirection,
		FieldCandle,
		FieldOpenA,
		FieldCloseA,
		FieldOpenB,
		FieldCloseB,
		FieldSupport,
		FieldResistance,
		FieldOGDirectionOne,
		FieldOGDirectionTwo,
		FieldOGDirectionThree,
		FieldOGDirectionFour,
		FieldOGCandle,
		FieldOGOpen,
		FieldOGClose,
	}
}

// IdentifyingFieldNames returns the four fields that define record identity
// for duplicate detection and field search.
func IdentifyingFieldNames() []string {
	return []string{FieldIntro, FieldCandle, FieldOpenA, FieldCloseA}
}

// PartTwoFieldNames returns the fields that only a Part-Two (or Common) entry
// may carry. A PartOne record never has any of these populated.
func PartTwoFieldNames() []string {
	return []string{
		FieldOGDirectionOne,
		FieldOGDirectionTwo,
		FieldOGDirectionThree,
		FieldOGDirectionFour,
		FieldOGCandle,
		FieldOGOpen,
		FieldOGClose,
	}
}

// Record is one hand-entered observation.
//
// Seq is a creation timestamp in Unix milliseconds used only for ordering; it
// is not guaranteed unique under rapid succession. FieldDates values may be
// nil, which means the date was explicitly cleared ("NILL"); a missing key
// means the date was never set.
type Record struct {
	ID             string            `json:"id"`
	Seq            int64             `json:"seq"`
	Fields         map[string]string `json:"fields"`
	FieldDates     map[string]*Date  `json:"fieldDates,omitempty"`
	Classification Classification    `json:"classification"`
	Notes          string            `json:"notes,omitempty"`
	Attachment     string            `json:"attachment,omitempty"`
	Kind           EntryKind         `json:"entryKind"`

	// LegacyTimestamp preserves the pre-migration sequence key for records
	// imported from the old local-only format. Nil for native records.
	LegacyTimestamp *int64 `json:"legacyTimestamp,omitempty"`
}

// Field returns the value of the named observation field, or "" when unset.
func (r *Record) Field(name string) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[name]
}

// SetField stores a field value, allocating the map on first use.
func (r *Record) SetField(name, value string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[name] = value
}

// HasPartTwoData reports whether any Part-Two-only field carries a value.
func (r *Record) HasPartTwoData() bool {
	for _, name := range PartTwoFieldNames() {
		if r.Field(name) != "" {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate the result without
// aliasing the original's maps.
func (r *Record) Clone() *Record {
	out := *r
	if r.Fields != nil {
		out.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			out.Fields[k] = v
		}
	}
	if r.FieldDates != nil {
		out.FieldDates = make(map[string]*Date, len(r.FieldDates))
		for k, v := range r.FieldDates {
			if v == nil {
				out.FieldDates[k] = nil
				continue
			}
			d := *v
			out.FieldDates[k] = &d
		}
	}
	if r.LegacyTimestamp != nil {
		ts := *r.LegacyTimestamp
		out.LegacyTimestamp = &ts
	}
	return &out
}
