package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartlog/chartlog/internal/model"
)

func rec(intro, candle, open, close string) *model.Record {
	return &model.Record{Fields: map[string]string{
		model.FieldIntro:  intro,
		model.FieldCandle: candle,
		model.FieldOpenA:  open,
		model.FieldCloseA: close,
	}}
}

func TestCompositeKey_Deterministic(t *testing.T) {
	a := rec("MG UP", "CANDLE 3", "CG+", "CG-")
	b := rec("MG UP", "CANDLE 3", "CG+", "CG-")
	assert.Equal(t, CompositeKey(a), CompositeKey(b))
}

func TestCompositeKey_CaseInsensitive(t *testing.T) {
	a := rec("mg up", "candle 3", "cg+", "cg-")
	b := rec("MG UP", "CANDLE 3", "CG+", "CG-")
	assert.Equal(t, CompositeKey(a), CompositeKey(b))
}

func TestCompositeKey_WhitespaceSignificant(t *testing.T) {
	a := rec("CG UP", "C", "O", "X")
	b := rec("CG  UP", "C", "O", "X")
	assert.NotEqual(t, CompositeKey(a), CompositeKey(b))
}

func TestCompositeKey_EmptyFieldsAllowed(t *testing.T) {
	a := rec("", "", "", "")
	b := &model.Record{}
	require.Equal(t, CompositeKey(a), CompositeKey(b))
}

func TestCompositeKey_IgnoresClassificationAndNotes(t *testing.T) {
	a := rec("MG UP", "CANDLE 3", "CG+", "CG-")
	b := rec("MG UP", "CANDLE 3", "CG+", "CG-")
	a.Classification = model.Act
	a.Notes = "SOMETHING"
	b.Classification = model.FrontAct
	assert.Equal(t, CompositeKey(a), CompositeKey(b))
}

func TestCompositeKey_EmptySegmentNotConfusedWithShift(t *testing.T) {
	// ("A", "", "B", "") must differ from ("", "A", "", "B").
	a := rec("A", "", "B", "")
	b := rec("", "A", "", "B")
	assert.NotEqual(t, CompositeKey(a), CompositeKey(b))
}

func TestFieldsMatch(t *testing.T) {
	names := model.IdentifyingFieldNames()
	candidate := rec("MG UP", "CANDLE 3", "CG+", "CG-")

	tests := []struct {
		name     string
		criteria *model.Record
		want     bool
	}{
		{"all blank is wildcard", rec("", "", "", ""), true},
		{"exact match", rec("MG UP", "CANDLE 3", "CG+", "CG-"), true},
		{"case folded", rec("mg up", "", "", ""), true},
		{"partial criteria", rec("", "CANDLE 3", "", "CG-"), true},
		{"single mismatch fails", rec("MG UP", "CANDLE 4", "", ""), false},
		{"whitespace not normalized", rec("MG  UP", "", "", ""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldsMatch(tt.criteria, candidate, names))
		})
	}
}

func TestFieldsMatch_EmptyCandidateFieldIsDistinctValue(t *testing.T) {
	names := model.IdentifyingFieldNames()
	candidate := rec("MG UP", "", "CG+", "CG-")
	// Criteria asks for a candle; the candidate's empty candle is not "any".
	assert.False(t, FieldsMatch(rec("", "CANDLE 3", "", ""), candidate, names))
	// No candle constraint matches regardless of the candidate's empty field.
	assert.True(t, FieldsMatch(rec("MG UP", "", "", ""), candidate, names))
}
