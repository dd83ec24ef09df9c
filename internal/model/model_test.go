package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-03-07", want: NewDate(2024, time.March, 7)},
		{in: "2024-3-7", want: NewDate(2024, time.March, 7)},
		{in: "not-a-date", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.December, 1)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-01"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`1733011200`), &back))
}

func TestParseClassification(t *testing.T) {
	got, ok := ParseClassification("act")
	require.True(t, ok)
	assert.Equal(t, Act, got)

	got, ok = ParseClassification("CONSOLIDATION front ACT")
	require.True(t, ok)
	assert.Equal(t, ConsolidationFrontAct, got)

	_, ok = ParseClassification("Sixth Act")
	assert.False(t, ok)

	_, ok = ParseClassification("")
	assert.False(t, ok)
}

func TestRecordClone(t *testing.T) {
	legacy := int64(1600000000000)
	d := NewDate(2024, time.May, 2)
	orig := &Record{
		ID:              "r1",
		Seq:             42,
		Fields:          map[string]string{FieldIntro: "a"},
		FieldDates:      map[string]*Date{FieldIntro: &d},
		Classification:  Act,
		Kind:            KindCommon,
		LegacyTimestamp: &legacy,
	}

	cp := orig.Clone()
	cp.Fields[FieldIntro] = "changed"
	*cp.LegacyTimestamp = 1
	cp.FieldDates[FieldIntro] = nil

	assert.Equal(t, "a", orig.Fields[FieldIntro])
	assert.Equal(t, int64(1600000000000), *orig.LegacyTimestamp)
	assert.NotNil(t, orig.FieldDates[FieldIntro])
}

func TestHasPartTwoData(t *testing.T) {
	r := &Record{Fields: map[string]string{FieldIntro: "x", FieldOpenA: "1"}}
	assert.False(t, r.HasPartTwoData())

	r.SetField(FieldOGCandle, "doji")
	assert.True(t, r.HasPartTwoData())
}
