package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/search"
)

// The payload keys must decode into the server's criteria; a mismatched key
// would silently produce empty criteria and an empty result set.
func TestSearchPayloadDecodesIntoCriteria(t *testing.T) {
	payload, err := buildSearchPayload("#3", "Act", "breakout", []string{"intro=daily"})
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var c search.Criteria
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, "#3", c.SerialNumber)
	assert.Equal(t, "Act", c.Classification)
	assert.Equal(t, "breakout", c.NotesSubstring)
	assert.Equal(t, "daily", c.Fields["intro"])
	assert.False(t, c.Empty())
}

func TestNotesOnlySearchMatches(t *testing.T) {
	payload, err := buildSearchPayload("", "", "BREAKOUT", nil)
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	var c search.Criteria
	require.NoError(t, json.Unmarshal(data, &c))

	records := []*model.Record{
		{ID: "a", Seq: 1, Classification: model.Act, Notes: "STRONG BREAKOUT"},
		{ID: "b", Seq: 2, Classification: model.Act, Notes: "QUIET DAY"},
	}
	results := search.Run(records, c)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Record.ID)
}

func TestSearchPayloadRejectsMalformedFieldPair(t *testing.T) {
	_, err := buildSearchPayload("", "", "", []string{"introdaily"})
	assert.Error(t, err)
}
