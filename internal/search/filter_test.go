package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartlog/chartlog/internal/model"
)

func entry(id string, seq int64, class model.Classification, notes string) *model.Record {
	return &model.Record{
		ID:             id,
		Seq:            seq,
		Classification: class,
		Notes:          notes,
		Fields: map[string]string{
			model.FieldIntro:  "MG UP",
			model.FieldCandle: "CANDLE 3",
			model.FieldOpenA:  "CG+",
			model.FieldCloseA: "CG-",
		},
	}
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Record.ID
	}
	return out
}

func TestRun_EmptyCriteriaReturnsNothing(t *testing.T) {
	records := []*model.Record{
		entry("a", 100, model.Act, ""),
		entry("b", 200, model.FrontAct, ""),
	}
	assert.Empty(t, Run(records, Criteria{}))
	assert.Empty(t, Run(records, Criteria{Fields: map[string]string{model.FieldIntro: ""}}))
}

func TestRun_ClassificationFilter(t *testing.T) {
	records := []*model.Record{
		entry("a", 100, model.Act, ""),
		entry("b", 200, model.FrontAct, ""),
		entry("c", 300, model.Act, ""),
		entry("d", 400, model.Nill, ""),
		entry("e", 500, model.ThirdAct, ""),
	}

	got := Run(records, Criteria{Classification: "act"})

	require.Len(t, got, 2)
	assert.Equal(t, []string{"c", "a"}, ids(got), "newest first")
}

func TestRun_SerialNumber(t *testing.T) {
	records := []*model.Record{
		entry("oldest", 100, model.Act, ""),
		entry("middle", 200, model.Act, ""),
		entry("newest", 300, model.Act, ""),
	}

	// Oldest record displays as serial 1, newest as the total count.
	got := Run(records, Criteria{SerialNumber: "1"})
	require.Len(t, got, 1)
	assert.Equal(t, "oldest", got[0].Record.ID)
	assert.Equal(t, 1, got[0].Serial)

	got = Run(records, Criteria{SerialNumber: "#3"})
	require.Len(t, got, 1)
	assert.Equal(t, "newest", got[0].Record.ID)

	assert.Empty(t, Run(records, Criteria{SerialNumber: "#9"}))
	assert.Empty(t, Run(records, Criteria{SerialNumber: "abc"}), "unparsable serial matches nothing")
}

func TestRun_NotesSubstring(t *testing.T) {
	records := []*model.Record{
		entry("a", 100, model.Act, "STRONG BREAKOUT ABOVE RESISTANCE"),
		entry("b", 200, model.Act, ""),
		entry("c", 300, model.Act, "WEAK CLOSE"),
	}

	got := Run(records, Criteria{NotesSubstring: "breakout"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Record.ID)

	// Absent notes never match a non-empty query.
	assert.Empty(t, Run(records, Criteria{NotesSubstring: "ZZZ"}))
}

func TestRun_FieldCriteria(t *testing.T) {
	a := entry("a", 100, model.Act, "")
	b := entry("b", 200, model.Act, "")
	b.Fields[model.FieldCandle] = "CANDLE 1"

	got := Run([]*model.Record{a, b}, Criteria{Fields: map[string]string{model.FieldCandle: "candle 1"}})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Record.ID)
}

func TestRun_PredicatesAreANDed(t *testing.T) {
	a := entry("a", 100, model.Act, "GAP OPEN")
	b := entry("b", 200, model.Act, "")
	c := entry("c", 300, model.FrontAct, "GAP OPEN")

	got := Run([]*model.Record{a, b, c}, Criteria{
		Classification: "Act",
		NotesSubstring: "GAP",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Record.ID)
}

func TestRun_DoesNotMutateSnapshot(t *testing.T) {
	records := []*model.Record{
		entry("a", 300, model.Act, ""),
		entry("b", 100, model.Act, ""),
		entry("c", 200, model.Act, ""),
	}

	Run(records, Criteria{Classification: "Act"})

	assert.Equal(t, []string{"a", "b", "c"}, []string{records[0].ID, records[1].ID, records[2].ID})
}
