package snapshot

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartlog/chartlog/internal/events"
	"github.com/chartlog/chartlog/internal/model"
)

func rec(id string, seq int64) *model.Record {
	return &model.Record{ID: id, Seq: seq, Classification: model.Act, Kind: model.KindPartOne}
}

func TestApply_InsertIsIdempotent(t *testing.T) {
	snap := []*model.Record{rec("a", 1)}

	snap = Apply(snap, events.Event{Type: events.Insert, Record: rec("a", 1)})
	require.Len(t, snap, 1)

	snap = Apply(snap, events.Event{Type: events.Insert, Record: rec("b", 2)})
	require.Len(t, snap, 2)
	assert.Equal(t, "b", snap[1].ID)
}

func TestApply_UpdateReplacesByIdentity(t *testing.T) {
	snap := []*model.Record{rec("a", 1), rec("b", 2)}

	updated := rec("a", 1)
	updated.Notes = "EDITED"
	snap = Apply(snap, events.Event{Type: events.Update, Record: updated})

	require.Len(t, snap, 2)
	assert.Equal(t, "EDITED", snap[0].Notes)
}

func TestApply_UpdateForUnknownIDAppends(t *testing.T) {
	snap := Apply(nil, events.Event{Type: events.Update, Record: rec("a", 1)})
	require.Len(t, snap, 1)
}

func TestApply_DeleteRemovesByIdentity(t *testing.T) {
	snap := []*model.Record{rec("a", 1), rec("b", 2), rec("c", 3)}

	snap = Apply(snap, events.Event{Type: events.Delete, Record: &model.Record{ID: "b"}})

	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "c", snap[1].ID)

	// Stale delete is a no-op, not an error.
	snap = Apply(snap, events.Event{Type: events.Delete, Record: &model.Record{ID: "zz"}})
	require.Len(t, snap, 2)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	orig := []*model.Record{rec("a", 1), rec("b", 2)}

	Apply(orig, events.Event{Type: events.Delete, Record: &model.Record{ID: "a"}})
	Apply(orig, events.Event{Type: events.Insert, Record: rec("c", 3)})

	require.Len(t, orig, 2)
	assert.Equal(t, "a", orig[0].ID)
}

func TestCache_ApplyAndList(t *testing.T) {
	c := NewCache([]*model.Record{rec("a", 1)}, zerolog.Nop())

	c.ApplyEvent(events.Event{Type: events.Insert, Record: rec("b", 2)})
	assert.Equal(t, 2, c.Len())

	listed := c.List()
	listed[0] = rec("x", 99)
	assert.Equal(t, "a", c.List()[0].ID, "List must return a copy")
}
