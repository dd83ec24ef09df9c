// Package storetest holds a compliance suite run against every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	recs := s.Records()

	cleared := (*model.Date)(nil)
	entered := model.NewDate(2024, 3, 5)
	legacy := int64(1600000000000)

	r1 := &model.Record{
		ID:  uuid.New().String(),
		Seq: 100,
		Fields: map[string]string{
			model.FieldIntro:  "MG UP",
			model.FieldCandle: "CANDLE 3",
			model.FieldOpenA:  "CG+",
			model.FieldCloseA: "CG-",
		},
		FieldDates: map[string]*model.Date{
			model.FieldCandle: &entered,
			model.FieldOpenA:  cleared,
		},
		Classification:  model.Act,
		Notes:           "FIRST",
		Kind:            model.KindPartOne,
		LegacyTimestamp: &legacy,
	}
	r2 := &model.Record{
		ID:             uuid.New().String(),
		Seq:            200,
		Fields:         map[string]string{model.FieldOGCandle: "CANDLE 1"},
		Classification: model.FrontAct,
		Attachment:     "https://example.test/chart.png",
		Kind:           model.KindPartTwo,
	}

	if _, err := recs.Create(ctx, r1); err != nil {
		t.Fatalf("Create r1: %v", err)
	}
	if _, err := recs.Create(ctx, r2); err != nil {
		t.Fatalf("Create r2: %v", err)
	}

	// A second Create under an existing identity must fail, never overwrite.
	dup := r1.Clone()
	dup.Notes = "CLOBBER"
	if _, err := recs.Create(ctx, dup); err == nil {
		t.Fatalf("Create duplicate id: expected error")
	}

	// Get round-trips every column.
	got, err := recs.Get(ctx, r1.ID)
	if err != nil {
		t.Fatalf("Get r1: %v", err)
	}
	if got.Seq != 100 || got.Classification != model.Act || got.Notes != "FIRST" || got.Kind != model.KindPartOne {
		t.Fatalf("Get r1: wrong scalar fields: %+v", got)
	}
	if got.Field(model.FieldIntro) != "MG UP" || got.Field(model.FieldCandle) != "CANDLE 3" {
		t.Fatalf("Get r1: wrong observation fields: %+v", got.Fields)
	}
	if d := got.FieldDates[model.FieldCandle]; d == nil || d.String() != "2024-03-05" {
		t.Fatalf("Get r1: candle date lost: %+v", got.FieldDates)
	}
	if d, ok := got.FieldDates[model.FieldOpenA]; !ok || d != nil {
		t.Fatalf("Get r1: cleared date must stay a present nil: %+v", got.FieldDates)
	}
	if got.LegacyTimestamp == nil || *got.LegacyTimestamp != legacy {
		t.Fatalf("Get r1: legacy timestamp lost: %+v", got.LegacyTimestamp)
	}

	// List is newest first.
	lst, err := recs.List(ctx)
	if err != nil || len(lst) != 2 {
		t.Fatalf("List: n=%d err=%v", len(lst), err)
	}
	if lst[0].ID != r2.ID || lst[1].ID != r1.ID {
		t.Fatalf("List: wrong order: %s, %s", lst[0].ID, lst[1].ID)
	}

	// Update replaces the full field set, preserving identity and seq.
	upd := r1.Clone()
	upd.Classification = model.ActDoubt
	upd.SetField(model.FieldSupport, "1200")
	upd.Notes = "EDITED"
	if _, err := recs.Update(ctx, upd); err != nil {
		t.Fatalf("Update r1: %v", err)
	}
	got, err = recs.Get(ctx, r1.ID)
	if err != nil || got.Classification != model.ActDoubt || got.Field(model.FieldSupport) != "1200" {
		t.Fatalf("Get after update: got=%+v err=%v", got, err)
	}
	if got.Seq != 100 {
		t.Fatalf("Update must not change seq: %d", got.Seq)
	}

	// Missing identities surface model.ErrNotFound.
	if _, err := recs.Get(ctx, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get missing: err=%v", err)
	}
	if _, err := recs.Update(ctx, &model.Record{ID: "nope", Classification: model.Act, Kind: model.KindPartOne}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Update missing: err=%v", err)
	}
	if err := recs.Delete(ctx, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Delete missing: err=%v", err)
	}

	// Delete is permanent.
	if err := recs.Delete(ctx, r2.ID); err != nil {
		t.Fatalf("Delete r2: %v", err)
	}
	if _, err := recs.Get(ctx, r2.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get deleted: err=%v", err)
	}
	if lst, err = recs.List(ctx); err != nil || len(lst) != 1 {
		t.Fatalf("List after delete: n=%d err=%v", len(lst), err)
	}
}
