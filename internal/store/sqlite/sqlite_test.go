package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/store"
	"github.com/chartlog/chartlog/internal/store/storetest"
)

func storetestSeed(t *testing.T, s store.Store) {
	t.Helper()
	_, err := s.Records().Create(t.Context(), &model.Record{
		ID:             uuid.New().String(),
		Seq:            100,
		Classification: model.Act,
		Kind:           model.KindPartOne,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		path := filepath.Join(t.TempDir(), "chartlog.db")
		s, err := New(path, "owner-test")
		if err != nil {
			t.Fatalf("open sqlite store: %v", err)
		}
		return s
	})
}

func TestSqliteStore_OwnerScoping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartlog.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	a, err := NewWithDB(db, "owner-a")
	if err != nil {
		t.Fatalf("store a: %v", err)
	}
	b, err := NewWithDB(db, "owner-b")
	if err != nil {
		t.Fatalf("store b: %v", err)
	}

	storetestSeed(t, a)

	lst, err := b.Records().List(t.Context())
	if err != nil {
		t.Fatalf("list owner-b: %v", err)
	}
	if len(lst) != 0 {
		t.Fatalf("owner-b must not see owner-a rows, got %d", len(lst))
	}
}
