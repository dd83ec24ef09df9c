// Package memstore provides an in-memory store.Store used by unit tests and
// by the ephemeral build target. It keeps the matching/grouping core
// exercisable without a database.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/store"
)

// New returns an empty in-memory store.
func New() store.Store { return &memStore{byID: make(map[string]*model.Record)} }

type memStore struct {
	mu   sync.RWMutex
	byID map[string]*model.Record
}

func (s *memStore) Records() store.Records { return (*records)(s) }

type records memStore

func (r *records) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ID]; ok {
		return nil, fmt.Errorf("record %s already exists", rec.ID)
	}
	r.byID[rec.ID] = rec.Clone()
	return rec.Clone(), nil
}

func (r *records) Get(ctx context.Context, id string) (*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return rec.Clone(), nil
}

func (r *records) List(ctx context.Context) ([]*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Record, 0, len(r.byID))
	for _, rec := range r.byID {
		out = append(out, rec.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Seq != out[j].Seq {
			return out[i].Seq > out[j].Seq
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *records) Update(ctx context.Context, rec *model.Record) (*model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ID]; !ok {
		return nil, model.ErrNotFound
	}
	r.byID[rec.ID] = rec.Clone()
	return rec.Clone(), nil
}

func (r *records) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
