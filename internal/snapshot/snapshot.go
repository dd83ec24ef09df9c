// Package snapshot maintains the in-memory view of the record set that
// search and duplicate detection read from. Change events are reconciled by
// record identity through a pure reducer so the logic is testable without a
// live channel.
package snapshot

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/chartlog/chartlog/internal/events"
	"github.com/chartlog/chartlog/internal/model"
)

// Apply reconciles one change event into a snapshot and returns the resulting
// snapshot. The input slice is never mutated.
//
// Reconciliation is by identity: an insert whose ID already exists is a
// no-op (the channel may redeliver our own writes), an update replaces the
// record in place or appends when the insert was missed, and a delete for an
// unknown ID is a no-op.
func Apply(snapshot []*model.Record, ev events.Event) []*model.Record {
	if ev.Record == nil || ev.Record.ID == "" {
		return snapshot
	}
	idx := -1
	for i, r := range snapshot {
		if r.ID == ev.Record.ID {
			idx = i
			break
		}
	}
	switch ev.Type {
	case events.Insert:
		if idx >= 0 {
			return snapshot
		}
		out := make([]*model.Record, len(snapshot), len(snapshot)+1)
		copy(out, snapshot)
		return append(out, ev.Record)
	case events.Update:
		out := make([]*model.Record, len(snapshot), len(snapshot)+1)
		copy(out, snapshot)
		if idx >= 0 {
			out[idx] = ev.Record
			return out
		}
		return append(out, ev.Record)
	case events.Delete:
		if idx < 0 {
			return snapshot
		}
		out := make([]*model.Record, 0, len(snapshot)-1)
		out = append(out, snapshot[:idx]...)
		return append(out, snapshot[idx+1:]...)
	}
	return snapshot
}

// Cache holds the live snapshot and applies events from the bus.
type Cache struct {
	mu      sync.RWMutex
	records []*model.Record
	log     zerolog.Logger
}

// NewCache creates a cache seeded with the given records.
func NewCache(seed []*model.Record, log zerolog.Logger) *Cache {
	c := &Cache{log: log}
	c.Reset(seed)
	return c
}

// Reset replaces the whole snapshot, e.g. after an import.
func (c *Cache) Reset(records []*model.Record) {
	cp := make([]*model.Record, len(records))
	copy(cp, records)
	c.mu.Lock()
	c.records = cp
	c.mu.Unlock()
}

// List returns a copy of the current snapshot.
func (c *Cache) List() []*model.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*model.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the current record count.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// ApplyEvent reconciles a single event into the cache.
func (c *Cache) ApplyEvent(ev events.Event) {
	c.mu.Lock()
	c.records = Apply(c.records, ev)
	c.mu.Unlock()
}

// Run consumes the subscription until the context is cancelled. Events are
// applied one at a time from this single goroutine, which preserves the
// per-event atomicity the original single-threaded loop relied on.
func (c *Cache) Run(ctx context.Context, sub <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			c.ApplyEvent(ev)
			c.log.Debug().Str("type", string(ev.Type)).Str("record_id", ev.Record.ID).Msg("snapshot reconciled")
		}
	}
}
