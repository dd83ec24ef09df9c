// Package events carries record change notifications from the store layer to
// in-process consumers. It stands in for the hosted pub/sub channel of the
// original deployment; consumers reconcile by record identity.
package events

import "github.com/chartlog/chartlog/internal/model"

// Type identifies the kind of record-set mutation.
type Type string

const (
	Insert Type = "insert"
	Update Type = "update"
	Delete Type = "delete"
)

// Event is one record-set mutation. Record always carries at least the ID;
// for deletes the remaining fields may be zero.
type Event struct {
	Type   Type
	Record *model.Record
}

// Bus is a lightweight in-process pub-sub backed by a buffered channel.
type Bus struct {
	ch chan Event
}

// NewBus creates a bus with the given buffer size.
func NewBus(buffer int) *Bus {
	return &Bus{ch: make(chan Event, buffer)}
}

// Publish attempts to enqueue the event without blocking.
// Returns true if published, false if the buffer is full.
func (b *Bus) Publish(evt Event) bool {
	select {
	case b.ch <- evt:
		return true
	default:
		return false
	}
}

// Subscribe returns a read-only channel for the consumer.
func (b *Bus) Subscribe() <-chan Event {
	return b.ch
}
