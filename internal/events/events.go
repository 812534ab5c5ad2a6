// Package events publishes ledger change notifications.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Type names a ledger event. It doubles as the AMQP routing key.
type Type string

const (
	TransactionCreated Type = "transaction.created"
	TransactionUpdated Type = "transaction.updated"
	TransactionDeleted Type = "transaction.deleted"
	RecurringCreated   Type = "recurring.created"
	RecurringUpdated   Type = "recurring.updated"
	RecurringDeleted   Type = "recurring.deleted"
	RecurringToggled   Type = "recurring.toggled"
	RecurringGenerated Type = "recurring.generated"
	RatesUpdated       Type = "rates.updated"
)

// Event is a single ledger change.
type Event struct {
	Type       Type        `json:"type"`
	EntityID   string      `json:"entity_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// New creates an event stamped with the current time.
func New(t Type, entityID string, payload interface{}) Event {
	return Event{Type: t, EntityID: entityID, Payload: payload, OccurredAt: time.Now().UTC()}
}

// ToJSON encodes the event.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }

// Recorder keeps published events in memory. It is used by tests and as a
// lightweight in-process tap.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Publisher.
func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Close implements Publisher.
func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the type of every published event, in order.
func (r *Recorder) Types() []Type {
	events := r.Events()
	out := make([]Type, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}
