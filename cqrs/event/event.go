// Package event defines contracts for publishing domain events to in-process
// subscribers.
//
// Events are fan-out, fire-and-collect: every subscriber runs independently,
// a failing subscriber does not stop the others, and nothing a subscriber has
// already done is rolled back. Subscribers must therefore be idempotent and
// tolerate duplicate delivery.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rise-and-shine/mediator/meta"
)

// Event represents the payload type of a published domain event. Identity is
// the concrete Go type.
type Event any

// Subscriber reacts to a single event type.
//
// Handle is invoked once per published event, possibly concurrently with
// other dispatches. Errors are collected by the publisher and reported to
// the caller; they never prevent other subscribers from running.
type Subscriber[E Event] interface {
	// Handle handles the event.
	Handle(ctx context.Context, e E) error
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc[E Event] func(ctx context.Context, e E) error

// Handle implements Subscriber.
func (f SubscriberFunc[E]) Handle(ctx context.Context, e E) error {
	return f(ctx, e)
}

// Envelope carries an event across process boundaries: a stable identity,
// the registered event name, the occurrence time, the dispatch metadata
// captured at publish time and the payload itself.
type Envelope struct {
	EventID    string            `json:"event_id"`
	Name       string            `json:"name"`
	OccurredAt time.Time         `json:"occurred_at"`
	Meta       map[string]string `json:"meta,omitempty"`
	Payload    any               `json:"payload"`
}

// NewEnvelope wraps a payload into an Envelope, assigning a fresh event id
// and capturing the metadata carried in ctx.
func NewEnvelope(ctx context.Context, name string, payload any) Envelope {
	var metaMap map[string]string
	if extracted := meta.Extract(ctx); len(extracted) > 0 {
		metaMap = make(map[string]string, len(extracted))
		for k, v := range extracted {
			metaMap[string(k)] = v
		}
	}

	return Envelope{
		EventID:    uuid.New().String(),
		Name:       name,
		OccurredAt: time.Now().UTC(),
		Meta:       metaMap,
		Payload:    payload,
	}
}
