// Package pubsub provides a generic publish/subscribe event system.
// The watch command uses it to fan rebuilt forests out to renderers.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// BuiltEvent carries a freshly built forest.
	BuiltEvent EventType = "built"
	// FailedEvent carries the outcome of a build that returned an error.
	FailedEvent EventType = "failed"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
