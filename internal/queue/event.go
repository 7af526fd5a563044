// Package queue defines the domain events exchanged over the message broker
// and the publisher and consumer that move them.
package queue

import (
    "time"

    "github.com/google/uuid"
)

// QueueName is the durable queue every domain event is published to.
const QueueName = "dining.events"

// Event types.
const (
    ReservationCreated       = "reservation.created"
    ReservationStatusChanged = "reservation.status_changed"
    OrderFired               = "order.fired"
    OrderFulfilled           = "order.fulfilled"
)

// Event is published after a successful write against the club API. It
// carries enough for consumers to log or invalidate caches without calling
// the API back.
type Event struct {
    ID            string   `json:"id"`
    Type          string   `json:"type"`
    ReservationID int64    `json:"reservation_id,omitempty"`
    OrderID       int64    `json:"order_id,omitempty"`
    UserID        int64    `json:"user_id,omitempty"`
    Status        string   `json:"status,omitempty"`
    Date          string   `json:"date,omitempty"`
    StartTime     string   `json:"start_time,omitempty"`
    Attendee      string   `json:"attendee,omitempty"`
    Items         []string `json:"items,omitempty"`
    OccurredAt    string   `json:"occurred_at"`
}

// NewEvent returns an event of the given type with a fresh ID and timestamp.
func NewEvent(typ string) Event {
    return Event{
        ID:         uuid.NewString(),
        Type:       typ,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
}

// Known reports whether the event type is one this service emits.
func Known(typ string) bool {
    switch typ {
    case ReservationCreated, ReservationStatusChanged, OrderFired, OrderFulfilled:
        return true
    }
    return false
}
