package events

import (
	"sync"
	"time"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingRejected  = "booking_rejected"
	EventBookingDelivered = "booking_delivered"
	EventBookingCancelled = "booking_cancelled"
	EventContactSubmitted = "contact_submitted"
	EventSessionRevoked   = "session_revoked"
)

// BookingEvent is the snapshot handed to subscribers when a booking
// changes state.
type BookingEvent struct {
	BookingID   string    `json:"booking_id"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ServiceName string    `json:"service_name"`
	Status      string    `json:"status"`
	BookingDate time.Time `json:"booking_date"`
	Actor       string    `json:"actor,omitempty"` // "customer" or "staff"
}

// ContactEvent describes a new contact-form submission.
type ContactEvent struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

// Event is a lightweight in-process domain event.
type Event struct {
	Type      string
	Payload   any
	CreatedAt time.Time
}

// Handler reacts to an event. Handlers run synchronously on the
// publisher's goroutine.
type Handler func(event Event)

// Bus provides process-wide pub/sub for domain events. It replaces the
// per-component ad hoc notification state the portal would otherwise
// accumulate.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type. A nil bus is a no-op
// so callers can treat the bus as optional.
func (b *Bus) Publish(eventType string, payload any) {
	if b == nil {
		return
	}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[eventType]...)
	b.mu.RUnlock()

	evt := Event{Type: eventType, Payload: payload, CreatedAt: time.Now()}
	for _, handler := range handlers {
		handler(evt)
	}
}

// EventTypeForStatus maps a post-transition booking status to the event
// announcing it.
func EventTypeForStatus(status string) string {
	switch status {
	case "confirmed":
		return EventBookingConfirmed
	case "rejected":
		return EventBookingRejected
	case "delivered":
		return EventBookingDelivered
	case "cancelled":
		return EventBookingCancelled
	default:
		return EventBookingCreated
	}
}
