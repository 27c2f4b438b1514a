package events

import (
	"testing"
)

func TestBus(t *testing.T) {
	bus := NewBus()

	var received Event
	var callCount int

	bus.Subscribe(EventBookingCreated, func(event Event) {
		received = event
		callCount++
	})

	payload := BookingEvent{BookingID: "42", Status: "pending"}
	bus.Publish(EventBookingCreated, payload)

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}

	if received.Type != EventBookingCreated {
		t.Errorf("expected type %s, got %s", EventBookingCreated, received.Type)
	}

	got, ok := received.Payload.(BookingEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", received.Payload)
	}
	if got.BookingID != "42" {
		t.Errorf("expected booking id 42, got %s", got.BookingID)
	}
}

func TestBusMultipleSubscribers(t *testing.T) {
	bus := NewBus()
	var count1, count2 int

	bus.Subscribe("event", func(_ Event) { count1++ })
	bus.Subscribe("event", func(_ Event) { count2++ })

	bus.Publish("event", nil)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both handlers to be called once, got %d and %d", count1, count2)
	}
}

func TestBusNoSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish("nobody_listens", nil) // must not panic
}

func TestNilBusPublish(t *testing.T) {
	var bus *Bus
	bus.Publish("event", nil) // optional bus, must not panic
}

func TestEventTypeForStatus(t *testing.T) {
	cases := map[string]string{
		"confirmed": EventBookingConfirmed,
		"rejected":  EventBookingRejected,
		"delivered": EventBookingDelivered,
		"cancelled": EventBookingCancelled,
		"pending":   EventBookingCreated,
	}
	for status, want := range cases {
		if got := EventTypeForStatus(status); got != want {
			t.Errorf("status %s: expected %s, got %s", status, want, got)
		}
	}
}
