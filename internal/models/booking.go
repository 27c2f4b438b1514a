package models

import "time"

// Booking is the canonical client-side view of a booking record.
// The backend is authoritative; instances held here are a cache that is
// refreshed after every mutating action.
type Booking struct {
	ID             string    `json:"id"`
	ClientName     string    `json:"client_name"`
	ClientEmail    string    `json:"client_email"`
	ClientPhone    string    `json:"client_phone"`
	ServiceName    string    `json:"service_name"`
	BookingDate    time.Time `json:"booking_date"`
	Status         string    `json:"status"` // pending, confirmed, rejected, delivered, cancelled
	AdditionalInfo string    `json:"additional_info"`
	CreatedAt      time.Time `json:"created_at"`
}

// SortKey returns the timestamp used for newest-first ordering.
// CreatedAt wins when present; older backend revisions only send the
// booking date.
func (b Booking) SortKey() time.Time {
	if !b.CreatedAt.IsZero() {
		return b.CreatedAt
	}
	return b.BookingDate
}
