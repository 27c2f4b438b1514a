package booking

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/lockievisual/studio-portal/internal/models"
)

// The backend's field naming drifted across revisions: bookings arrive
// with "date" or "bookingDate", "name" or "clientName", numeric or
// string ids. Everything is coalesced to the canonical models.Booking
// here, at the boundary, so nothing downstream sees the variance.

type bookingPayload struct {
	ID             json.RawMessage `json:"id"`
	Status         string          `json:"status"`
	ClientName     string          `json:"clientName"`
	Name           string          `json:"name"`
	ClientEmail    string          `json:"clientEmail"`
	Email          string          `json:"email"`
	ClientPhone    string          `json:"clientPhone"`
	Phone          string          `json:"phone"`
	ServiceName    string          `json:"serviceName"`
	ServiceType    string          `json:"serviceType"`
	Service        string          `json:"service"`
	BookingDate    string          `json:"bookingDate"`
	BookingDateAlt string          `json:"booking_date"`
	Date           string          `json:"date"`
	CreatedAt      string          `json:"createdAt"`
	CreatedAtAlt   string          `json:"created_at"`
	AdditionalInfo string          `json:"additionalInfo"`
	Notes          string          `json:"notes"`
}

func (p bookingPayload) toBooking() models.Booking {
	status := models.NormalizeStatus(p.Status)
	if status == "" {
		status = models.StatusPending
	}

	return models.Booking{
		ID:             idString(p.ID),
		Status:         status,
		ClientName:     coalesce(p.ClientName, p.Name),
		ClientEmail:    coalesce(p.ClientEmail, p.Email),
		ClientPhone:    coalesce(p.ClientPhone, p.Phone),
		ServiceName:    coalesce(p.ServiceName, p.ServiceType, p.Service),
		BookingDate:    parseTime(coalesce(p.BookingDate, p.BookingDateAlt, p.Date)),
		CreatedAt:      parseTime(coalesce(p.CreatedAt, p.CreatedAtAlt)),
		AdditionalInfo: coalesce(p.AdditionalInfo, p.Notes),
	}
}

type contactPayload struct {
	ID           json.RawMessage `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Subject      string          `json:"subject"`
	Message      string          `json:"message"`
	CreatedAt    string          `json:"createdAt"`
	CreatedAtAlt string          `json:"created_at"`
}

func (p contactPayload) toContact() models.ContactMessage {
	return models.ContactMessage{
		ID:        idString(p.ID),
		Name:      p.Name,
		Email:     p.Email,
		Subject:   p.Subject,
		Message:   p.Message,
		CreatedAt: parseTime(coalesce(p.CreatedAt, p.CreatedAtAlt)),
	}
}

func coalesce(vals ...string) string {
	for _, v := range vals {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// idString renders a string or numeric backend id as a string without
// losing precision.
func idString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.Trim(string(raw), `"`)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// decodeBookings accepts either a bare JSON array or the wrapped forms
// {"bookings": [...]}, {"data": [...]} that different backend revisions
// returned.
func decodeBookings(raw json.RawMessage) ([]models.Booking, error) {
	var payloads []bookingPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		var wrapper struct {
			Bookings []bookingPayload `json:"bookings"`
			Data     []bookingPayload `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, err
		}
		payloads = wrapper.Bookings
		if payloads == nil {
			payloads = wrapper.Data
		}
	}

	out := make([]models.Booking, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.toBooking())
	}
	return out, nil
}

func decodeContacts(raw json.RawMessage) ([]models.ContactMessage, error) {
	var payloads []contactPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		var wrapper struct {
			Contacts []contactPayload `json:"contacts"`
			Data     []contactPayload `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, err
		}
		payloads = wrapper.Contacts
		if payloads == nil {
			payloads = wrapper.Data
		}
	}

	out := make([]models.ContactMessage, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.toContact())
	}
	return out, nil
}

// decodeBooking accepts a bare booking object or {"booking": {...}}.
func decodeBooking(raw json.RawMessage) (models.Booking, error) {
	var wrapper struct {
		Booking *bookingPayload `json:"booking"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Booking != nil {
		return wrapper.Booking.toBooking(), nil
	}

	var payload bookingPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.Booking{}, err
	}
	return payload.toBooking(), nil
}
