// Package booking is the client-side repository over the remote booking
// API: it lists and mutates bookings through the gateway, keeps a cache
// of the last seen backend state and enforces the status machine before
// a call ever leaves the portal.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockievisual/studio-portal/internal/events"
	"github.com/lockievisual/studio-portal/internal/gateway"
	"github.com/lockievisual/studio-portal/internal/metrics"
	"github.com/lockievisual/studio-portal/internal/models"
)

const (
	adminBookingsPath    = "/admin/bookings"
	adminContactsPath    = "/admin/contacts"
	customerBookingsPath = "/bookings"
	contactPath          = "/contact"
)

// listState guards one list endpoint against refetch races: a response
// carrying an older ticket than the last applied one is dropped instead
// of overwriting newer data.
type listState struct {
	mu          sync.Mutex
	lastApplied uint64
	bookings    []models.Booking
}

type Repository struct {
	gw     *gateway.Client
	bus    *events.Bus
	logger *zerolog.Logger

	seq   atomic.Uint64
	lists map[string]*listState

	// last known status per booking id, consulted by the transition guard
	statuses sync.Map
}

func NewRepository(gw *gateway.Client, bus *events.Bus, logger *zerolog.Logger) *Repository {
	return &Repository{
		gw:     gw,
		bus:    bus,
		logger: logger,
		lists: map[string]*listState{
			adminBookingsPath:    {},
			customerBookingsPath: {},
		},
	}
}

// CreateRequest carries a customer's booking submission.
type CreateRequest struct {
	ClientName     string    `json:"clientName"`
	ClientEmail    string    `json:"clientEmail"`
	ClientPhone    string    `json:"clientPhone"`
	ServiceName    string    `json:"serviceName"`
	BookingDate    time.Time `json:"bookingDate"`
	AdditionalInfo string    `json:"additionalInfo,omitempty"`
}

// ContactRequest carries a public contact-form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ListBookings returns all bookings for the admin dashboard, newest
// first.
func (r *Repository) ListBookings(ctx context.Context, sessionID string) ([]models.Booking, error) {
	return r.fetchList(ctx, sessionID, adminBookingsPath)
}

// ListCustomerBookings returns the authenticated customer's own
// bookings, newest first.
func (r *Repository) ListCustomerBookings(ctx context.Context, sessionID string) ([]models.Booking, error) {
	return r.fetchList(ctx, sessionID, customerBookingsPath)
}

func (r *Repository) fetchList(ctx context.Context, sessionID, path string) ([]models.Booking, error) {
	ticket := r.seq.Add(1)

	var raw json.RawMessage
	if err := r.gw.Authorized(ctx, sessionID, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	bookings, err := decodeBookings(raw)
	if err != nil {
		return nil, &gateway.ServerError{Status: http.StatusOK, Message: "unexpected bookings payload"}
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].SortKey().After(bookings[j].SortKey())
	})

	return r.apply(path, ticket, bookings), nil
}

// apply installs a fetched list unless a newer response already landed;
// stale responses yield the current snapshot instead.
func (r *Repository) apply(path string, ticket uint64, bookings []models.Booking) []models.Booking {
	state := r.lists[path]
	state.mu.Lock()
	defer state.mu.Unlock()

	if ticket <= state.lastApplied {
		r.logger.Debug().
			Str("path", path).
			Uint64("ticket", ticket).
			Uint64("last_applied", state.lastApplied).
			Msg("dropping stale list response")
		return append([]models.Booking(nil), state.bookings...)
	}

	state.lastApplied = ticket
	state.bookings = bookings
	for _, b := range bookings {
		r.statuses.Store(b.ID, b.Status)
	}
	return append([]models.Booking(nil), bookings...)
}

// ListContacts returns contact messages for the admin dashboard, newest
// first. Messages are immutable so no cache or sequencing is kept.
func (r *Repository) ListContacts(ctx context.Context, sessionID string) ([]models.ContactMessage, error) {
	var raw json.RawMessage
	if err := r.gw.Authorized(ctx, sessionID, http.MethodGet, adminContactsPath, nil, &raw); err != nil {
		return nil, err
	}

	contacts, err := decodeContacts(raw)
	if err != nil {
		return nil, &gateway.ServerError{Status: http.StatusOK, Message: "unexpected contacts payload"}
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	return contacts, nil
}

// CreateBooking submits a new booking; the backend assigns the id and
// the initial pending status.
func (r *Repository) CreateBooking(ctx context.Context, sessionID string, req CreateRequest) (models.Booking, error) {
	if req.ServiceName == "" {
		return models.Booking{}, &gateway.ValidationError{Status: http.StatusBadRequest, Message: "service is required"}
	}

	var raw json.RawMessage
	if err := r.gw.Authorized(ctx, sessionID, http.MethodPost, customerBookingsPath, req, &raw); err != nil {
		metrics.IncBookingAction("create", gateway.Kind(err))
		return models.Booking{}, err
	}

	created, err := decodeBooking(raw)
	if err != nil {
		return models.Booking{}, &gateway.ServerError{Status: http.StatusOK, Message: "unexpected booking payload"}
	}

	metrics.IncBookingAction("create", "ok")
	r.statuses.Store(created.ID, created.Status)
	r.bus.Publish(events.EventBookingCreated, events.BookingEvent{
		BookingID:   created.ID,
		ClientName:  created.ClientName,
		ClientEmail: created.ClientEmail,
		ServiceName: created.ServiceName,
		Status:      created.Status,
		BookingDate: created.BookingDate,
		Actor:       "customer",
	})

	// Refresh so the dashboard reflects backend truth, not our echo.
	if _, err := r.ListCustomerBookings(ctx, sessionID); err != nil {
		r.logger.Warn().Err(err).Msg("refresh after create failed")
	}

	return created, nil
}

// Confirm moves a pending booking to confirmed. Staff action.
func (r *Repository) Confirm(ctx context.Context, sessionID, bookingID string) (models.Booking, error) {
	return r.transition(ctx, sessionID, bookingID, models.ActionConfirm)
}

// Reject moves a pending booking to rejected. Staff action.
func (r *Repository) Reject(ctx context.Context, sessionID, bookingID string) (models.Booking, error) {
	return r.transition(ctx, sessionID, bookingID, models.ActionReject)
}

// Deliver marks a confirmed booking delivered. Staff action.
func (r *Repository) Deliver(ctx context.Context, sessionID, bookingID string) (models.Booking, error) {
	return r.transition(ctx, sessionID, bookingID, models.ActionDeliver)
}

// Cancel withdraws the customer's own pending booking.
func (r *Repository) Cancel(ctx context.Context, sessionID, bookingID string) (models.Booking, error) {
	return r.transition(ctx, sessionID, bookingID, models.ActionCancel)
}

func (r *Repository) transition(ctx context.Context, sessionID, bookingID string, action models.Action) (models.Booking, error) {
	// Defense in depth: refuse calls invalid from the last known status.
	// The backend remains authoritative for anything we have not seen.
	if current, ok := r.statuses.Load(bookingID); ok {
		if !models.CanApply(current.(string), action) {
			metrics.IncBookingAction(string(action), "invalid_transition")
			return models.Booking{}, models.ErrInvalidTransition
		}
	}

	method, path, refreshPath := transitionCall(action, bookingID)
	if err := r.gw.Authorized(ctx, sessionID, method, path, nil, nil); err != nil {
		metrics.IncBookingAction(string(action), gateway.Kind(err))
		return models.Booking{}, err
	}
	metrics.IncBookingAction(string(action), "ok")

	// Every successful transition refreshes the list so the UI never
	// renders a stale status.
	updated, refreshed := r.refreshAndFind(ctx, sessionID, refreshPath, bookingID)
	if !refreshed {
		// Refresh raced or failed; patch optimistically, the next
		// fetch reconciles.
		next, err := models.NextStatus(r.currentStatus(bookingID), action)
		if err == nil {
			updated = models.Booking{ID: bookingID, Status: next}
			r.statuses.Store(bookingID, next)
		}
	}

	if updated.ID == "" {
		updated = models.Booking{ID: bookingID}
	}

	if updated.Status != "" {
		actor := "staff"
		if action == models.ActionCancel {
			actor = "customer"
		}
		r.bus.Publish(events.EventTypeForStatus(updated.Status), events.BookingEvent{
			BookingID:   updated.ID,
			ClientName:  updated.ClientName,
			ClientEmail: updated.ClientEmail,
			ServiceName: updated.ServiceName,
			Status:      updated.Status,
			BookingDate: updated.BookingDate,
			Actor:       actor,
		})
	}

	return updated, nil
}

// SubmitContact posts a public contact-form submission; no credential
// is attached.
func (r *Repository) SubmitContact(ctx context.Context, req ContactRequest) error {
	if req.Email == "" || req.Message == "" {
		return &gateway.ValidationError{Status: http.StatusBadRequest, Message: "email and message are required"}
	}

	if err := r.gw.Request(ctx, http.MethodPost, contactPath, req, nil); err != nil {
		return err
	}

	r.bus.Publish(events.EventContactSubmitted, events.ContactEvent{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
	})
	return nil
}

func transitionCall(action models.Action, bookingID string) (method, path, refreshPath string) {
	if action == models.ActionCancel {
		return http.MethodPatch,
			fmt.Sprintf("%s/%s/cancel", customerBookingsPath, bookingID),
			customerBookingsPath
	}
	return http.MethodPost,
		fmt.Sprintf("%s/%s/%s", adminBookingsPath, bookingID, action),
		adminBookingsPath
}

func (r *Repository) refreshAndFind(ctx context.Context, sessionID, path, bookingID string) (models.Booking, bool) {
	list, err := r.fetchList(ctx, sessionID, path)
	if err != nil {
		r.logger.Warn().Err(err).Str("booking_id", bookingID).Msg("refresh after transition failed")
		return models.Booking{}, false
	}
	for _, b := range list {
		if b.ID == bookingID {
			return b, true
		}
	}
	return models.Booking{}, false
}

func (r *Repository) currentStatus(bookingID string) string {
	if status, ok := r.statuses.Load(bookingID); ok {
		return status.(string)
	}
	return ""
}
