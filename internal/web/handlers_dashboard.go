package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lockievisual/studio-portal/internal/booking"
	"github.com/lockievisual/studio-portal/internal/gateway"
	"github.com/lockievisual/studio-portal/internal/models"
	"github.com/lockievisual/studio-portal/internal/notify"
)

func (s *Server) handleDashboard(c *gin.Context) {
	claims, _ := currentSession(c)

	bookings, err := s.repo.ListCustomerBookings(c.Request.Context(), claims.SessionID)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			http.SetCookie(c.Writer, clearedSessionCookie(s.secureCookies))
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		s.center.Push(claims.SessionID, notify.LevelError, userMessage(err))
	}

	s.render(c, http.StatusOK, "page_dashboard", "My Bookings", gin.H{
		"Bookings": bookings,
		"Services": s.services,
	})
}

func (s *Server) handleCreateBooking(c *gin.Context) {
	claims, _ := currentSession(c)

	req := booking.CreateRequest{
		ClientName:     strings.TrimSpace(c.PostForm("client_name")),
		ClientEmail:    strings.TrimSpace(c.PostForm("client_email")),
		ClientPhone:    strings.TrimSpace(c.PostForm("client_phone")),
		ServiceName:    strings.TrimSpace(c.PostForm("service_name")),
		AdditionalInfo: strings.TrimSpace(c.PostForm("additional_info")),
	}
	if raw := c.PostForm("booking_date"); raw != "" {
		if date, err := parseFormDate(raw); err == nil {
			req.BookingDate = date
		} else {
			s.center.Push(claims.SessionID, notify.LevelError, "Please pick a valid date.")
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
	}

	if _, err := s.repo.CreateBooking(c.Request.Context(), claims.SessionID, req); err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			http.SetCookie(c.Writer, clearedSessionCookie(s.secureCookies))
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		s.center.Push(claims.SessionID, notify.LevelError, userMessage(err))
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	s.center.Push(claims.SessionID, notify.LevelSuccess, "Booking request sent. We will confirm it shortly.")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) handleCancelBooking(c *gin.Context) {
	claims, _ := currentSession(c)
	bookingID := c.Param("id")

	_, err := s.repo.Cancel(c.Request.Context(), claims.SessionID, bookingID)
	switch {
	case err == nil:
		s.center.Push(claims.SessionID, notify.LevelSuccess, "Booking cancelled.")
	case errors.Is(err, models.ErrInvalidTransition):
		s.center.Push(claims.SessionID, notify.LevelError, "This booking can no longer be cancelled.")
	case errors.Is(err, gateway.ErrUnauthorized):
		http.SetCookie(c.Writer, clearedSessionCookie(s.secureCookies))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	default:
		s.center.Push(claims.SessionID, notify.LevelError, userMessage(err))
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// parseFormDate accepts the datetime-local and plain date formats the
// booking form can submit.
func parseFormDate(raw string) (time.Time, error) {
	layouts := []string{"2006-01-02T15:04", "2006-01-02"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
