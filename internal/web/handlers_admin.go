package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lockievisual/studio-portal/internal/export"
	"github.com/lockievisual/studio-portal/internal/gateway"
	"github.com/lockievisual/studio-portal/internal/models"
	"github.com/lockievisual/studio-portal/internal/notify"
)

func (s *Server) handleAdminDashboard(c *gin.Context) {
	claims, _ := currentSession(c)
	ctx := c.Request.Context()

	bookings, err := s.repo.ListBookings(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			http.SetCookie(c.Writer, clearedSessionCookie(s.secureCookies))
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		s.center.Push(claims.SessionID, notify.LevelError, userMessage(err))
	}

	contacts, err := s.repo.ListContacts(ctx, claims.SessionID)
	if err != nil && !errors.Is(err, gateway.ErrUnauthorized) {
		s.logger.Warn().Err(err).Msg("list contacts")
	}

	pending := 0
	for _, b := range bookings {
		if b.Status == models.StatusPending {
			pending++
		}
	}

	s.render(c, http.StatusOK, "page_admin_dashboard", "Staff Dashboard", gin.H{
		"Bookings":     bookings,
		"Contacts":     contacts,
		"PendingCount": pending,
	})
}

func (s *Server) handleAdminAction(c *gin.Context) {
	claims, _ := currentSession(c)
	bookingID := c.Param("id")

	action, ok := models.ParseAction(c.Param("action"))
	if !ok {
		s.center.Push(claims.SessionID, notify.LevelError, "Unknown booking action.")
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}

	ctx := c.Request.Context()
	var err error
	switch action {
	case models.ActionConfirm:
		_, err = s.repo.Confirm(ctx, claims.SessionID, bookingID)
	case models.ActionReject:
		_, err = s.repo.Reject(ctx, claims.SessionID, bookingID)
	case models.ActionDeliver:
		_, err = s.repo.Deliver(ctx, claims.SessionID, bookingID)
	case models.ActionCancel:
		_, err = s.repo.Cancel(ctx, claims.SessionID, bookingID)
	}

	switch {
	case err == nil:
		s.center.Push(claims.SessionID, notify.LevelSuccess,
			fmt.Sprintf("Booking %s %s.", bookingID, pastTense(action)))
	case errors.Is(err, models.ErrInvalidTransition):
		s.center.Push(claims.SessionID, notify.LevelError,
			"That action is not available for the booking's current status.")
	case errors.Is(err, gateway.ErrUnauthorized):
		http.SetCookie(c.Writer, clearedSessionCookie(s.secureCookies))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	default:
		s.center.Push(claims.SessionID, notify.LevelError, userMessage(err))
	}

	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (s *Server) handleExport(c *gin.Context) {
	claims, _ := currentSession(c)

	bookings, err := s.repo.ListBookings(c.Request.Context(), claims.SessionID)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			http.SetCookie(c.Writer, clearedSessionCookie(s.secureCookies))
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		s.center.Push(claims.SessionID, notify.LevelError, userMessage(err))
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteBookings(c.Writer, bookings); err != nil {
		s.logger.Error().Err(err).Msg("write bookings export")
	}
}

func pastTense(action models.Action) string {
	switch action {
	case models.ActionConfirm:
		return "confirmed"
	case models.ActionReject:
		return "rejected"
	case models.ActionDeliver:
		return "marked as delivered"
	case models.ActionCancel:
		return "cancelled"
	default:
		return string(action)
	}
}
