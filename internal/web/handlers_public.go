package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lockievisual/studio-portal/internal/booking"
	"github.com/lockievisual/studio-portal/internal/gateway"
	"github.com/lockievisual/studio-portal/internal/notify"
)

func (s *Server) handleHome(c *gin.Context) {
	s.render(c, http.StatusOK, "page_home", "Lockie Visuals", gin.H{
		"Services": s.services,
	})
}

func (s *Server) handleServices(c *gin.Context) {
	s.render(c, http.StatusOK, "page_services", "Services", gin.H{
		"Services": s.services,
	})
}

func (s *Server) handlePortfolio(c *gin.Context) {
	s.render(c, http.StatusOK, "page_portfolio", "Portfolio", nil)
}

func (s *Server) handleAbout(c *gin.Context) {
	s.render(c, http.StatusOK, "page_about", "About Us", nil)
}

func (s *Server) handleContactForm(c *gin.Context) {
	s.render(c, http.StatusOK, "page_contact", "Contact", nil)
}

func (s *Server) handleContactSubmit(c *gin.Context) {
	req := booking.ContactRequest{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}

	if err := s.repo.SubmitContact(c.Request.Context(), req); err != nil {
		s.center.Push(s.flashKey(c), notify.LevelError, userMessage(err))
		c.Redirect(http.StatusSeeOther, "/contact")
		return
	}

	s.center.Push(s.flashKey(c), notify.LevelSuccess, "Thanks for reaching out! We will get back to you shortly.")
	c.Redirect(http.StatusSeeOther, "/contact")
}

// userMessage translates a gateway error into the line shown in the
// flash banner. Server faults stay generic on purpose.
func userMessage(err error) string {
	var verr *gateway.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case gateway.Kind(err) == "network":
		return "We could not reach the server. Please try again."
	case errors.Is(err, gateway.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	default:
		return "Something went wrong on our side. Please try again."
	}
}
