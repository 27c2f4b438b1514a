package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lockievisual/studio-portal/internal/notify"
)

func (s *Server) handleLoginForm(c *gin.Context) {
	if claims, ok := currentSession(c); ok && s.gw.HasCredential(c.Request.Context(), claims.SessionID) {
		c.Redirect(http.StatusSeeOther, homeFor(claims.Role))
		return
	}
	s.render(c, http.StatusOK, "page_login", "Log In", nil)
}

func (s *Server) handleLogin(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	if email == "" || password == "" {
		s.center.Push(s.flashKey(c), notify.LevelError, "Email and password are required.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var loginResp struct {
		AccessToken string `json:"access_token"`
		Token       string `json:"token"`
	}
	err := s.gw.Request(c.Request.Context(), http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}, &loginResp)
	if err != nil {
		s.center.Push(s.flashKey(c), notify.LevelError, userMessage(err))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	rawToken := loginResp.AccessToken
	if rawToken == "" {
		rawToken = loginResp.Token
	}

	sessionID := uuid.NewString()
	if err := s.gw.StoreCredential(c.Request.Context(), sessionID, rawToken); err != nil {
		s.logger.Error().Err(err).Msg("store credential after login")
		s.center.Push(s.flashKey(c), notify.LevelError, "Login failed, please try again.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	account := s.fetchAccount(c.Request.Context(), sessionID)
	role := account.role()

	cookie, err := s.mintSessionCookie(sessionID, email, role)
	if err != nil {
		s.logger.Error().Err(err).Msg("mint session cookie")
		s.gw.Logout(c.Request.Context(), sessionID)
		s.center.Push(s.flashKey(c), notify.LevelError, "Login failed, please try again.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	http.SetCookie(c.Writer, cookie)

	s.center.Push(sessionID, notify.LevelSuccess, "Welcome back!")
	c.Redirect(http.StatusSeeOther, homeFor(role))
}

func (s *Server) handleSignupForm(c *gin.Context) {
	s.render(c, http.StatusOK, "page_signup", "Sign Up", nil)
}

func (s *Server) handleSignup(c *gin.Context) {
	body := map[string]string{
		"name":     strings.TrimSpace(c.PostForm("name")),
		"email":    strings.TrimSpace(c.PostForm("email")),
		"password": c.PostForm("password"),
	}
	if body["email"] == "" || body["password"] == "" {
		s.center.Push(s.flashKey(c), notify.LevelError, "Email and password are required.")
		c.Redirect(http.StatusSeeOther, "/signup")
		return
	}

	if err := s.gw.Request(c.Request.Context(), http.MethodPost, "/signup", body, nil); err != nil {
		s.center.Push(s.flashKey(c), notify.LevelError, userMessage(err))
		c.Redirect(http.StatusSeeOther, "/signup")
		return
	}

	s.center.Push(s.flashKey(c), notify.LevelSuccess, "Account created. Check your inbox to verify your email.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) handleLogout(c *gin.Context) {
	if claims, ok := currentSession(c); ok {
		s.gw.Logout(c.Request.Context(), claims.SessionID)
	}
	http.SetCookie(c.Writer, clearedSessionCookie(s.secureCookies))
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleVerifyEmail(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		s.render(c, http.StatusBadRequest, "page_verify", "Email Verification", gin.H{
			"Verified": false,
			"Reason":   "The verification link is missing its token.",
		})
		return
	}

	path := "/auth/verify-email?token=" + url.QueryEscape(token)
	if err := s.gw.Request(c.Request.Context(), http.MethodGet, path, nil, nil); err != nil {
		s.render(c, http.StatusOK, "page_verify", "Email Verification", gin.H{
			"Verified": false,
			"Reason":   userMessage(err),
		})
		return
	}

	s.render(c, http.StatusOK, "page_verify", "Email Verification", gin.H{"Verified": true})
}

// account is the lenient decode of GET /auth/user; revisions returned
// the user flat or nested.
type account struct {
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
	User    *struct {
		Role    string `json:"role"`
		IsAdmin bool   `json:"is_admin"`
	} `json:"user"`
}

func (a account) role() string {
	if a.IsAdmin || a.Role == roleAdmin {
		return roleAdmin
	}
	if a.User != nil && (a.User.IsAdmin || a.User.Role == roleAdmin) {
		return roleAdmin
	}
	return "customer"
}

func (s *Server) fetchAccount(ctx context.Context, sessionID string) account {
	var acct account
	if err := s.gw.Authorized(ctx, sessionID, http.MethodGet, "/auth/user", nil, &acct); err != nil {
		s.logger.Warn().Err(err).Msg("session check after login failed")
	}
	return acct
}

func homeFor(role string) string {
	if role == roleAdmin {
		return "/admin/dashboard"
	}
	return "/dashboard"
}
