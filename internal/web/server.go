// Package web is the portal's HTTP surface: the marketing site, the
// signup/login flow, the customer booking dashboard and the staff
// dashboard. Handlers hold no booking logic themselves; they call the
// repository and translate its results into pages and flash messages.
package web

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lockievisual/studio-portal/internal/booking"
	"github.com/lockievisual/studio-portal/internal/config"
	"github.com/lockievisual/studio-portal/internal/gateway"
	"github.com/lockievisual/studio-portal/internal/models"
	"github.com/lockievisual/studio-portal/internal/notify"
)

const roleAdmin = "admin"

type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	server   *http.Server
	gw       *gateway.Client
	repo     *booking.Repository
	center   *notify.Center
	services []models.ServiceOffering
	logger   *zerolog.Logger

	secret        []byte
	sessionTTL    time.Duration
	secureCookies bool
	limiters      sync.Map // map[string]*rate.Limiter
}

func NewServer(
	cfg *config.Config,
	gw *gateway.Client,
	repo *booking.Repository,
	center *notify.Center,
	services []models.ServiceOffering,
	logger *zerolog.Logger,
) (*Server, error) {
	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:           cfg,
		gw:            gw,
		repo:          repo,
		center:        center,
		services:      services,
		logger:        logger,
		secret:        []byte(cfg.Server.SessionSecret),
		sessionTTL:    time.Duration(cfg.Session.TTLHours) * time.Hour,
		secureCookies: cfg.Server.SecureCookies,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestIDMiddleware())
	engine.Use(s.loggingMiddleware())
	engine.Use(s.sessionMiddleware())

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	s.routes(engine)
	s.engine = engine

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return s, nil
}

func (s *Server) routes(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	staticRoot, _ := fs.Sub(staticFS, "static")
	engine.StaticFS("/static", http.FS(staticRoot))

	// Marketing pages.
	engine.GET("/", s.handleHome)
	engine.GET("/services", s.handleServices)
	engine.GET("/portfolio", s.handlePortfolio)
	engine.GET("/about", s.handleAbout)
	engine.GET("/contact", s.handleContactForm)
	engine.POST("/contact", s.rateLimitMiddleware(), s.handleContactSubmit)

	// Auth.
	engine.GET("/login", s.handleLoginForm)
	engine.POST("/login", s.rateLimitMiddleware(), s.handleLogin)
	engine.GET("/signup", s.handleSignupForm)
	engine.POST("/signup", s.rateLimitMiddleware(), s.handleSignup)
	engine.POST("/logout", s.handleLogout)
	engine.GET("/verify-email", s.handleVerifyEmail)

	// Customer dashboard.
	dashboard := engine.Group("/dashboard", s.requireAuth())
	dashboard.GET("", s.handleDashboard)
	dashboard.POST("/bookings", s.handleCreateBooking)
	dashboard.POST("/bookings/:id/cancel", s.handleCancelBooking)

	// Staff dashboard.
	admin := engine.Group("/admin", s.requireAuth(), s.requireAdmin())
	admin.GET("/dashboard", s.handleAdminDashboard)
	admin.POST("/bookings/:id/:action", s.handleAdminAction)
	admin.GET("/export.xlsx", s.handleExport)
}

// Handler exposes the engine for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("portal listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
