package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lockievisual/studio-portal/internal/booking"
	"github.com/lockievisual/studio-portal/internal/config"
	"github.com/lockievisual/studio-portal/internal/events"
	"github.com/lockievisual/studio-portal/internal/gateway"
	"github.com/lockievisual/studio-portal/internal/logging"
	"github.com/lockievisual/studio-portal/internal/metrics"
	"github.com/lockievisual/studio-portal/internal/notify"
	"github.com/lockievisual/studio-portal/internal/session"
	"github.com/lockievisual/studio-portal/internal/web"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	services, err := config.LoadServices("")
	if err != nil {
		logger.Error().Err(err).Msg("load service catalog")
		return err
	}

	metrics.Register()

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	sessions, closeSessions := initSessions(cfg, sessionTTL, logger)
	defer closeSessions()

	bus := events.NewBus()

	gw := gateway.New(cfg.Backend, sessions, bus, logger)
	repo := booking.NewRepository(gw, bus, logger)

	notifyTTL := time.Duration(cfg.Notifications.TTLSeconds) * time.Second
	center := notify.NewCenter(notifyTTL)

	initTelegram(cfg, bus, logger)

	srv, err := web.NewServer(cfg, gw, repo, center, services, logger)
	if err != nil {
		logger.Error().Err(err).Msg("create web server")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, logger)

	return startServer(ctx, srv, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "portal-main").Logger()

	return cfg, &logger, closer, nil
}

// initSessions picks the credential store: redis with an in-memory
// fallback when an address is configured, plain memory otherwise.
func initSessions(cfg *config.Config, ttl time.Duration, logger *zerolog.Logger) (session.Store, func()) {
	memory := session.NewMemoryStore(ttl)

	if cfg.Redis.Address == "" {
		return memory, func() {}
	}

	client := session.NewRedisClient(cfg.Redis)
	if err := session.Ping(context.Background(), client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, using in-memory sessions")
		_ = session.Close(client)
		return memory, func() {}
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	store := session.NewFailoverStore(session.NewRedisStore(client, ttl), memory, logger)
	return store, func() { _ = session.Close(client) }
}

func initTelegram(cfg *config.Config, bus *events.Bus, logger *zerolog.Logger) {
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken == "" {
		return
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, continuing without staff notifications")
		return
	}
	bot.Debug = cfg.Telegram.Debug

	notifier := notify.NewStaffNotifier(bot, cfg.Telegram.ChatIDs, logger)
	notifier.Subscribe(bus)
	logger.Info().Str("bot", bot.Self.UserName).Msg("telegram staff notifier connected")
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func startServer(ctx context.Context, srv *web.Server, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
		return err
	}

	logger.Info().Msg("portal stopped")
	return nil
}
