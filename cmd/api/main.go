package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/viasolenergia/leads-api/internal/config"
	"github.com/viasolenergia/leads-api/internal/handler"
	"github.com/viasolenergia/leads-api/internal/mail"
	middlewarepkg "github.com/viasolenergia/leads-api/internal/middleware"
	"github.com/viasolenergia/leads-api/internal/ratelimit"
	"github.com/viasolenergia/leads-api/internal/router"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := newLimiter(ctx, cfg, log)

	httpClient := &http.Client{Timeout: cfg.SendTimeout}
	sender := mail.NewResendClient(httpClient, cfg.ResendBaseURL, cfg.ResendAPIKey, log)

	leadHandler := handler.NewLeadHandler(cfg, limiter, sender, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = router.ErrorHandler(log)

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())

	router.Register(e, leadHandler)

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("lead intake listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warnf("graceful shutdown failed: %v", err)
	}
}

// newLimiter picks the shared redis window when REDIS_URL is set, otherwise
// the in-process store with its janitor.
func newLimiter(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) ratelimit.Limiter {
	rl := cfg.RateLimitLead
	if cfg.RedisURL != "" {
		store, err := ratelimit.NewRedisStore(cfg.RedisURL, rl.Requests, rl.Interval, log)
		if err != nil {
			log.WithError(err).Fatal("invalid REDIS_URL")
		}
		return store
	}

	store := ratelimit.NewMemoryStore(rl.Requests, rl.Interval)
	store.StartJanitor(ctx)
	return store
}
