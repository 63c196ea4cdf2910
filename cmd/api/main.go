// Package main is the entry point for the helpdesk bot server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yoobic-labs/helpdesk-bot/internal/config"
	"github.com/yoobic-labs/helpdesk-bot/internal/handler"
	"github.com/yoobic-labs/helpdesk-bot/internal/middleware"
	"github.com/yoobic-labs/helpdesk-bot/internal/notifier"
	"github.com/yoobic-labs/helpdesk-bot/internal/store"
	"github.com/yoobic-labs/helpdesk-bot/pkg/logger"
	"github.com/yoobic-labs/helpdesk-bot/pkg/tracing"
)

const serviceName = "helpdesk-bot"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	log.Info("starting helpdesk bot", zap.String("version", version))

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, serviceName, cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// The platform API client is optional: without a hostname the bot
	// still answers webhooks, it just skips ticket notifications.
	var notify handler.Notifier
	if cfg.MessagingHostname != "" {
		notify = notifier.New(cfg.MessagingHostname, cfg.BotID, cfg.AccessToken, log)
	} else {
		log.Warn("MESSAGING_HOSTNAME not set, outbound notifications disabled")
	}

	conversations := store.New()

	statusHandler := handler.NewStatusHandler(serviceName, version)
	webhookHandler := handler.NewWebhookHandler(conversations, notify, cfg.SupportUserID, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.SignatureHeader},
		MaxAge:         300,
	}))

	r.Get("/", statusHandler.Status)
	r.Get("/health", statusHandler.Health)
	r.Get("/ready", statusHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/webhook", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Get("/", webhookHandler.Subscribe)
		r.With(middleware.VerifySignature(cfg.AppSecret, log)).Post("/", webhookHandler.Receive)
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
