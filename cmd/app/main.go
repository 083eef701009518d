// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chakis0/multibot-service/internal/application"
	"github.com/Chakis0/multibot-service/internal/config"
	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/domain/ports/repository"
	payAdapters "github.com/Chakis0/multibot-service/internal/infra/adapters/payment"
	tele "github.com/Chakis0/multibot-service/internal/infra/adapters/telegram"
	"github.com/Chakis0/multibot-service/internal/infra/file"
	httpapi "github.com/Chakis0/multibot-service/internal/infra/http"
	"github.com/Chakis0/multibot-service/internal/infra/logging"
	"github.com/Chakis0/multibot-service/internal/infra/memory"
	"github.com/Chakis0/multibot-service/internal/infra/metrics"
	red "github.com/Chakis0/multibot-service/internal/infra/redis"
	"github.com/Chakis0/multibot-service/internal/infra/worker"
	"github.com/Chakis0/multibot-service/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, no sampling)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	// ---- Metrics ----
	metrics.MustRegister()

	// ---- Tenants ----
	tenants := make([]*model.Tenant, 0, len(cfg.Tenants))
	for _, tc := range cfg.Tenants {
		tenants = append(tenants, tc.Tenant())
	}
	registry, err := usecase.NewTenantRegistry(tenants)
	if err != nil {
		log.Fatalf("tenants: %v", err)
	}

	// ---- Repositories ----
	sessionStore := memory.NewSessionStore()

	whitelists, err := file.NewWhitelistRepo(cfg.Access.WhitelistDir, registry.Keys())
	if err != nil {
		log.Fatalf("whitelists: %v", err)
	}

	var states repository.StateRepository
	if cfg.Redis.URL != "" {
		client, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()
		states = red.NewStateRepo(client, cfg.Redis.TTL)
		logger.Info().Msg("prompt state: redis")
	} else {
		states = memory.NewStateRepo(cfg.Redis.TTL)
		logger.Info().Msg("prompt state: in-memory")
	}

	// ---- Payment gateway ----
	retry := payAdapters.NewRetryPolicy(cfg.Payment.Nicepay.MaxAttempts, cfg.Payment.Nicepay.RetryBaseDelay)
	gateway := payAdapters.NewNicepayGateway(
		cfg.Payment.Nicepay.BaseURL,
		cfg.Payment.Nicepay.ConnectTimeout,
		cfg.Payment.Nicepay.ReadTimeout,
		retry,
		logger,
	)

	// ---- Use cases ----
	bots := tele.NewRegistry()
	access := usecase.NewAccessControl(cfg.Access.BaseWhitelist, whitelists, logger)
	payments := usecase.NewPaymentUseCase(registry, gateway, logger)
	sessions := usecase.NewSessionTracker(sessionStore, bots, logger)
	webhooks := usecase.NewWebhookUseCase(registry, sessions, bots, logger)

	// ---- Facade and bots ----
	facade := application.NewGatewayFacade(access, payments, sessions, states, bots, logger)
	for _, t := range tenants {
		b, err := tele.NewBot(t, facade, logger)
		if err != nil {
			log.Fatalf("telegram bot %q: %v", t.Key, err)
		}
		bots.Add(b)
		logger.Info().Str("bot_key", t.Key).Msg("bot registered")
	}

	// ---- Workers ----
	pool := worker.NewPool(8, logger)
	pool.Start(ctx)

	// ---- HTTP server ----
	auth := httpapi.NewAuthManager(cfg.Admin)
	srv := httpapi.NewServer(cfg, auth, webhooks, payments, sessions, access, registry, bots, pool, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}
	cancel()
	pool.Stop()
}
