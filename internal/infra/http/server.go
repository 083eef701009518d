// File: internal/infra/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/config"
	"github.com/Chakis0/multibot-service/internal/infra/adapters/telegram"
	"github.com/Chakis0/multibot-service/internal/infra/worker"
	"github.com/Chakis0/multibot-service/internal/usecase"
)

// Server hosts every inbound surface of the gateway: the processor
// confirmation webhook, per-tenant Telegram update webhooks, the manual
// payment-creation endpoint, health, metrics and the admin API.
type Server struct {
	cfg      *config.Config
	auth     *AuthManager
	webhooks usecase.WebhookUseCase
	payments usecase.PaymentUseCase
	sessions *usecase.SessionTracker
	access   *usecase.AccessControl
	tenants  *usecase.TenantRegistry
	bots     *telegram.Registry
	pool     *worker.Pool
	log      *zerolog.Logger

	server *http.Server
}

func NewServer(
	cfg *config.Config,
	auth *AuthManager,
	webhooks usecase.WebhookUseCase,
	payments usecase.PaymentUseCase,
	sessions *usecase.SessionTracker,
	access *usecase.AccessControl,
	tenants *usecase.TenantRegistry,
	bots *telegram.Registry,
	pool *worker.Pool,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		cfg:      cfg,
		auth:     auth,
		webhooks: webhooks,
		payments: payments,
		sessions: sessions,
		access:   access,
		tenants:  tenants,
		bots:     bots,
		pool:     pool,
		log:      logger,
	}
}

// Router builds the chi mux. Split out of Start so tests can drive the
// handlers through httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// Nicepay calls back with GET and query parameters.
	r.Get("/webhook", s.handlePaymentWebhook)
	r.Post("/webhook", s.handlePaymentWebhook)

	r.Get("/create_payment", s.handleCreatePayment)

	r.Post("/tg-webhook/{botKey}", s.handleTelegramWebhook)

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/login", s.handleLogin)
		api.Group(func(priv chi.Router) {
			priv.Use(s.auth.RequireAuth)
			priv.Get("/sessions/{botKey}", s.handleListSessions)
			priv.Get("/whitelist/{botKey}", s.handleListWhitelist)
			priv.Post("/whitelist/{botKey}", s.handleAddWhitelist)
			priv.Delete("/whitelist/{botKey}/{chatID}", s.handleRemoveWhitelist)
		})
	})

	return r
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Int("port", s.cfg.Server.Port).Msg("http server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"bots": s.tenants.Keys(),
	})
}
