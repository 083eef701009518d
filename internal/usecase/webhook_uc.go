// File: internal/usecase/webhook_uc.go
package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/domain/ports/adapter"
	"github.com/Chakis0/multibot-service/internal/infra/metrics"
)

// Compile-time check
var _ WebhookUseCase = (*webhookUC)(nil)

// WebhookUseCase verifies a processor confirmation callback and delivers the
// confirmation to the right chat. The HTTP layer always acknowledges the
// caller with 200 regardless of the returned error (anti retry-storm policy);
// the error exists for logs and metrics only.
type WebhookUseCase interface {
	Handle(ctx context.Context, params url.Values) error
}

type webhookUC struct {
	tenants  *TenantRegistry
	sessions *SessionTracker
	bots     adapter.SenderResolver
	log      *zerolog.Logger
}

func NewWebhookUseCase(tenants *TenantRegistry, sessions *SessionTracker, bots adapter.SenderResolver, logger *zerolog.Logger) *webhookUC {
	return &webhookUC{tenants: tenants, sessions: sessions, bots: bots, log: logger}
}

// Handle runs the verification gates in order; each one is hard.
func (u *webhookUC) Handle(ctx context.Context, params url.Values) error {
	// Gate 1: the hash must be present and must not participate in its own
	// recomputation.
	received := params.Get("hash")
	if received == "" {
		metrics.IncWebhookEvent("missing_signature")
		return domain.ErrMissingSignature
	}
	rest := url.Values{}
	for k, vs := range params {
		if k == "hash" {
			continue
		}
		rest[k] = vs
	}

	// Gate 2: the tenant comes from the order id's first dash field.
	orderID := rest.Get("order_id")
	botKey, err := model.BotKeyFromOrderID(orderID)
	if err != nil {
		metrics.IncWebhookEvent("malformed_order")
		return err
	}
	tenant, err := u.tenants.Resolve(botKey)
	if err != nil {
		metrics.IncWebhookEvent("unknown_tenant")
		return err
	}

	// Gate 3: recompute and compare the signature.
	expected := model.CallbackSignature(rest, tenant.ProcessorSecret)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
		metrics.IncWebhookEvent("bad_signature")
		return fmt.Errorf("%w: order_id=%s", domain.ErrBadSignature, orderID)
	}

	// Gate 4: the chat id comes from the second dash field.
	_, chatID, err := model.SplitOrderID(orderID)
	if err != nil {
		metrics.IncWebhookEvent("malformed_order")
		return err
	}

	event := model.ParseConfirmation(rest)
	if !event.Succeeded() {
		// Non-success results are dropped on purpose; the processor sends
		// nothing that needs action here.
		metrics.IncWebhookEvent("ignored")
		u.log.Debug().Str("bot_key", botKey).Str("order_id", orderID).Str("result", event.Result).Msg("confirmation ignored")
		return nil
	}

	// The tracker is consulted for observability only: routing comes from
	// the order id, so confirmations survive a process restart.
	if _, err := u.sessions.LookupByOrder(ctx, orderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.log.Warn().Str("bot_key", botKey).Str("order_id", orderID).Msg("confirmation for untracked order")
		}
	}

	sender, err := u.bots.Sender(botKey)
	if err != nil {
		metrics.IncWebhookEvent("unknown_tenant")
		return err
	}
	if _, err := sender.SendMessage(ctx, chatID, event.Text()); err != nil {
		metrics.IncWebhookEvent("send_failed")
		return fmt.Errorf("deliver confirmation: %w", err)
	}

	metrics.IncWebhookEvent("delivered")
	metrics.IncConfirmationDelivered(botKey)
	u.log.Info().Str("bot_key", botKey).Int64("chat_id", chatID).Str("order_id", orderID).
		Str("amount", event.Amount).Str("currency", event.AmountCurrency).Msg("confirmation delivered")
	return nil
}
