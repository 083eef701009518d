// File: internal/usecase/payment_uc.go
package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/domain/ports/adapter"
	"github.com/Chakis0/multibot-service/internal/infra/metrics"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// PaymentUseCase issues payment links through the external processor.
type PaymentUseCase interface {
	// Issue validates the amount, creates the payment at the processor and
	// returns the link plus the order id the confirmation will carry.
	// Recording the session is the caller's job: nothing must be tracked
	// for an issue that never produced a link.
	Issue(ctx context.Context, botKey string, chatID int64, amount int64, currency string) (*model.PaymentLink, error)
}

type paymentUC struct {
	tenants *TenantRegistry
	gateway adapter.PaymentGateway
	log     *zerolog.Logger
}

func NewPaymentUseCase(tenants *TenantRegistry, gateway adapter.PaymentGateway, logger *zerolog.Logger) *paymentUC {
	return &paymentUC{tenants: tenants, gateway: gateway, log: logger}
}

func (u *paymentUC) Issue(ctx context.Context, botKey string, chatID int64, amount int64, currency string) (*model.PaymentLink, error) {
	tenant, err := u.tenants.Resolve(botKey)
	if err != nil {
		metrics.IncPaymentIssued(botKey, "invalid")
		return nil, err
	}

	// Bounds check happens strictly before any network call.
	if err := model.ValidateAmount(currency, amount); err != nil {
		metrics.IncPaymentIssued(botKey, "invalid")
		return nil, err
	}

	orderID := model.NewOrderID(botKey, chatID)
	customer := fmt.Sprintf("u%d%s", chatID, uuid.NewString()[:4])

	req := &model.PaymentRequest{
		OrderID:     orderID,
		CustomerID:  customer,
		AmountMinor: model.MinorUnits(amount),
		Currency:    currency,
		Description: fmt.Sprintf("Top up from Telegram bot (%s)", botKey),
	}

	link, err := u.gateway.CreatePayment(ctx, tenant, req)
	if err != nil {
		metrics.IncPaymentIssued(botKey, "failed")
		u.log.Warn().Err(err).Str("bot_key", botKey).Int64("chat_id", chatID).Str("order_id", orderID).Msg("payment creation failed")
		return nil, err
	}

	metrics.IncPaymentIssued(botKey, "ok")
	u.log.Info().Str("bot_key", botKey).Int64("chat_id", chatID).Str("order_id", orderID).
		Int64("amount", amount).Str("currency", currency).Msg("payment link issued")
	return &model.PaymentLink{Link: link, OrderID: orderID}, nil
}
