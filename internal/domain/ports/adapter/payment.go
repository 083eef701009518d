package adapter

import (
	"context"

	"github.com/Chakis0/multibot-service/internal/domain/model"
)

// PaymentGateway creates payments at the external processor on behalf of a
// tenant's merchant account. Implementations own timeouts and retries; a call
// may block for the full read deadline, so callers must not hold locks.
type PaymentGateway interface {
	// CreatePayment returns the processor-hosted payment link.
	CreatePayment(ctx context.Context, tenant *model.Tenant, req *model.PaymentRequest) (link string, err error)
	Name() string
}
