package repository

import (
	"context"

	"github.com/Chakis0/multibot-service/internal/domain/model"
)

// SessionRepository stores payment sessions keyed by order id and,
// redundantly, by (bot key, chat id) for the "edit my last payment message"
// flow. Both indexes are updated atomically on every write, and all mutations
// for one chat are serialized while unrelated chats proceed independently.
type SessionRepository interface {
	// Save inserts a session, silently overwriting an order-id collision.
	Save(ctx context.Context, s *model.PaymentSession) error
	// FindByOrderID returns domain.ErrNotFound for unknown order ids.
	FindByOrderID(ctx context.Context, orderID string) (*model.PaymentSession, error)
	// FindLast returns the chat's most recent session.
	FindLast(ctx context.Context, botKey string, chatID int64) (*model.PaymentSession, error)
	// UpdateText applies fn to the chat's last session text under the chat
	// lock and returns the updated session.
	UpdateText(ctx context.Context, botKey string, chatID int64, fn func(current string) string) (*model.PaymentSession, error)
	// ListByTenant snapshots a tenant's sessions (admin inspection).
	ListByTenant(ctx context.Context, botKey string) ([]*model.PaymentSession, error)
}
