package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Chakis0/multibot-service/internal/domain"
)

// Order id format: {botKey}-{chatID}-{8 hex chars}.
//
// This exact shape is a wire contract: the order id is the only channel
// through which the bot key and chat id survive the round trip to the
// payment processor and back. The processor must echo it verbatim; a
// confirmation whose order id cannot be split back is dropped, not guessed.

// NewOrderID composes an order id for a fresh payment.
func NewOrderID(botKey string, chatID int64) string {
	return fmt.Sprintf("%s-%d-%s", botKey, chatID, uuid.NewString()[:8])
}

// BotKeyFromOrderID recovers the bot key (everything before the first dash).
// It is the webhook's second gate and deliberately does not validate the rest
// of the id: the signature check needs the tenant secret first.
func BotKeyFromOrderID(orderID string) (string, error) {
	key, _, ok := strings.Cut(orderID, "-")
	if !ok || key == "" {
		return "", domain.ErrMalformedOrderID
	}
	return key, nil
}

// SplitOrderID decodes an order id back into bot key and chat id.
// Only the first two dashes are structural; the suffix is opaque.
func SplitOrderID(orderID string) (botKey string, chatID int64, err error) {
	parts := strings.SplitN(orderID, "-", 3)
	if len(parts) < 3 || parts[0] == "" {
		return "", 0, domain.ErrMalformedOrderID
	}
	chatID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, domain.ErrMalformedOrderID
	}
	return parts[0], chatID, nil
}

// PaymentSession binds a chat's most recent payment request to the editable
// outbound message carrying the payment link. Sessions live for the process
// lifetime; there is no eviction (volume is low, documented gap).
type PaymentSession struct {
	OrderID   string // empty for /link messages that have no processor order
	BotKey    string
	ChatID    int64
	MessageID int    // Telegram message id of the tracked outbound message
	BaseText  string // text snapshot, extended by follow-up /info commands
	CreatedAt time.Time
}
