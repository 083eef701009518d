// File: internal/usecase/session_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/domain/ports/adapter"
	"github.com/Chakis0/multibot-service/internal/domain/ports/repository"
)

const replaceStripes = 64

// SessionTracker owns the order -> (tenant, chat, message) correlation state.
// Text mutations are serialized per chat by the underlying store; the
// Telegram edit that follows an append happens outside any store lock. The
// replace flow additionally holds a per-chat stripe for its whole
// edit-or-send sequence so two /link commands cannot both decide to send.
type SessionTracker struct {
	sessions repository.SessionRepository
	bots     adapter.SenderResolver
	log      *zerolog.Logger

	replaceMu [replaceStripes]sync.Mutex
}

func NewSessionTracker(sessions repository.SessionRepository, bots adapter.SenderResolver, logger *zerolog.Logger) *SessionTracker {
	return &SessionTracker{sessions: sessions, bots: bots, log: logger}
}

// Record binds an order to its chat and outbound message. Order-id collisions
// overwrite silently; the random suffix makes them negligible.
func (t *SessionTracker) Record(ctx context.Context, orderID, botKey string, chatID int64, messageID int, baseText string) error {
	s := &model.PaymentSession{
		OrderID:   orderID,
		BotKey:    botKey,
		ChatID:    chatID,
		MessageID: messageID,
		BaseText:  baseText,
		CreatedAt: time.Now(),
	}
	if err := t.sessions.Save(ctx, s); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	t.log.Debug().Str("bot_key", botKey).Int64("chat_id", chatID).Str("order_id", orderID).Msg("session recorded")
	return nil
}

func (t *SessionTracker) LookupByOrder(ctx context.Context, orderID string) (*model.PaymentSession, error) {
	return t.sessions.FindByOrderID(ctx, orderID)
}

func (t *SessionTracker) LastForChat(ctx context.Context, botKey string, chatID int64) (*model.PaymentSession, error) {
	return t.sessions.FindLast(ctx, botKey, chatID)
}

func (t *SessionTracker) ListByTenant(ctx context.Context, botKey string) ([]*model.PaymentSession, error) {
	return t.sessions.ListByTenant(ctx, botKey)
}

// AppendText extends the chat's last payment message with a suffix line and
// edits the externally held message to match. Returns domain.ErrNotFound when
// the chat has no tracked message.
func (t *SessionTracker) AppendText(ctx context.Context, botKey string, chatID int64, suffix string) error {
	s, err := t.sessions.UpdateText(ctx, botKey, chatID, func(current string) string {
		if suffix == "" {
			return current
		}
		return current + "\n" + suffix
	})
	if err != nil {
		return err
	}

	sender, err := t.bots.Sender(botKey)
	if err != nil {
		return err
	}
	if err := sender.EditMessage(ctx, chatID, s.MessageID, s.BaseText); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

func (t *SessionTracker) replaceLock(botKey string, chatID int64) *sync.Mutex {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s:%d", botKey, chatID)
	return &t.replaceMu[h.Sum32()%replaceStripes]
}

// ReplaceMessage makes (or remakes) the tracked message for a chat: edits the
// existing one when present, otherwise sends a new message, and records the
// result as the chat's session. Used by the /link flow, which has no order.
// The existence check and the text swap are one store operation, and the
// stripe lock serializes concurrent replaces for the same chat, so exactly
// one caller can take the send path.
func (t *SessionTracker) ReplaceMessage(ctx context.Context, botKey string, chatID int64, text string) error {
	sender, err := t.bots.Sender(botKey)
	if err != nil {
		return err
	}

	mu := t.replaceLock(botKey, chatID)
	mu.Lock()
	defer mu.Unlock()

	s, err := t.sessions.UpdateText(ctx, botKey, chatID, func(string) string { return text })
	switch {
	case err == nil:
		if err := sender.EditMessage(ctx, chatID, s.MessageID, text); err != nil {
			return fmt.Errorf("edit message: %w", err)
		}
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	msgID, err := sender.SendMessage(ctx, chatID, text)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return t.Record(ctx, "", botKey, chatID, msgID, text)
}
