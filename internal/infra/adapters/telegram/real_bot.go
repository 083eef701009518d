// File: internal/infra/adapters/telegram/real_bot.go
package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/application"
	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/domain/ports/adapter"
	"github.com/Chakis0/multibot-service/internal/infra/metrics"
)

var _ adapter.MessageSender = (*Bot)(nil)

// Bot is one tenant's Telegram identity. Updates arrive through the HTTP
// webhook (not polling) and are routed here by the server via the registry.
type Bot struct {
	api    *tgbotapi.BotAPI
	tenant *model.Tenant
	facade *application.GatewayFacade
	log    *zerolog.Logger
}

// NewBot authenticates the token against the Bot API (getMe) so a bad
// credential fails at startup, not on first use.
func NewBot(tenant *model.Tenant, facade *application.GatewayFacade, logger *zerolog.Logger) (*Bot, error) {
	if tenant == nil {
		return nil, errors.New("tenant is nil")
	}
	if facade == nil {
		return nil, errors.New("facade is nil")
	}
	api, err := tgbotapi.NewBotAPI(tenant.BotToken)
	if err != nil {
		return nil, err
	}
	l := logger.With().Str("bot_key", tenant.Key).Logger()
	return &Bot{api: api, tenant: tenant, facade: facade, log: &l}, nil
}

func (b *Bot) Key() string { return b.tenant.Key }

// WebhookSecret is the expected X-Telegram-Bot-Api-Secret-Token value.
func (b *Bot) WebhookSecret() string { return b.tenant.WebhookSecret }

// SendMessage implements adapter.MessageSender.
func (b *Bot) SendMessage(_ context.Context, chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	sent, err := b.api.Send(msg)
	if err != nil {
		metrics.IncTelegramSendError(b.tenant.Key)
		return 0, err
	}
	return sent.MessageID, nil
}

// EditMessage implements adapter.MessageSender.
func (b *Bot) EditMessage(_ context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.DisableWebPagePreview = true
	if _, err := b.api.Send(edit); err != nil {
		metrics.IncTelegramSendError(b.tenant.Key)
		return err
	}
	return nil
}

// reply sends best-effort; command handlers have no one to report errors to.
func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if text == "" {
		return
	}
	if _, err := b.SendMessage(ctx, chatID, text); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", chatID).Msg("reply failed")
	}
}
