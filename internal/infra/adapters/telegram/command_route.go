// File: internal/infra/adapters/telegram/command_route.go
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Chakis0/multibot-service/internal/infra/metrics"
)

const (
	callbackPayCustom = "pay_custom"
	callbackWakeUp    = "wake_up"
)

type commandHandler func(b *Bot, ctx context.Context, chatID int64, args string) string

// commandRoutes maps /command names to handlers. /getid works without access
// so new users can report their chat id to an admin.
var commandRoutes = map[string]commandHandler{
	"start": func(b *Bot, ctx context.Context, chatID int64, _ string) string {
		b.sendStartMenu(ctx, chatID)
		return ""
	},
	"getid": func(b *Bot, _ context.Context, chatID int64, _ string) string {
		return b.facade.HandleGetID(chatID)
	},
	"info": func(b *Bot, ctx context.Context, chatID int64, args string) string {
		return b.facade.HandleInfo(ctx, b.Key(), chatID, args)
	},
	"link": func(b *Bot, ctx context.Context, chatID int64, args string) string {
		return b.facade.HandleLink(ctx, b.Key(), chatID, args)
	},
	"add": func(b *Bot, ctx context.Context, chatID int64, args string) string {
		return b.facade.HandleGrant(ctx, b.Key(), chatID, args)
	},
	"delete": func(b *Bot, ctx context.Context, chatID int64, args string) string {
		return b.facade.HandleRevoke(ctx, b.Key(), chatID, args)
	},
}

// openCommands are answered even for chats outside the whitelist.
var openCommands = map[string]bool{"getid": true}

// HandleUpdate routes one inbound update. It is called from the worker pool,
// never from the HTTP handler goroutine.
func (b *Bot) HandleUpdate(ctx context.Context, upd *tgbotapi.Update) {
	switch {
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		b.handleMessage(ctx, upd.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		cmd := msg.Command()
		metrics.IncTelegramUpdate(b.Key(), "command")

		handler, ok := commandRoutes[cmd]
		if !ok {
			return
		}
		if !openCommands[cmd] && !b.facade.HasAccess(ctx, b.Key(), chatID) {
			b.reply(ctx, chatID, "⛔ У вас нет доступа")
			return
		}
		b.reply(ctx, chatID, handler(b, ctx, chatID, msg.CommandArguments()))
		return
	}

	metrics.IncTelegramUpdate(b.Key(), "text")
	if !b.facade.HasAccess(ctx, b.Key(), chatID) {
		return
	}
	reply, handled := b.facade.HandleText(ctx, b.Key(), chatID, msg.Text)
	if handled {
		b.reply(ctx, chatID, reply)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	metrics.IncTelegramUpdate(b.Key(), "callback")

	// Stop the client-side spinner whatever happens next.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Debug().Err(err).Msg("answer callback failed")
	}

	if !b.facade.HasAccess(ctx, b.Key(), chatID) {
		b.reply(ctx, chatID, "⛔ У вас нет доступа")
		return
	}

	switch cb.Data {
	case callbackPayCustom:
		b.reply(ctx, chatID, b.facade.BeginAmountPrompt(ctx, b.Key(), chatID))
	case callbackWakeUp:
		// Keep-alive ping from the menu; answering the callback is enough.
	}
}

func (b *Bot) sendStartMenu(ctx context.Context, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Нажми «Оплатить», затем введи сумму (200–85000 ₽).")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Оплатить", callbackPayCustom),
			tgbotapi.NewInlineKeyboardButtonData("Проснись", callbackWakeUp),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		metrics.IncTelegramSendError(b.Key())
		b.log.Warn().Err(err).Int64("chat_id", chatID).Msg("start menu send failed")
	}
}
