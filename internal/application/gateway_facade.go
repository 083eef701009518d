// File: internal/application/gateway_facade.go
package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/domain/ports/adapter"
	"github.com/Chakis0/multibot-service/internal/domain/ports/repository"
	"github.com/Chakis0/multibot-service/internal/usecase"
)

// GatewayFacade composes the use cases into chat-command semantics. Methods
// return the reply text for the chat; where a flow sends or edits messages
// itself (payment link, /link), an empty reply means nothing more to say.
type GatewayFacade struct {
	Access   *usecase.AccessControl
	Payments usecase.PaymentUseCase
	Sessions *usecase.SessionTracker
	States   repository.StateRepository
	Bots     adapter.SenderResolver

	log *zerolog.Logger
}

func NewGatewayFacade(
	access *usecase.AccessControl,
	payments usecase.PaymentUseCase,
	sessions *usecase.SessionTracker,
	states repository.StateRepository,
	bots adapter.SenderResolver,
	logger *zerolog.Logger,
) *GatewayFacade {
	return &GatewayFacade{
		Access:   access,
		Payments: payments,
		Sessions: sessions,
		States:   states,
		Bots:     bots,
		log:      logger,
	}
}

const (
	replyNoAccess     = "⛔ У вас нет доступа"
	replyNotAdmin     = "⛔ У тебя нет прав"
	replyStart        = "Нажми «Оплатить», затем введи сумму (200–85000 ₽)."
	replyAskAmount    = "Введи сумму в рублях (200–85000):"
	replyAmountLimits = "Сумма вне лимитов Nicepay (200–85000 ₽)."
	replyNotInteger   = "Введите целое число без копеек."
	replyNoLastLink   = "⚠️ Нет последнего платежа для редактирования"
)

func (f *GatewayFacade) HasAccess(ctx context.Context, botKey string, chatID int64) bool {
	return f.Access.HasAccess(ctx, botKey, chatID)
}

// HandleGetID answers /getid; deliberately works without access.
func (f *GatewayFacade) HandleGetID(chatID int64) string {
	return fmt.Sprintf("Твой chat_id: %d", chatID)
}

// HandleInfo appends free text to the chat's last payment message.
func (f *GatewayFacade) HandleInfo(ctx context.Context, botKey string, chatID int64, raw string) string {
	raw = strings.TrimSpace(raw)
	if err := f.Sessions.AppendText(ctx, botKey, chatID, raw); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return replyNoLastLink
		}
		f.log.Warn().Err(err).Str("bot_key", botKey).Int64("chat_id", chatID).Msg("info append failed")
		return "⚠️ Ошибка при редактировании"
	}
	return ""
}

// HandleLink sets or replaces the tracked payment-link message by hand.
func (f *GatewayFacade) HandleLink(ctx context.Context, botKey string, chatID int64, args string) string {
	args = strings.TrimSpace(args)
	if args == "" {
		return "⚠️ Используй: /link <url> [любой текст]"
	}
	url := args
	comment := ""
	if i := strings.IndexAny(args, " \t"); i >= 0 {
		url, comment = args[:i], strings.TrimSpace(args[i:])
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "⚠️ Укажи корректный URL, начинающийся с http(s)://"
	}

	text := "💳 Ссылка на оплату:\n" + url
	if comment != "" {
		text += "\n" + comment
	}
	if err := f.Sessions.ReplaceMessage(ctx, botKey, chatID, text); err != nil {
		f.log.Warn().Err(err).Str("bot_key", botKey).Int64("chat_id", chatID).Msg("link update failed")
		return "⚠️ Не удалось обновить ссылку"
	}
	return "✅ Ссылка обновлена"
}

// HandleGrant processes /add <chat_id> (base-whitelist members only).
func (f *GatewayFacade) HandleGrant(ctx context.Context, botKey string, adminChat int64, arg string) string {
	if !f.Access.IsAdmin(adminChat) {
		return replyNotAdmin
	}
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return "⚠️ Используй: /add <chat_id>"
	}
	if err := f.Access.Grant(ctx, botKey, id); err != nil {
		f.log.Error().Err(err).Str("bot_key", botKey).Int64("chat_id", id).Msg("whitelist add failed")
		return "⚠️ Не удалось сохранить whitelist"
	}
	return fmt.Sprintf("✅ Пользователь %d добавлен", id)
}

// HandleRevoke processes /delete <chat_id>.
func (f *GatewayFacade) HandleRevoke(ctx context.Context, botKey string, adminChat int64, arg string) string {
	if !f.Access.IsAdmin(adminChat) {
		return replyNotAdmin
	}
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return "⚠️ Используй: /delete <chat_id>"
	}
	removed, err := f.Access.Revoke(ctx, botKey, id)
	if err != nil {
		f.log.Error().Err(err).Str("bot_key", botKey).Int64("chat_id", id).Msg("whitelist remove failed")
		return "⚠️ Не удалось сохранить whitelist"
	}
	if !removed {
		return "⚠️ Такого chat_id нет среди добавленных"
	}
	return fmt.Sprintf("🚫 Пользователь %d удалён", id)
}

// BeginAmountPrompt arms the "type an amount" follow-up for the chat.
func (f *GatewayFacade) BeginAmountPrompt(ctx context.Context, botKey string, chatID int64) string {
	st := &repository.PromptState{
		Kind:     repository.StateAwaitingAmount,
		AskedAt:  time.Now(),
		Currency: model.CurrencyRUB,
	}
	if err := f.States.SetState(ctx, botKey, chatID, st); err != nil {
		f.log.Warn().Err(err).Str("bot_key", botKey).Int64("chat_id", chatID).Msg("set prompt state failed")
		return "⚠️ Попробуй ещё раз"
	}
	return replyAskAmount
}

// HandleText consumes a plain-text message. When the chat is awaiting an
// amount, the text is parsed and a payment is issued; otherwise the message
// is ignored (handled reports whether the text was consumed).
func (f *GatewayFacade) HandleText(ctx context.Context, botKey string, chatID int64, text string) (reply string, handled bool) {
	st, err := f.States.GetState(ctx, botKey, chatID)
	if err != nil {
		return "", false
	}
	if st.Kind != repository.StateAwaitingAmount {
		return "", false
	}
	// One answer per prompt, even when it fails validation.
	_ = f.States.ClearState(ctx, botKey, chatID)

	amount, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return replyNotInteger, true
	}
	return f.issueAndTrack(ctx, botKey, chatID, amount, st.Currency), true
}

// issueAndTrack runs the full issue flow: validate, create the payment,
// send the link message, record the session. Nothing is tracked when the
// issue fails or the send never happens.
func (f *GatewayFacade) issueAndTrack(ctx context.Context, botKey string, chatID int64, amount int64, currency string) string {
	res, err := f.Payments.Issue(ctx, botKey, chatID, amount, currency)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAmountOutOfRange):
			return replyAmountLimits
		case errors.Is(err, domain.ErrUnsupportedCurrency):
			return "⚠️ Валюта не поддерживается"
		case errors.Is(err, domain.ErrUpstreamRejected):
			return "Ошибка при создании платежа ❌\n" + err.Error()
		default:
			return "Ошибка при создании платежа ❌"
		}
	}

	text := fmt.Sprintf("💳 Ссылка на оплату (%s ₽):\n%s", model.FormatThousands(amount), res.Link)
	sender, err := f.Bots.Sender(botKey)
	if err != nil {
		return "Ошибка при создании платежа ❌"
	}
	msgID, err := sender.SendMessage(ctx, chatID, text)
	if err != nil {
		f.log.Error().Err(err).Str("bot_key", botKey).Int64("chat_id", chatID).Str("order_id", res.OrderID).Msg("link message send failed")
		return "Ошибка при создании платежа ❌"
	}
	if err := f.Sessions.Record(ctx, res.OrderID, botKey, chatID, msgID, text); err != nil {
		f.log.Error().Err(err).Str("order_id", res.OrderID).Msg("session record failed")
	}
	return ""
}
