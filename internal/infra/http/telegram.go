// File: internal/infra/http/telegram.go
package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Chakis0/multibot-service/internal/infra/logging"
)

const telegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// handleTelegramWebhook accepts one Bot API update per request. Everything is
// acknowledged with 200, including unknown keys and bad secret tokens, so the
// Bot API never retries and an outsider learns nothing from the status code.
// Processing happens on the worker pool; the handler returns immediately.
func (s *Server) handleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	botKey := chi.URLParam(r, "botKey")
	ctx := logging.WithBotKey(r.Context(), botKey)
	log := logging.With(ctx, s.log)

	bot, err := s.bots.Bot(botKey)
	if err != nil {
		log.Warn().Msg("update for unknown bot key")
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	got := r.Header.Get(telegramSecretHeader)
	want := bot.WebhookSecret()
	if want != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		log.Warn().Msg("telegram secret token mismatch")
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	var upd tgbotapi.Update
	if err := json.Unmarshal(body, &upd); err != nil {
		log.Warn().Err(err).Msg("undecodable telegram update")
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	if err := s.pool.Submit(func(taskCtx context.Context) error {
		bot.HandleUpdate(taskCtx, &upd)
		return nil
	}); err != nil {
		log.Warn().Err(err).Msg("update dropped")
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
