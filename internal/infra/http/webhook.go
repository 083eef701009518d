// File: internal/infra/http/webhook.go
package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/infra/logging"
)

// handlePaymentWebhook receives processor confirmations. The response is
// always 200 {"ok":true}: a non-200 would make the processor retry, and a
// distinguishable error would let a prober map the verification gates.
// Failures are visible in logs and metrics instead.
func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil && len(r.PostForm) > 0 {
			merged := url.Values{}
			for k, vs := range params {
				merged[k] = vs
			}
			for k, vs := range r.PostForm {
				merged[k] = vs
			}
			params = merged
		}
	}

	if err := s.webhooks.Handle(r.Context(), params); err != nil {
		logging.With(r.Context(), s.log).Warn().Err(err).
			Str("order_id", params.Get("order_id")).Msg("webhook rejected")
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleCreatePayment issues a payment link outside of any chat flow, for
// operators wiring up a tenant or testing processor credentials.
func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	botKey := q.Get("bot_key")
	if botKey == "" {
		botKey = q.Get("key") // short alias
	}
	if botKey == "" {
		writeError(w, http.StatusBadRequest, "bot_key is required")
		return
	}
	chatID, err := strconv.ParseInt(q.Get("chat_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "chat_id must be an integer")
		return
	}
	amount, err := strconv.ParseInt(q.Get("amount"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount must be an integer")
		return
	}
	currency := q.Get("currency")
	if currency == "" {
		currency = model.CurrencyRUB
	}

	res, err := s.payments.Issue(r.Context(), botKey, chatID, amount, currency)
	if err != nil {
		// Caller mistakes are 400; the processor being down or answering
		// garbage is 502.
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrUpstreamUnavailable) || errors.Is(err, domain.ErrUpstreamProtocol) {
			status = http.StatusBadGateway
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
