package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ConfirmationEvent is a payment confirmation decoded from the processor's
// callback query parameters. It is transient: validated, dispatched, dropped.
type ConfirmationEvent struct {
	OrderID        string
	Result         string
	Amount         string // minor units, as received
	AmountCurrency string
	Profit         string // optional
	ProfitCurrency string // optional
}

// ParseConfirmation reads the well-known callback fields. The hash parameter
// is handled separately by the verifier and must already be removed.
func ParseConfirmation(params url.Values) ConfirmationEvent {
	return ConfirmationEvent{
		OrderID:        params.Get("order_id"),
		Result:         params.Get("result"),
		Amount:         params.Get("amount"),
		AmountCurrency: params.Get("amount_currency"),
		Profit:         params.Get("profit"),
		ProfitCurrency: params.Get("profit_currency"),
	}
}

// Succeeded reports whether the processor confirmed the payment. Any other
// result value is dropped upstream; the processor sends no pending or
// declined states that need action.
func (e ConfirmationEvent) Succeeded() bool { return e.Result == "success" }

// Text composes the human-readable confirmation delivered to the chat.
func (e ConfirmationEvent) Text() string {
	amount := MinorToHuman(e.Amount, e.AmountCurrency)
	if e.Profit != "" && e.ProfitCurrency != "" {
		profit := MinorToHuman(e.Profit, e.ProfitCurrency)
		return fmt.Sprintf("✅ Оплата подтверждена. Сумма: %s %s (на счёт: %s %s)",
			amount, e.AmountCurrency, profit, e.ProfitCurrency)
	}
	return fmt.Sprintf("✅ Оплата подтверждена. Сумма: %s %s", amount, e.AmountCurrency)
}

// CallbackSignature recomputes the processor's callback hash: parameters
// sorted by name (bytewise), values joined with the literal separator "{np}",
// the tenant secret appended as the final value, SHA-256, hex encoded.
// This canonicalization is a wire contract and must not be "improved".
func CallbackSignature(params url.Values, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vals := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		vals = append(vals, params.Get(k))
	}
	vals = append(vals, secret)

	sum := sha256.Sum256([]byte(strings.Join(vals, "{np}")))
	return hex.EncodeToString(sum[:])
}
