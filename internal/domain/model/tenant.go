package model

import (
	"fmt"
	"strings"
)

// Tenant is one configured bot identity with its own merchant account at the
// payment processor. Tenants are built once at startup and never mutated.
type Tenant struct {
	Key             string // unique bot key, also the first segment of every order id
	BotToken        string // Telegram bot API token
	WebhookSecret   string // expected X-Telegram-Bot-Api-Secret-Token on update webhooks
	MerchantID      string // processor merchant account
	ProcessorSecret string // processor API secret, also signs confirmation callbacks
}

// Validate enforces the fail-fast startup policy: all four credentials must be
// present, and the key must survive the order-id round trip (no dash).
func (t *Tenant) Validate() error {
	if t.Key == "" {
		return fmt.Errorf("tenant key is empty")
	}
	if strings.Contains(t.Key, "-") {
		return fmt.Errorf("tenant %q: key must not contain a dash (order id delimiter)", t.Key)
	}
	if t.BotToken == "" {
		return fmt.Errorf("tenant %q: bot_token is required", t.Key)
	}
	if t.WebhookSecret == "" {
		return fmt.Errorf("tenant %q: webhook_secret is required", t.Key)
	}
	if t.MerchantID == "" {
		return fmt.Errorf("tenant %q: merchant_id is required", t.Key)
	}
	if t.ProcessorSecret == "" {
		return fmt.Errorf("tenant %q: secret is required", t.Key)
	}
	return nil
}
