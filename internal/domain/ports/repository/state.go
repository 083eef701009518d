package repository

import (
	"context"
	"time"
)

// PromptState marks a chat that was asked a follow-up question and whose next
// plain-text message should be consumed by that flow.
type PromptState struct {
	Kind     string    `json:"kind"` // e.g. StateAwaitingAmount
	AskedAt  time.Time `json:"asked_at"`
	Currency string    `json:"currency,omitempty"`
}

const StateAwaitingAmount = "awaiting_amount"

// StateRepository holds per-chat conversational state. Entries expire on
// their own (backend TTL); a missing entry is domain.ErrNotFound.
type StateRepository interface {
	SetState(ctx context.Context, botKey string, chatID int64, st *PromptState) error
	GetState(ctx context.Context, botKey string, chatID int64) (*PromptState, error)
	ClearState(ctx context.Context, botKey string, chatID int64) error
}
