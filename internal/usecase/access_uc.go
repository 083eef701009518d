// File: internal/usecase/access_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/domain/ports/repository"
)

// AccessControl layers the static base whitelist (config, shared across
// tenants) over each tenant's persisted dynamic whitelist. Base members are
// also the administrators allowed to mutate the dynamic lists.
type AccessControl struct {
	base map[int64]struct{}
	wl   repository.WhitelistRepository
	log  *zerolog.Logger
}

func NewAccessControl(base []int64, wl repository.WhitelistRepository, logger *zerolog.Logger) *AccessControl {
	m := make(map[int64]struct{}, len(base))
	for _, id := range base {
		m[id] = struct{}{}
	}
	return &AccessControl{base: m, wl: wl, log: logger}
}

// HasAccess reports whether a chat may use a tenant's bot. Repository
// failures deny access rather than failing open.
func (a *AccessControl) HasAccess(ctx context.Context, botKey string, chatID int64) bool {
	if _, ok := a.base[chatID]; ok {
		return true
	}
	ok, err := a.wl.Contains(ctx, botKey, chatID)
	if err != nil {
		a.log.Warn().Err(err).Str("bot_key", botKey).Int64("chat_id", chatID).Msg("whitelist lookup failed")
		return false
	}
	return ok
}

// IsAdmin reports whether a chat may manage whitelists.
func (a *AccessControl) IsAdmin(chatID int64) bool {
	_, ok := a.base[chatID]
	return ok
}

func (a *AccessControl) Grant(ctx context.Context, botKey string, chatID int64) error {
	return a.wl.Add(ctx, botKey, chatID)
}

func (a *AccessControl) Revoke(ctx context.Context, botKey string, chatID int64) (bool, error) {
	return a.wl.Remove(ctx, botKey, chatID)
}

func (a *AccessControl) List(ctx context.Context, botKey string) ([]int64, error) {
	return a.wl.List(ctx, botKey)
}
