// File: internal/infra/adapters/telegram/registry.go
package telegram

import (
	"fmt"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/ports/adapter"
)

var _ adapter.SenderResolver = (*Registry)(nil)

// Registry maps bot keys to their tenant bots. It is populated once during
// startup wiring and read-only afterwards.
type Registry struct {
	bots map[string]*Bot
}

func NewRegistry() *Registry {
	return &Registry{bots: make(map[string]*Bot)}
}

func (r *Registry) Add(b *Bot) {
	r.bots[b.Key()] = b
}

// Bot returns the full bot, used by the webhook handler for update routing.
func (r *Registry) Bot(botKey string) (*Bot, error) {
	b, ok := r.bots[botKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTenant, botKey)
	}
	return b, nil
}

// Sender implements adapter.SenderResolver.
func (r *Registry) Sender(botKey string) (adapter.MessageSender, error) {
	return r.Bot(botKey)
}
