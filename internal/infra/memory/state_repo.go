// File: internal/infra/memory/state_repo.go
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/ports/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo is the in-process prompt-state backend, used when no Redis is
// configured. Entries expire lazily on read.
type StateRepo struct {
	mu     sync.Mutex
	states map[string]memState
	ttl    time.Duration
}

type memState struct {
	state   repository.PromptState
	expires time.Time
}

func NewStateRepo(ttl time.Duration) *StateRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &StateRepo{states: make(map[string]memState), ttl: ttl}
}

func (s *StateRepo) SetState(_ context.Context, botKey string, chatID int64, st *repository.PromptState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatKey(botKey, chatID)] = memState{state: *st, expires: time.Now().Add(s.ttl)}
	return nil
}

func (s *StateRepo) GetState(_ context.Context, botKey string, chatID int64) (*repository.PromptState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := chatKey(botKey, chatID)
	st, ok := s.states[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if time.Now().After(st.expires) {
		delete(s.states, key)
		return nil, domain.ErrNotFound
	}
	cp := st.state
	return &cp, nil
}

func (s *StateRepo) ClearState(_ context.Context, botKey string, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatKey(botKey, chatID))
	return nil
}
