package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/ports/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo manages per-chat prompt state in Redis. Keys carry a TTL so an
// abandoned "type an amount" prompt expires on its own.
type StateRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewStateRepo(client RedisClient, ttl time.Duration) *StateRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &StateRepo{client: client, ttl: ttl}
}

func (s *StateRepo) stateKey(botKey string, chatID int64) string {
	return fmt.Sprintf("prompt_state:%s:%d", botKey, chatID)
}

func (s *StateRepo) SetState(ctx context.Context, botKey string, chatID int64, st *repository.PromptState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.stateKey(botKey, chatID), data, s.ttl)
}

func (s *StateRepo) GetState(ctx context.Context, botKey string, chatID int64) (*repository.PromptState, error) {
	data, err := s.client.Get(ctx, s.stateKey(botKey, chatID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var st repository.PromptState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *StateRepo) ClearState(ctx context.Context, botKey string, chatID int64) error {
	return s.client.Del(ctx, s.stateKey(botKey, chatID))
}
