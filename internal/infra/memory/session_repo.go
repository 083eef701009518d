// File: internal/infra/memory/session_repo.go
package memory

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

const sessionShards = 64

// SessionStore keeps payment sessions in process memory. Chats are spread
// over a fixed set of shards so mutations for one chat are serialized while
// unrelated chats never contend on the same lock. The order index is guarded
// separately and holds its own copies: entries are replaced, never mutated,
// so order-keyed readers and chat-keyed writers do not share memory.
type SessionStore struct {
	shards [sessionShards]sessionShard

	mu     sync.RWMutex
	orders map[string]*model.PaymentSession
}

type sessionShard struct {
	mu   sync.Mutex
	last map[string]*model.PaymentSession // chatKey -> most recent session
}

func NewSessionStore() *SessionStore {
	s := &SessionStore{orders: make(map[string]*model.PaymentSession)}
	for i := range s.shards {
		s.shards[i].last = make(map[string]*model.PaymentSession)
	}
	return s
}

func chatKey(botKey string, chatID int64) string {
	return fmt.Sprintf("%s:%d", botKey, chatID)
}

func (s *SessionStore) shard(key string) *sessionShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.shards[h.Sum32()%sessionShards]
}

func (s *SessionStore) Save(_ context.Context, sess *model.PaymentSession) error {
	cp := *sess
	key := chatKey(cp.BotKey, cp.ChatID)
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.last[key] = &cp
	if cp.OrderID != "" {
		op := cp
		s.mu.Lock()
		s.orders[op.OrderID] = &op
		s.mu.Unlock()
	}
	return nil
}

func (s *SessionStore) FindByOrderID(_ context.Context, orderID string) (*model.PaymentSession, error) {
	s.mu.RLock()
	sess, ok := s.orders[orderID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *SessionStore) FindLast(_ context.Context, botKey string, chatID int64) (*model.PaymentSession, error) {
	key := chatKey(botKey, chatID)
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, ok := sh.last[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *SessionStore) UpdateText(_ context.Context, botKey string, chatID int64, fn func(current string) string) (*model.PaymentSession, error) {
	key := chatKey(botKey, chatID)
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, ok := sh.last[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	sess.BaseText = fn(sess.BaseText)
	if sess.OrderID != "" {
		op := *sess
		s.mu.Lock()
		s.orders[op.OrderID] = &op
		s.mu.Unlock()
	}
	cp := *sess
	return &cp, nil
}

func (s *SessionStore) ListByTenant(_ context.Context, botKey string) ([]*model.PaymentSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.PaymentSession
	for _, sess := range s.orders {
		if sess.BotKey != botKey {
			continue
		}
		cp := *sess
		out = append(out, &cp)
	}
	return out, nil
}
