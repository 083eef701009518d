//go:build !integration

// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/model"
	"github.com/Chakis0/multibot-service/internal/domain/ports/adapter"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// mockGateway lets a test script the processor and count its calls.
type mockGateway struct {
	mu    sync.Mutex
	calls int

	CreatePaymentFunc func(ctx context.Context, tenant *model.Tenant, req *model.PaymentRequest) (string, error)
}

func (m *mockGateway) Name() string { return "mock" }

func (m *mockGateway) CreatePayment(ctx context.Context, tenant *model.Tenant, req *model.PaymentRequest) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(ctx, tenant, req)
	}
	return "https://pay.example/abc", nil
}

func (m *mockGateway) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type sentMessage struct {
	ChatID int64
	Text   string
}

type editedMessage struct {
	ChatID    int64
	MessageID int
	Text      string
}

// mockSender records outbound traffic for one bot.
type mockSender struct {
	mu     sync.Mutex
	nextID int
	Sent   []sentMessage
	Edited []editedMessage

	SendErr error
	EditErr error
}

func (m *mockSender) SendMessage(_ context.Context, chatID int64, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return 0, m.SendErr
	}
	m.nextID++
	m.Sent = append(m.Sent, sentMessage{ChatID: chatID, Text: text})
	return m.nextID, nil
}

func (m *mockSender) EditMessage(_ context.Context, chatID int64, messageID int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EditErr != nil {
		return m.EditErr
	}
	m.Edited = append(m.Edited, editedMessage{ChatID: chatID, MessageID: messageID, Text: text})
	return nil
}

// mockResolver maps bot keys to mock senders.
type mockResolver struct {
	senders map[string]*mockSender
}

func newMockResolver(keys ...string) *mockResolver {
	m := &mockResolver{senders: make(map[string]*mockSender)}
	for _, k := range keys {
		m.senders[k] = &mockSender{}
	}
	return m
}

func (m *mockResolver) Sender(botKey string) (adapter.MessageSender, error) {
	s, ok := m.senders[botKey]
	if !ok {
		return nil, domain.ErrUnknownTenant
	}
	return s, nil
}

type chatKey struct {
	botKey string
	chatID int64
}

// memSessionRepo is a small in-memory session store used by unit tests.
type memSessionRepo struct {
	mu     sync.Mutex
	orders map[string]*model.PaymentSession
	last   map[chatKey]*model.PaymentSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{
		orders: make(map[string]*model.PaymentSession),
		last:   make(map[chatKey]*model.PaymentSession),
	}
}

func (m *memSessionRepo) Save(_ context.Context, s *model.PaymentSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	if cp.OrderID != "" {
		m.orders[cp.OrderID] = &cp
	}
	m.last[chatKey{cp.BotKey, cp.ChatID}] = &cp
	return nil
}

func (m *memSessionRepo) FindByOrderID(_ context.Context, orderID string) (*model.PaymentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionRepo) FindLast(_ context.Context, botKey string, chatID int64) (*model.PaymentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.last[chatKey{botKey, chatID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionRepo) UpdateText(_ context.Context, botKey string, chatID int64, fn func(string) string) (*model.PaymentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.last[chatKey{botKey, chatID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.BaseText = fn(s.BaseText)
	cp := *s
	return &cp, nil
}

func (m *memSessionRepo) ListByTenant(_ context.Context, botKey string) ([]*model.PaymentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.PaymentSession
	for k, s := range m.last {
		if k.botKey == botKey {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// mockWhitelistRepo backs AccessControl tests.
type mockWhitelistRepo struct {
	mu   sync.Mutex
	sets map[string]map[int64]bool

	ContainsErr error
}

func newMockWhitelistRepo() *mockWhitelistRepo {
	return &mockWhitelistRepo{sets: make(map[string]map[int64]bool)}
}

func (m *mockWhitelistRepo) Contains(_ context.Context, botKey string, chatID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ContainsErr != nil {
		return false, m.ContainsErr
	}
	return m.sets[botKey][chatID], nil
}

func (m *mockWhitelistRepo) Add(_ context.Context, botKey string, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets[botKey] == nil {
		m.sets[botKey] = make(map[int64]bool)
	}
	m.sets[botKey][chatID] = true
	return nil
}

func (m *mockWhitelistRepo) Remove(_ context.Context, botKey string, chatID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.sets[botKey][chatID] {
		return false, nil
	}
	delete(m.sets[botKey], chatID)
	return true, nil
}

func (m *mockWhitelistRepo) List(_ context.Context, botKey string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int64
	for id := range m.sets[botKey] {
		out = append(out, id)
	}
	return out, nil
}

func testTenant(key string) *model.Tenant {
	return &model.Tenant{
		Key:             key,
		BotToken:        "123:abc",
		WebhookSecret:   "whsec",
		MerchantID:      "m-" + key,
		ProcessorSecret: "secret-" + key,
	}
}

func testRegistry(keys ...string) *TenantRegistry {
	tenants := make([]*model.Tenant, 0, len(keys))
	for _, k := range keys {
		tenants = append(tenants, testTenant(k))
	}
	r, err := NewTenantRegistry(tenants)
	if err != nil {
		panic(err)
	}
	return r
}
