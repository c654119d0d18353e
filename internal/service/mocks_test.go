package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finderid-api/internal/domain"

	"github.com/supabase-community/supabase-go"
)

type MockLogger struct {
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.messages = append(m.messages, "INFO: "+msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.messages = append(m.messages, "ERROR: "+msg+" - "+err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.messages = append(m.messages, "DEBUG: "+msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.messages = append(m.messages, "WARN: "+msg)
}

func (m *MockLogger) contains(substr string) bool {
	for _, msg := range m.messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// MockSupabaseClient for testing
type MockSupabaseClient struct {
	users map[string]*domain.SupabaseUser
	calls int
}

func NewMockSupabaseClient() *MockSupabaseClient {
	return &MockSupabaseClient{
		users: map[string]*domain.SupabaseUser{
			"valid-token": {ID: "user-123", Email: "test@example.com"},
		},
	}
}

func (m *MockSupabaseClient) Initialize() error {
	return nil
}

func (m *MockSupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	m.calls++
	if user, ok := m.users[token]; ok {
		return user, nil
	}
	if token == "invalid-token" {
		return nil, errors.New("invalid token")
	}
	return nil, errors.New("token validation failed")
}

func (m *MockSupabaseClient) DB() *supabase.Client {
	return nil
}

func (m *MockSupabaseClient) GetClientWithToken(token string) (*supabase.Client, error) {
	return nil, nil
}

func (m *MockSupabaseClient) ServiceRole() (*supabase.Client, error) {
	return nil, nil
}

// MockCardRepository keeps cards in memory.
type MockCardRepository struct {
	cards     map[string]*domain.Card
	err       error
	expired   []string
	markErr   error
	updateErr error
}

func NewMockCardRepository(cards ...*domain.Card) *MockCardRepository {
	m := &MockCardRepository{cards: make(map[string]*domain.Card)}
	for _, c := range cards {
		m.cards[c.ID] = c
	}
	return m
}

func (m *MockCardRepository) GetByID(ctx context.Context, id string, token string) (*domain.Card, error) {
	if m.err != nil {
		return nil, m.err
	}
	card, ok := m.cards[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	cp := *card
	return &cp, nil
}

func (m *MockCardRepository) ListExpirable(ctx context.Context) ([]*domain.Card, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Card
	for _, c := range m.cards {
		if c.Status == domain.CardStatusActive && c.ExpiresAt != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCardRepository) MarkExpired(ctx context.Context, ids []string) error {
	if m.markErr != nil {
		return m.markErr
	}
	for _, id := range ids {
		if c, ok := m.cards[id]; ok {
			c.Status = domain.CardStatusExpired
		}
	}
	m.expired = append(m.expired, ids...)
	return nil
}

func (m *MockCardRepository) UpdateSubscription(ctx context.Context, id string, plan domain.Plan, expiresAt *time.Time) (*domain.Card, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	card, ok := m.cards[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	card.Plan = plan
	card.ExpiresAt = expiresAt
	card.Status = domain.CardStatusActive
	return card, nil
}

// MockStatusRepository keeps statuses in memory.
type MockStatusRepository struct {
	statuses []*domain.Status
	err      error
	nextID   int
	since    time.Time
}

func NewMockStatusRepository(statuses ...*domain.Status) *MockStatusRepository {
	return &MockStatusRepository{statuses: statuses}
}

func (m *MockStatusRepository) ListSince(ctx context.Context, cardID string, since time.Time, token string) ([]*domain.Status, error) {
	m.since = since
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Status
	for _, s := range m.statuses {
		if s.CardID == cardID && !s.CreatedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockStatusRepository) Create(ctx context.Context, status *domain.Status, token string) (*domain.Status, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	cp := *status
	cp.ID = fmt.Sprintf("status-%d", m.nextID)
	m.statuses = append(m.statuses, &cp)
	return &cp, nil
}

func (m *MockStatusRepository) Delete(ctx context.Context, cardID string, statusID string, token string) error {
	if m.err != nil {
		return m.err
	}
	for i, s := range m.statuses {
		if s.ID == statusID && s.CardID == cardID {
			m.statuses = append(m.statuses[:i], m.statuses[i+1:]...)
			return nil
		}
	}
	return domain.ErrStatusNotFound
}

// MockProductRepository keeps products in memory.
type MockProductRepository struct {
	products []*domain.Product
	err      error
	nextID   int
}

func NewMockProductRepository(products ...*domain.Product) *MockProductRepository {
	return &MockProductRepository{products: products}
}

func (m *MockProductRepository) ListActive(ctx context.Context, cardID string, token string) ([]*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Product
	for _, p := range m.products {
		if p.CardID == cardID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product, token string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	cp := *product
	cp.ID = fmt.Sprintf("product-%d", m.nextID)
	cp.IsActive = true
	m.products = append(m.products, &cp)
	return &cp, nil
}

func (m *MockProductRepository) Deactivate(ctx context.Context, cardID string, productID string, token string) error {
	if m.err != nil {
		return m.err
	}
	for _, p := range m.products {
		if p.ID == productID && p.CardID == cardID {
			p.IsActive = false
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func statusesAt(cardID string, times ...time.Time) []*domain.Status {
	out := make([]*domain.Status, 0, len(times))
	for i, t := range times {
		out = append(out, &domain.Status{ID: fmt.Sprintf("seed-%d", i), CardID: cardID, Content: "post", CreatedAt: t})
	}
	return out
}

func activeProducts(cardID string, n int) []*domain.Product {
	out := make([]*domain.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &domain.Product{ID: fmt.Sprintf("seed-product-%d", i), CardID: cardID, Name: "item", IsActive: true})
	}
	return out
}
