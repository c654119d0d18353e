package handler

import (
	"context"
	"net/http"
	"time"

	"finderid-api/internal/domain"
	"finderid-api/internal/jobs"
)

const (
	testCardID    = "7d0f4c1e-4a57-4d8e-9a55-0b9b5f3c2a11"
	testStatusID  = "0b1b2d9e-3c43-4f5a-8a9b-5d3e2f1a0c77"
	testProductID = "9e8d7c6b-5a49-4838-a726-150f4e3d2c1b"
)

func createContextWithUser(r *http.Request, user *domain.SupabaseUser) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func createContextWithToken(r *http.Request, token string) *http.Request {
	ctx := context.WithValue(r.Context(), tokenContextKey, token)
	return r.WithContext(ctx)
}

// fakeAuth injects a fixed user and token, standing in for AuthMiddleware.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = createContextWithUser(r, &domain.SupabaseUser{ID: "user-1"})
		r = createContextWithToken(r, "token-1")
		next.ServeHTTP(w, r)
	})
}

type mockEntitlementService struct {
	summary *domain.EntitlementSummary
	err     error
	lastLoc *time.Location
	lastID  string
}

func (m *mockEntitlementService) GetSummary(ctx context.Context, userID, cardID string, loc *time.Location, token string) (*domain.EntitlementSummary, error) {
	m.lastLoc = loc
	m.lastID = cardID
	return m.summary, m.err
}

func (m *mockEntitlementService) AuthorizeStatus(ctx context.Context, userID, cardID string, loc *time.Location, token string) (*domain.EntitlementSummary, error) {
	return m.summary, m.err
}

func (m *mockEntitlementService) AuthorizeProduct(ctx context.Context, userID, cardID string, token string) (*domain.EntitlementSummary, error) {
	return m.summary, m.err
}

type mockStatusService struct {
	statuses   []*domain.Status
	err        error
	created    *domain.Status
	lastLoc    *time.Location
	deletedID  string
	lastUserID string
}

func (m *mockStatusService) ListActiveStatuses(ctx context.Context, userID, cardID string, token string) ([]*domain.Status, error) {
	return m.statuses, m.err
}

func (m *mockStatusService) CreateStatus(ctx context.Context, userID string, status *domain.Status, loc *time.Location, token string) (*domain.Status, error) {
	m.lastUserID = userID
	m.lastLoc = loc
	if m.err != nil {
		return nil, m.err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	cp := *status
	cp.ID = testStatusID
	m.created = &cp
	return &cp, nil
}

func (m *mockStatusService) DeleteStatus(ctx context.Context, userID, cardID, statusID string, token string) error {
	m.deletedID = statusID
	return m.err
}

type mockProductService struct {
	products      []*domain.Product
	err           error
	created       *domain.Product
	deactivatedID string
}

func (m *mockProductService) ListActiveProducts(ctx context.Context, userID, cardID string, token string) ([]*domain.Product, error) {
	return m.products, m.err
}

func (m *mockProductService) CreateProduct(ctx context.Context, userID string, product *domain.Product, token string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	cp := *product
	cp.ID = testProductID
	cp.IsActive = true
	m.created = &cp
	return &cp, nil
}

func (m *mockProductService) DeactivateProduct(ctx context.Context, userID, cardID, productID string, token string) error {
	m.deactivatedID = productID
	return m.err
}

type mockSubscriptionService struct {
	card      *domain.Card
	err       error
	lastPlan  string
	lastUntil *time.Time
}

func (m *mockSubscriptionService) Renew(ctx context.Context, cardID string, plan string, expiresAt *time.Time) (*domain.Card, error) {
	m.lastPlan = plan
	m.lastUntil = expiresAt
	return m.card, m.err
}

type mockSweep struct {
	result jobs.SweepResult
	err    error
	calls  int
}

func (m *mockSweep) Run(ctx context.Context) (jobs.SweepResult, error) {
	m.calls++
	return m.result, m.err
}

type testServices struct {
	entitlements  *mockEntitlementService
	statuses      *mockStatusService
	products      *mockProductService
	subscriptions *mockSubscriptionService
	sweep         *mockSweep
}

func newTestServices() *testServices {
	return &testServices{
		entitlements:  &mockEntitlementService{},
		statuses:      &mockStatusService{},
		products:      &mockProductService{},
		subscriptions: &mockSubscriptionService{},
		sweep:         &mockSweep{},
	}
}

func newTestRouter(s *testServices, adminSecret string) http.Handler {
	logger := NewMockHandlerLogger()
	return NewRouter(Handlers{
		Auth:         NewAuthHandler(),
		Plans:        NewPlanHandler(),
		Entitlements: NewEntitlementHandler(s.entitlements, time.UTC, logger),
		Statuses:     NewStatusHandler(s.statuses, time.UTC, logger),
		Products:     NewProductHandler(s.products, logger),
		Admin:        NewAdminHandler(adminSecret, s.subscriptions, s.sweep, logger),
	}, fakeAuth, []string{"http://localhost:5173"})
}
