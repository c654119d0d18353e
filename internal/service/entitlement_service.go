package service

import (
	"context"
	"time"

	"finderid-api/internal/domain"
	"finderid-api/internal/metrics"
)

type entitlementService struct {
	cardRepo    domain.CardRepository
	statusRepo  domain.StatusRepository
	productRepo domain.ProductRepository
	clock       domain.Clock
	logger      domain.Logger
}

func NewEntitlementService(
	cardRepo domain.CardRepository,
	statusRepo domain.StatusRepository,
	productRepo domain.ProductRepository,
	clock domain.Clock,
	logger domain.Logger,
) *entitlementService {
	return &entitlementService{
		cardRepo:    cardRepo,
		statusRepo:  statusRepo,
		productRepo: productRepo,
		clock:       clock,
		logger:      logger,
	}
}

// GetSummary evaluates both limits and the expiry banner for a card.
func (s *entitlementService) GetSummary(ctx context.Context, userID, cardID string, loc *time.Location, token string) (*domain.EntitlementSummary, error) {
	now := s.now(loc)
	card, err := loadOwnedCard(ctx, s.cardRepo, userID, cardID, token)
	if err != nil {
		return nil, err
	}

	summary := s.newSummary(card, now)

	statusesToday, err := s.countStatusesToday(ctx, cardID, now, token)
	if err != nil {
		return nil, err
	}
	activeProducts, err := s.countActiveProducts(ctx, cardID, token)
	if err != nil {
		return nil, err
	}

	summary.Statuses = domain.StatusDecision(summary.EffectivePlan, statusesToday)
	summary.Products = domain.ProductDecision(summary.EffectivePlan, activeProducts)
	return summary, nil
}

// AuthorizeStatus checks whether the card may post another status today.
// Only the status decision of the returned summary is populated.
func (s *entitlementService) AuthorizeStatus(ctx context.Context, userID, cardID string, loc *time.Location, token string) (*domain.EntitlementSummary, error) {
	now := s.now(loc)
	card, err := loadOwnedCard(ctx, s.cardRepo, userID, cardID, token)
	if err != nil {
		return nil, err
	}

	summary := s.newSummary(card, now)
	statusesToday, err := s.countStatusesToday(ctx, cardID, now, token)
	if err != nil {
		metrics.RecordDecisionError(string(domain.UsageKindStatus))
		return nil, err
	}

	summary.Statuses = domain.StatusDecision(summary.EffectivePlan, statusesToday)
	metrics.RecordDecision(string(domain.UsageKindStatus), summary.EffectivePlan.String(), summary.Statuses.Allowed)
	if !summary.Statuses.Allowed {
		s.logger.Info("Status limit reached",
			"card_id", cardID,
			"plan", summary.EffectivePlan,
			"used", summary.Statuses.Used,
			"limit", summary.Statuses.Limit,
		)
		return summary, domain.ErrStatusQuotaExceeded
	}
	return summary, nil
}

// AuthorizeProduct checks whether the card may activate another product.
// Only the product decision of the returned summary is populated.
func (s *entitlementService) AuthorizeProduct(ctx context.Context, userID, cardID string, token string) (*domain.EntitlementSummary, error) {
	now := s.now(nil)
	card, err := loadOwnedCard(ctx, s.cardRepo, userID, cardID, token)
	if err != nil {
		return nil, err
	}

	summary := s.newSummary(card, now)
	activeProducts, err := s.countActiveProducts(ctx, cardID, token)
	if err != nil {
		metrics.RecordDecisionError(string(domain.UsageKindProduct))
		return nil, err
	}

	summary.Products = domain.ProductDecision(summary.EffectivePlan, activeProducts)
	metrics.RecordDecision(string(domain.UsageKindProduct), summary.EffectivePlan.String(), summary.Products.Allowed)
	if !summary.Products.Allowed {
		s.logger.Info("Product limit reached",
			"card_id", cardID,
			"plan", summary.EffectivePlan,
			"used", summary.Products.Used,
			"limit", summary.Products.Limit,
		)
		return summary, domain.ErrProductQuotaExceeded
	}
	return summary, nil
}

func (s *entitlementService) now(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return s.clock.Now().In(loc)
}

func (s *entitlementService) newSummary(card *domain.Card, now time.Time) *domain.EntitlementSummary {
	effective := card.EffectivePlan(now)
	return &domain.EntitlementSummary{
		CardID:        card.ID,
		Plan:          card.Plan,
		EffectivePlan: effective,
		DisplayName:   effective.Capacity().DisplayName,
		Expiry:        domain.DescribeExpiry(card.ExpiresAt, now),
		EvaluatedAt:   now,
	}
}

func (s *entitlementService) countStatusesToday(ctx context.Context, cardID string, now time.Time, token string) (int, error) {
	start, _ := domain.DayWindow(now)
	statuses, err := s.statusRepo.ListSince(ctx, cardID, start, token)
	if err != nil {
		s.logger.Error("Failed to load status usage", err, "card_id", cardID)
		return 0, storeError(err)
	}

	records := make([]domain.UsageRecord, 0, len(statuses))
	for _, st := range statuses {
		records = append(records, st.UsageRecord())
	}
	return domain.CountCreatedToday(records, now), nil
}

func (s *entitlementService) countActiveProducts(ctx context.Context, cardID string, token string) (int, error) {
	products, err := s.productRepo.ListActive(ctx, cardID, token)
	if err != nil {
		s.logger.Error("Failed to load product usage", err, "card_id", cardID)
		return 0, storeError(err)
	}
	return len(products), nil
}

var _ domain.EntitlementService = (*entitlementService)(nil)
