package service

import (
	"context"
	"time"

	"finderid-api/internal/domain"
)

type subscriptionService struct {
	cardRepo domain.CardRepository
	clock    domain.Clock
	logger   domain.Logger
}

func NewSubscriptionService(cardRepo domain.CardRepository, clock domain.Clock, logger domain.Logger) *subscriptionService {
	return &subscriptionService{
		cardRepo: cardRepo,
		clock:    clock,
		logger:   logger,
	}
}

// Renew sets a card's plan and expiry and reactivates it. A nil expiresAt
// means the subscription never expires.
func (s *subscriptionService) Renew(ctx context.Context, cardID string, plan string, expiresAt *time.Time) (*domain.Card, error) {
	if cardID == "" {
		return nil, &domain.ValidationError{Field: "card_id", Message: "card ID is required"}
	}

	parsed, ok := domain.ParsePlanStrict(plan)
	if !ok {
		return nil, &domain.ValidationError{Field: "plan", Message: "unknown plan " + plan}
	}
	if expiresAt != nil && domain.IsExpired(expiresAt, s.clock.Now()) {
		return nil, &domain.ValidationError{Field: "expires_at", Message: "expiry must be in the future"}
	}

	card, err := s.cardRepo.UpdateSubscription(ctx, cardID, parsed, expiresAt)
	if err != nil {
		s.logger.Error("Failed to renew subscription", err, "card_id", cardID)
		return nil, storeError(err)
	}

	s.logger.Info("Subscription renewed", "card_id", cardID, "plan", parsed, "expires_at", expiresAt)
	return card, nil
}

var _ domain.SubscriptionService = (*subscriptionService)(nil)
