package service

import (
	"context"
	"time"

	"finderid-api/internal/domain"
)

type statusService struct {
	cardRepo     domain.CardRepository
	statusRepo   domain.StatusRepository
	entitlements domain.EntitlementService
	clock        domain.Clock
	logger       domain.Logger
}

func NewStatusService(
	cardRepo domain.CardRepository,
	statusRepo domain.StatusRepository,
	entitlements domain.EntitlementService,
	clock domain.Clock,
	logger domain.Logger,
) *statusService {
	return &statusService{
		cardRepo:     cardRepo,
		statusRepo:   statusRepo,
		entitlements: entitlements,
		clock:        clock,
		logger:       logger,
	}
}

// ListActiveStatuses returns the statuses still inside their 24h lifetime.
func (s *statusService) ListActiveStatuses(ctx context.Context, userID, cardID string, token string) ([]*domain.Status, error) {
	if _, err := loadOwnedCard(ctx, s.cardRepo, userID, cardID, token); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	statuses, err := s.statusRepo.ListSince(ctx, cardID, now.Add(-domain.StatusLifetime), token)
	if err != nil {
		s.logger.Error("Failed to list statuses", err, "card_id", cardID)
		return nil, storeError(err)
	}

	active := make([]*domain.Status, 0, len(statuses))
	for _, st := range statuses {
		if domain.IsStatusActive(st.CreatedAt, now) {
			active = append(active, st)
		}
	}
	return active, nil
}

// CreateStatus posts a status if the card's plan still has room today.
func (s *statusService) CreateStatus(ctx context.Context, userID string, status *domain.Status, loc *time.Location, token string) (*domain.Status, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.entitlements.AuthorizeStatus(ctx, userID, status.CardID, loc, token); err != nil {
		return nil, err
	}

	status.CreatedAt = s.clock.Now().UTC()
	created, err := s.statusRepo.Create(ctx, status, token)
	if err != nil {
		s.logger.Error("Failed to create status", err, "card_id", status.CardID)
		return nil, storeError(err)
	}

	s.logger.Info("Status created", "card_id", created.CardID, "status_id", created.ID)
	return created, nil
}

// DeleteStatus removes a status. The daily count is read from the log, so a
// deleted status no longer counts against today's quota.
func (s *statusService) DeleteStatus(ctx context.Context, userID, cardID, statusID string, token string) error {
	if statusID == "" {
		return &domain.ValidationError{Field: "status_id", Message: "status ID is required"}
	}
	if _, err := loadOwnedCard(ctx, s.cardRepo, userID, cardID, token); err != nil {
		return err
	}

	if err := s.statusRepo.Delete(ctx, cardID, statusID, token); err != nil {
		return storeError(err)
	}

	s.logger.Info("Status deleted", "card_id", cardID, "status_id", statusID)
	return nil
}

var _ domain.StatusService = (*statusService)(nil)
