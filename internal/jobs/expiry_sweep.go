package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"finderid-api/internal/domain"
	"finderid-api/internal/metrics"
)

const expirySweepJob = "expiry_sweep"

// ErrSweepInProgress is returned when a sweep is requested while another is running.
var ErrSweepInProgress = errors.New("expiry sweep already running")

// SweepResult summarizes one pass of the expiry sweep.
type SweepResult struct {
	Checked    int           `json:"checked"`
	Expired    int           `json:"expired"`
	ExpiredIDs []string      `json:"expired_ids"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
}

// ExpirySweep moves cards whose subscription date has passed to the expired status.
type ExpirySweep struct {
	cards  domain.CardRepository
	clock  domain.Clock
	logger domain.Logger

	running sync.Mutex
}

func NewExpirySweep(cards domain.CardRepository, clock domain.Clock, logger domain.Logger) *ExpirySweep {
	return &ExpirySweep{
		cards:  cards,
		clock:  clock,
		logger: logger,
	}
}

// Run performs one sweep. It uses the same expiry rule as the entitlement
// checks, so a card is never treated as expired by one and active by the other.
func (s *ExpirySweep) Run(ctx context.Context) (SweepResult, error) {
	if !s.running.TryLock() {
		return SweepResult{}, ErrSweepInProgress
	}
	defer s.running.Unlock()

	start := time.Now()
	now := s.clock.Now()
	result := SweepResult{StartedAt: now, ExpiredIDs: []string{}}

	cards, err := s.cards.ListExpirable(ctx)
	if err != nil {
		result.Duration = time.Since(start)
		metrics.JobFailed(expirySweepJob)
		s.logger.Error("Expiry sweep failed to list cards", err)
		return result, fmt.Errorf("failed to list expirable cards: %w", err)
	}
	result.Checked = len(cards)

	for _, card := range cards {
		if domain.IsExpired(card.ExpiresAt, now) {
			result.ExpiredIDs = append(result.ExpiredIDs, card.ID)
		}
	}

	if err := s.cards.MarkExpired(ctx, result.ExpiredIDs); err != nil {
		result.Duration = time.Since(start)
		metrics.JobFailed(expirySweepJob)
		s.logger.Error("Expiry sweep failed to update cards", err, "pending", len(result.ExpiredIDs))
		return result, fmt.Errorf("failed to mark cards expired: %w", err)
	}
	result.Expired = len(result.ExpiredIDs)
	result.Duration = time.Since(start)

	metrics.CardsExpired(result.Expired)
	metrics.JobCompleted(expirySweepJob, result.Duration)
	s.logger.Info("Expiry sweep finished",
		"checked", result.Checked,
		"expired", result.Expired,
		"duration", result.Duration.String(),
	)
	return result, nil
}
