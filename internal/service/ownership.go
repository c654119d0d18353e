package service

import (
	"context"
	"errors"
	"fmt"

	"finderid-api/internal/domain"
)

// loadOwnedCard fetches a card and checks it belongs to userID. Lookup
// failures other than a missing card or a rejected token are reported as
// store unavailability.
func loadOwnedCard(ctx context.Context, cards domain.CardRepository, userID, cardID, token string) (*domain.Card, error) {
	if cardID == "" {
		return nil, &domain.ValidationError{Field: "card_id", Message: "card ID is required"}
	}

	card, err := cards.GetByID(ctx, cardID, token)
	if err != nil {
		return nil, storeError(err)
	}
	if card.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	return card, nil
}

// storeError keeps domain sentinels intact and tags everything else as unavailable.
func storeError(err error) error {
	switch {
	case errors.Is(err, domain.ErrCardNotFound),
		errors.Is(err, domain.ErrStatusNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrStoreUnavailable):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
}
