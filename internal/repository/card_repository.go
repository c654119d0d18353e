package repository

import (
	"context"
	"fmt"
	"time"

	"finderid-api/internal/domain"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const (
	cardsTable = "cards"

	// markExpiredBatchSize keeps the id list of an IN filter within URL limits.
	markExpiredBatchSize = 100
)

// CardRepository implements the domain.CardRepository interface using Supabase.
type CardRepository struct {
	supabaseClient domain.SupabaseClient
	clock          domain.Clock
	logger         domain.Logger
}

func NewCardRepository(supabaseClient domain.SupabaseClient, clock domain.Clock, logger domain.Logger) *CardRepository {
	return &CardRepository{
		supabaseClient: supabaseClient,
		clock:          clock,
		logger:         logger,
	}
}

// GetByID loads a card with the caller's token, so RLS decides visibility.
func (r *CardRepository) GetByID(ctx context.Context, id string, token string) (*domain.Card, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(cardsTable).
		Select("id,user_id,display_name,plan,subscription_status,expires_at,created_at,updated_at", "", false).
		Eq("id", id).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrCardNotFound
	}
	return mapToCard(rows[0])
}

// ListExpirable returns active cards that carry an expiry date.
func (r *CardRepository) ListExpirable(ctx context.Context) ([]*domain.Card, error) {
	client, err := r.serviceRole()
	if err != nil {
		return nil, err
	}

	data, _, err := client.From(cardsTable).
		Select("id,user_id,plan,subscription_status,expires_at", "", false).
		Eq("subscription_status", string(domain.CardStatusActive)).
		Not("expires_at", "is", "null").
		Order("expires_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list expirable cards: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	cards := make([]*domain.Card, 0, len(rows))
	for _, row := range rows {
		card, err := mapToCard(row)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MarkExpired flips the subscription status of the given cards.
func (r *CardRepository) MarkExpired(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	client, err := r.serviceRole()
	if err != nil {
		return err
	}

	update := map[string]interface{}{
		"subscription_status": string(domain.CardStatusExpired),
		"updated_at":          formatTimestamp(r.clock.Now()),
	}

	for start := 0; start < len(ids); start += markExpiredBatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + markExpiredBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		_, _, err := client.From(cardsTable).
			Update(update, "minimal", "").
			In("id", ids[start:end]).
			Eq("subscription_status", string(domain.CardStatusActive)).
			Execute()
		if err != nil {
			return fmt.Errorf("failed to mark cards expired: %w", err)
		}
	}

	r.logger.Info("Cards marked expired", "count", len(ids))
	return nil
}

// UpdateSubscription writes a renewal: new plan, new expiry and an active status.
func (r *CardRepository) UpdateSubscription(ctx context.Context, id string, plan domain.Plan, expiresAt *time.Time) (*domain.Card, error) {
	client, err := r.serviceRole()
	if err != nil {
		return nil, err
	}

	update := map[string]interface{}{
		"plan":                plan.String(),
		"subscription_status": string(domain.CardStatusActive),
		"expires_at":          nil,
		"updated_at":          formatTimestamp(r.clock.Now()),
	}
	if expiresAt != nil {
		update["expires_at"] = formatTimestamp(*expiresAt)
	}

	data, _, err := client.From(cardsTable).
		Update(update, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrCardNotFound
	}

	r.logger.Info("Subscription updated", "card_id", id, "plan", plan)
	return mapToCard(rows[0])
}

func (r *CardRepository) serviceRole() (*supabase.Client, error) {
	client, err := r.supabaseClient.ServiceRole()
	if err != nil {
		return nil, fmt.Errorf("failed to get service role client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}
	return client, nil
}

// mapToCard fails on a malformed expires_at: reading it as "never expires"
// would keep a lapsed plan entitled.
func mapToCard(data map[string]interface{}) (*domain.Card, error) {
	expiresAt, err := getTimePointer(data, "expires_at")
	if err != nil {
		return nil, fmt.Errorf("failed to map card: %w", err)
	}
	card := &domain.Card{
		ID:          getString(data, "id"),
		UserID:      getString(data, "user_id"),
		DisplayName: getString(data, "display_name"),
		Plan:        domain.ParsePlan(getString(data, "plan")),
		Status:      domain.CardStatusActive,
		ExpiresAt:   expiresAt,
	}
	if getString(data, "subscription_status") == string(domain.CardStatusExpired) {
		card.Status = domain.CardStatusExpired
	}
	for key, dst := range map[string]*time.Time{"created_at": &card.CreatedAt, "updated_at": &card.UpdatedAt} {
		t, ok, err := getTime(data, key)
		if err != nil {
			return nil, fmt.Errorf("failed to map card: %w", err)
		}
		if ok {
			*dst = t
		}
	}
	return card, nil
}

var _ domain.CardRepository = (*CardRepository)(nil)
