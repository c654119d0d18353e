package repository

import (
	"context"
	"fmt"
	"time"

	"finderid-api/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

const statusesTable = "card_statuses"

// StatusRepository implements the domain.StatusRepository interface using Supabase.
type StatusRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewStatusRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *StatusRepository {
	return &StatusRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// ListSince returns the card's statuses created at or after since, newest first.
func (r *StatusRepository) ListSince(ctx context.Context, cardID string, since time.Time, token string) ([]*domain.Status, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(statusesTable).
		Select("id,card_id,content,image_url,created_at", "", false).
		Eq("card_id", cardID).
		Gte("created_at", formatTimestamp(since)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Status, 0, len(rows))
	for _, row := range rows {
		status, err := mapToStatus(row)
		if err != nil {
			return nil, err
		}
		out = append(out, status)
	}
	return out, nil
}

func (r *StatusRepository) Create(ctx context.Context, status *domain.Status, token string) (*domain.Status, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"card_id": status.CardID,
		"content": sanitizeText(status.Content),
	}
	if status.ImageURL != nil {
		row["image_url"] = *status.ImageURL
	}
	if !status.CreatedAt.IsZero() {
		row["created_at"] = formatTimestamp(status.CreatedAt)
	}

	// Request "representation" so PostgREST returns the inserted row.
	data, _, err := client.From(statusesTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create status: empty response")
	}
	return mapToStatus(rows[0])
}

func (r *StatusRepository) Delete(ctx context.Context, cardID string, statusID string, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(statusesTable).
		Delete("representation", "").
		Eq("id", statusID).
		Eq("card_id", cardID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrStatusNotFound
	}
	return nil
}

// mapToStatus requires created_at: a status without a creation time can not
// be placed in a day window and would escape the daily quota.
func mapToStatus(data map[string]interface{}) (*domain.Status, error) {
	createdAt, ok, err := getTime(data, "created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to map status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("failed to map status %s: missing created_at", getString(data, "id"))
	}
	return &domain.Status{
		ID:        getString(data, "id"),
		CardID:    getString(data, "card_id"),
		Content:   getString(data, "content"),
		ImageURL:  getStringPointer(data, "image_url"),
		CreatedAt: createdAt,
	}, nil
}

var _ domain.StatusRepository = (*StatusRepository)(nil)
