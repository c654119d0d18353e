package repository

import (
	"context"
	"fmt"

	"finderid-api/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

const productsTable = "card_products"

// ProductRepository implements the domain.ProductRepository interface using Supabase.
type ProductRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewProductRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *ProductRepository {
	return &ProductRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// ListActive returns the card's active listings, newest first.
func (r *ProductRepository) ListActive(ctx context.Context, cardID string, token string) ([]*domain.Product, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(productsTable).
		Select("*", "", false).
		Eq("card_id", cardID).
		Eq("is_active", "true").
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapToProduct(row)
		if err != nil {
			return nil, err
		}
		out = append(out, product)
	}
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product, token string) (*domain.Product, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"card_id":   product.CardID,
		"name":      sanitizeText(product.Name),
		"is_active": true,
	}
	if product.Description != nil {
		row["description"] = sanitizeText(*product.Description)
	}
	if product.Price != nil {
		row["price"] = *product.Price
	}
	if product.ImageURL != nil {
		row["image_url"] = *product.ImageURL
	}

	data, _, err := client.From(productsTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create product: empty response")
	}
	return mapToProduct(rows[0])
}

// Deactivate hides a listing. Products are never hard-deleted so their history
// stays available to the owner.
func (r *ProductRepository) Deactivate(ctx context.Context, cardID string, productID string, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(productsTable).
		Update(map[string]interface{}{"is_active": false}, "representation", "").
		Eq("id", productID).
		Eq("card_id", cardID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func mapToProduct(data map[string]interface{}) (*domain.Product, error) {
	p := &domain.Product{
		ID:          getString(data, "id"),
		CardID:      getString(data, "card_id"),
		Name:        getString(data, "name"),
		Description: getStringPointer(data, "description"),
		Price:       getFloat64Pointer(data, "price"),
		ImageURL:    getStringPointer(data, "image_url"),
		IsActive:    getBool(data, "is_active"),
	}
	t, ok, err := getTime(data, "created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to map product: %w", err)
	}
	if ok {
		p.CreatedAt = t
	}
	return p, nil
}

var _ domain.ProductRepository = (*ProductRepository)(nil)
