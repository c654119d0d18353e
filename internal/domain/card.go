package domain

import (
	"context"
	"time"
)

// CardStatus is the subscription flag maintained on a card by the expiry sweep.
type CardStatus string

const (
	CardStatusActive  CardStatus = "active"
	CardStatusExpired CardStatus = "expired"
)

// Card is an owner's mCard profile. It carries the subscription plan and expiry.
type Card struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	DisplayName string     `json:"display_name"`
	Plan        Plan       `json:"plan"`
	Status      CardStatus `json:"status"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EffectivePlan returns the tier the card is entitled to at now.
func (c *Card) EffectivePlan(now time.Time) Plan {
	return EffectivePlan(c.Plan, c.Status, c.ExpiresAt, now)
}

// Status is a short-lived post attached to a card.
type Status struct {
	ID        string    `json:"id"`
	CardID    string    `json:"card_id"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpiresAt returns when the status stops being shown.
func (s *Status) ExpiresAt() time.Time {
	return StatusExpiresAt(s.CreatedAt)
}

// UsageRecord converts the status into a usage log entry.
func (s *Status) UsageRecord() UsageRecord {
	return UsageRecord{ID: s.ID, OwnerID: s.CardID, Kind: UsageKindStatus, CreatedAt: s.CreatedAt}
}

// Validate checks the fields a client must supply.
func (s *Status) Validate() error {
	if s.CardID == "" {
		return &ValidationError{Field: "card_id", Message: "card ID is required"}
	}
	if s.Content == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if len([]rune(s.Content)) > MaxStatusLength {
		return &ValidationError{Field: "content", Message: "content is too long"}
	}
	return nil
}

// MaxStatusLength bounds the text of a status post.
const MaxStatusLength = 500

// Product is a persistent product or service listing attached to a card.
type Product struct {
	ID          string    `json:"id"`
	CardID      string    `json:"card_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the fields a client must supply.
func (p *Product) Validate() error {
	if p.CardID == "" {
		return &ValidationError{Field: "card_id", Message: "card ID is required"}
	}
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if p.Price != nil && *p.Price < 0 {
		return &ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	return nil
}

// EntitlementSummary is what the client needs to render quota and expiry banners.
type EntitlementSummary struct {
	CardID        string     `json:"card_id"`
	Plan          Plan       `json:"plan"`
	EffectivePlan Plan       `json:"effective_plan"`
	DisplayName   string     `json:"display_name"`
	Statuses      Decision   `json:"statuses"`
	Products      Decision   `json:"products"`
	Expiry        ExpiryInfo `json:"expiry"`
	EvaluatedAt   time.Time  `json:"evaluated_at"`
}

// CardRepository is the owner/profile store.
type CardRepository interface {
	GetByID(ctx context.Context, id string, token string) (*Card, error)

	// The methods below run with service-role credentials.
	ListExpirable(ctx context.Context) ([]*Card, error)
	MarkExpired(ctx context.Context, ids []string) error
	UpdateSubscription(ctx context.Context, id string, plan Plan, expiresAt *time.Time) (*Card, error)
}

// StatusRepository is the status usage log.
type StatusRepository interface {
	ListSince(ctx context.Context, cardID string, since time.Time, token string) ([]*Status, error)
	Create(ctx context.Context, status *Status, token string) (*Status, error)
	Delete(ctx context.Context, cardID string, statusID string, token string) error
}

// ProductRepository is the product usage log.
type ProductRepository interface {
	ListActive(ctx context.Context, cardID string, token string) ([]*Product, error)
	Create(ctx context.Context, product *Product, token string) (*Product, error)
	Deactivate(ctx context.Context, cardID string, productID string, token string) error
}

// EntitlementService evaluates plan limits for a card.
type EntitlementService interface {
	GetSummary(ctx context.Context, userID, cardID string, loc *time.Location, token string) (*EntitlementSummary, error)
	AuthorizeStatus(ctx context.Context, userID, cardID string, loc *time.Location, token string) (*EntitlementSummary, error)
	AuthorizeProduct(ctx context.Context, userID, cardID string, token string) (*EntitlementSummary, error)
}

// StatusService defines the use-case operations for statuses.
type StatusService interface {
	ListActiveStatuses(ctx context.Context, userID, cardID string, token string) ([]*Status, error)
	CreateStatus(ctx context.Context, userID string, status *Status, loc *time.Location, token string) (*Status, error)
	DeleteStatus(ctx context.Context, userID, cardID, statusID string, token string) error
}

// ProductService defines the use-case operations for products.
type ProductService interface {
	ListActiveProducts(ctx context.Context, userID, cardID string, token string) ([]*Product, error)
	CreateProduct(ctx context.Context, userID string, product *Product, token string) (*Product, error)
	DeactivateProduct(ctx context.Context, userID, cardID, productID string, token string) error
}

// SubscriptionService applies renewals coming from the payment workflow.
type SubscriptionService interface {
	Renew(ctx context.Context, cardID string, plan string, expiresAt *time.Time) (*Card, error)
}
