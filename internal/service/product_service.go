package service

import (
	"context"

	"finderid-api/internal/domain"
)

type productService struct {
	cardRepo     domain.CardRepository
	productRepo  domain.ProductRepository
	entitlements domain.EntitlementService
	logger       domain.Logger
}

func NewProductService(
	cardRepo domain.CardRepository,
	productRepo domain.ProductRepository,
	entitlements domain.EntitlementService,
	logger domain.Logger,
) *productService {
	return &productService{
		cardRepo:     cardRepo,
		productRepo:  productRepo,
		entitlements: entitlements,
		logger:       logger,
	}
}

func (s *productService) ListActiveProducts(ctx context.Context, userID, cardID string, token string) ([]*domain.Product, error) {
	if _, err := loadOwnedCard(ctx, s.cardRepo, userID, cardID, token); err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListActive(ctx, cardID, token)
	if err != nil {
		s.logger.Error("Failed to list products", err, "card_id", cardID)
		return nil, storeError(err)
	}
	return products, nil
}

// CreateProduct adds a listing if the plan has a free product slot.
func (s *productService) CreateProduct(ctx context.Context, userID string, product *domain.Product, token string) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.entitlements.AuthorizeProduct(ctx, userID, product.CardID, token); err != nil {
		return nil, err
	}

	created, err := s.productRepo.Create(ctx, product, token)
	if err != nil {
		s.logger.Error("Failed to create product", err, "card_id", product.CardID)
		return nil, storeError(err)
	}

	s.logger.Info("Product created", "card_id", created.CardID, "product_id", created.ID)
	return created, nil
}

// DeactivateProduct frees a product slot.
func (s *productService) DeactivateProduct(ctx context.Context, userID, cardID, productID string, token string) error {
	if productID == "" {
		return &domain.ValidationError{Field: "product_id", Message: "product ID is required"}
	}
	if _, err := loadOwnedCard(ctx, s.cardRepo, userID, cardID, token); err != nil {
		return err
	}

	if err := s.productRepo.Deactivate(ctx, cardID, productID, token); err != nil {
		return storeError(err)
	}

	s.logger.Info("Product deactivated", "card_id", cardID, "product_id", productID)
	return nil
}

var _ domain.ProductService = (*productService)(nil)
