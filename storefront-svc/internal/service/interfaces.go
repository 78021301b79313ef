package service

import (
	"context"

	"foodiegv/catalog"
	"foodiegv/domain"
)

// CatalogRepository returns (nil, nil) from GetRestaurant when the id is unknown.
type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
}

type ReviewRepository interface {
	ListReviews(ctx context.Context, restaurantID string) ([]domain.Review, error)
}

type ReviewPublisher interface {
	PublishReview(ctx context.Context, event domain.ReviewEvent) error
}

type CatalogServiceInterface interface {
	List(ctx context.Context, criteria catalog.Criteria) ([]domain.Restaurant, error)
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
}

type ReviewServiceInterface interface {
	List(ctx context.Context, restaurantID string) ([]domain.Review, error)
	Create(ctx context.Context, restaurantID string, input domain.ReviewInput) (*domain.Review, error)
}

type QRGenerator interface {
	Generate(restaurantID string) ([]byte, error)
}

var (
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ ReviewServiceInterface  = (*ReviewService)(nil)
	_ QRGenerator             = DefaultQRGenerator{}
)
