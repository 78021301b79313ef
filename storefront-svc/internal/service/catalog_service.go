package service

import (
	"context"
	"errors"
	"fmt"

	"foodiegv/catalog"
	"foodiegv/domain"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

type CatalogService struct {
	repository CatalogRepository
}

func NewCatalogService(repository CatalogRepository) *CatalogService {
	return &CatalogService{repository: repository}
}

func (s *CatalogService) List(ctx context.Context, criteria catalog.Criteria) ([]domain.Restaurant, error) {
	restaurants, err := s.repository.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	return catalog.Filter(restaurants, criteria), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	restaurant, err := s.repository.GetRestaurant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant %s: %w", id, err)
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, nil
}
