package mocks

import (
	"context"

	"foodiegv/domain"

	"github.com/stretchr/testify/mock"
)

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) ListReviews(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	args := m.Called(ctx, restaurantID)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func NewReviewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewRepository {
	m := &ReviewRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
