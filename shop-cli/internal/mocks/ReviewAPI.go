package mocks

import (
	"context"

	"foodiegv/domain"

	"github.com/stretchr/testify/mock"
)

type ReviewAPI struct {
	mock.Mock
}

func (m *ReviewAPI) Reviews(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	args := m.Called(ctx, restaurantID)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func (m *ReviewAPI) CreateReview(ctx context.Context, restaurantID string, input domain.ReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, restaurantID, input)
	review, _ := args.Get(0).(*domain.Review)
	return review, args.Error(1)
}

func NewReviewAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewAPI {
	m := &ReviewAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
