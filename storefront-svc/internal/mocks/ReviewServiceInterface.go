package mocks

import (
	"context"

	"foodiegv/domain"

	"github.com/stretchr/testify/mock"
)

type ReviewServiceInterface struct {
	mock.Mock
}

func (m *ReviewServiceInterface) List(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	args := m.Called(ctx, restaurantID)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func (m *ReviewServiceInterface) Create(ctx context.Context, restaurantID string, input domain.ReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, restaurantID, input)
	review, _ := args.Get(0).(*domain.Review)
	return review, args.Error(1)
}

func NewReviewServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewServiceInterface {
	m := &ReviewServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
