package mocks

import (
	"context"

	"foodiegv/catalog"
	"foodiegv/domain"

	"github.com/stretchr/testify/mock"
)

type RestaurantAPI struct {
	mock.Mock
}

func (m *RestaurantAPI) Restaurants(ctx context.Context, criteria catalog.Criteria) ([]domain.Restaurant, error) {
	args := m.Called(ctx, criteria)
	restaurants, _ := args.Get(0).([]domain.Restaurant)
	return restaurants, args.Error(1)
}

func NewRestaurantAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *RestaurantAPI {
	m := &RestaurantAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
