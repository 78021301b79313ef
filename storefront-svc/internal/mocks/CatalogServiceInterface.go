package mocks

import (
	"context"

	"foodiegv/catalog"
	"foodiegv/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogServiceInterface struct {
	mock.Mock
}

func (m *CatalogServiceInterface) List(ctx context.Context, criteria catalog.Criteria) ([]domain.Restaurant, error) {
	args := m.Called(ctx, criteria)
	restaurants, _ := args.Get(0).([]domain.Restaurant)
	return restaurants, args.Error(1)
}

func (m *CatalogServiceInterface) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	restaurant, _ := args.Get(0).(*domain.Restaurant)
	return restaurant, args.Error(1)
}

func NewCatalogServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
