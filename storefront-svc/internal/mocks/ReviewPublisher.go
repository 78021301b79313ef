package mocks

import (
	"context"

	"foodiegv/domain"

	"github.com/stretchr/testify/mock"
)

type ReviewPublisher struct {
	mock.Mock
}

func (m *ReviewPublisher) PublishReview(ctx context.Context, event domain.ReviewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func NewReviewPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewPublisher {
	m := &ReviewPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
