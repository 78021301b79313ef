package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"foodiegv/domain"

	"github.com/google/uuid"
)

var ErrInvalidReview = errors.New("invalid review data")

// ReviewService lists fixture reviews and acknowledges submissions. A
// submission is echoed back to the caller and announced on the publisher;
// it is not written to the repository.
type ReviewService struct {
	repository ReviewRepository
	publisher  ReviewPublisher
	logger     *log.Logger
	now        func() time.Time
}

func NewReviewService(repository ReviewRepository, publisher ReviewPublisher, logger *log.Logger) *ReviewService {
	if logger == nil {
		logger = log.Default()
	}
	return &ReviewService{
		repository: repository,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the submission clock.
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	s.now = now
	return s
}

func (s *ReviewService) List(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	reviews, err := s.repository.ListReviews(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for restaurant %s: %w", restaurantID, err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, restaurantID string, input domain.ReviewInput) (*domain.Review, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReview, err)
	}

	submittedAt := s.now()
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate review id: %w", err)
	}

	review := &domain.Review{
		ID:           id.String(),
		RestaurantID: restaurantID,
		UserName:     input.UserName,
		Rating:       input.Rating,
		Comment:      input.Comment,
		Date:         submittedAt.UTC().Format(domain.ReviewDateLayout),
	}

	if s.publisher != nil {
		if err := s.publisher.PublishReview(ctx, domain.ReviewEvent{
			Type:         domain.ReviewSubmittedEvent,
			ReviewID:     review.ID,
			RestaurantID: restaurantID,
			Rating:       review.Rating,
			Timestamp:    submittedAt,
		}); err != nil {
			s.logger.Printf("Warning: failed to publish review %s: %v", review.ID, err)
		}
	}

	return review, nil
}
