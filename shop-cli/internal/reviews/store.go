package reviews

import (
	"context"
	"errors"
	"log"
	"sync"

	"foodiegv/domain"
	"foodiegv/shop-cli/internal/api"
)

var ErrSubmitInFlight = errors.New("a review submission is already in progress")

type ReviewAPI interface {
	Reviews(ctx context.Context, restaurantID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, restaurantID string, input domain.ReviewInput) (*domain.Review, error)
}

var _ ReviewAPI = (*api.Client)(nil)

// Store is the review list of one restaurant page. Submissions are shown
// as the server echoes them, ahead of the loaded list.
type Store struct {
	restaurantID string
	api          ReviewAPI
	logger       *log.Logger

	mu         sync.Mutex
	reviews    []domain.Review
	submitting bool
}

func NewStore(restaurantID string, reviewAPI ReviewAPI, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		restaurantID: restaurantID,
		api:          reviewAPI,
		logger:       logger,
		reviews:      []domain.Review{},
	}
}

func (s *Store) Load(ctx context.Context) error {
	reviews, err := s.api.Reviews(ctx, s.restaurantID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.reviews = append([]domain.Review{}, reviews...)
	s.mu.Unlock()
	return nil
}

func (s *Store) Reviews() []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Review{}, s.reviews...)
}

// Submit validates locally before any request is made.
func (s *Store) Submit(ctx context.Context, input domain.ReviewInput) (*domain.Review, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.submitting = true
	s.mu.Unlock()

	review, err := s.api.CreateReview(ctx, s.restaurantID, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.logger.Printf("Error submitting review for restaurant %s: %v", s.restaurantID, err)
		return nil, err
	}

	s.reviews = append([]domain.Review{*review}, s.reviews...)
	return review, nil
}

// Average is the mean rating of the local list, 0 when empty.
func (s *Store) Average() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range s.reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(s.reviews))
}
