package storage

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"foodiegv/domain"
)

//go:embed data/restaurants.json data/reviews.json
var embeddedFixture embed.FS

// FixtureRepository serves the catalog from an in-memory JSON fixture.
type FixtureRepository struct {
	restaurants []domain.Restaurant
	reviews     []domain.Review
}

// NewFixtureRepository loads restaurants.json and reviews.json from dir, or
// from the embedded copy when dir is empty.
func NewFixtureRepository(dir string) (*FixtureRepository, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embeddedFixture, "data")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}
	return LoadFixture(fsys)
}

func LoadFixture(fsys fs.FS) (*FixtureRepository, error) {
	repo := &FixtureRepository{}
	if err := readJSON(fsys, "restaurants.json", &repo.restaurants); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, "reviews.json", &repo.reviews); err != nil {
		return nil, err
	}
	return repo, nil
}

func readJSON(fsys fs.FS, name string, dst any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}

func (r *FixtureRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	restaurants := make([]domain.Restaurant, len(r.restaurants))
	copy(restaurants, r.restaurants)
	return restaurants, nil
}

func (r *FixtureRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	for _, rest := range r.restaurants {
		if rest.ID == id {
			found := rest
			return &found, nil
		}
	}
	return nil, nil
}

func (r *FixtureRepository) ListReviews(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0)
	for _, review := range r.reviews {
		if review.RestaurantID == restaurantID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}
