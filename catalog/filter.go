package catalog

import (
	"strings"

	"foodiegv/domain"
)

// Criteria is the set of optional restaurant filters. Empty strings and nil
// numbers are not applied.
type Criteria struct {
	Search       string
	Cuisine      string
	Neighborhood string
	MinRating    *float64
	MaxPrice     *float64
}

func Float(v float64) *float64 { return &v }

// minRating reports the rating floor. Zero or less is the same as no floor.
func (c Criteria) minRating() (float64, bool) {
	if c.MinRating == nil || *c.MinRating <= 0 {
		return 0, false
	}
	return *c.MinRating, true
}

func (c Criteria) IsEmpty() bool {
	return len(c.predicates()) == 0
}

// ActiveCount is the number of filter chips shown next to the search bar.
// The free-text search is not counted.
func (c Criteria) ActiveCount() int {
	count := 0
	if strings.TrimSpace(c.Cuisine) != "" {
		count++
	}
	if strings.TrimSpace(c.Neighborhood) != "" {
		count++
	}
	if _, ok := c.minRating(); ok {
		count++
	}
	if c.MaxPrice != nil {
		count++
	}
	return count
}

type predicate func(domain.Restaurant) bool

func (c Criteria) predicates() []predicate {
	var preds []predicate

	if search := strings.ToLower(strings.TrimSpace(c.Search)); search != "" {
		preds = append(preds, func(r domain.Restaurant) bool {
			return strings.Contains(strings.ToLower(r.Name), search) ||
				strings.Contains(strings.ToLower(r.Cuisine), search) ||
				strings.Contains(strings.ToLower(r.Neighborhood), search)
		})
	}
	if cuisine := strings.TrimSpace(c.Cuisine); cuisine != "" {
		preds = append(preds, func(r domain.Restaurant) bool {
			return strings.EqualFold(r.Cuisine, cuisine)
		})
	}
	if neighborhood := strings.TrimSpace(c.Neighborhood); neighborhood != "" {
		preds = append(preds, func(r domain.Restaurant) bool {
			return strings.EqualFold(r.Neighborhood, neighborhood)
		})
	}
	if minRating, ok := c.minRating(); ok {
		preds = append(preds, func(r domain.Restaurant) bool {
			return r.Rating >= minRating
		})
	}
	if c.MaxPrice != nil {
		maxPrice := *c.MaxPrice
		preds = append(preds, func(r domain.Restaurant) bool {
			return r.AveragePrice <= maxPrice
		})
	}
	return preds
}

// Filter returns the restaurants matching every supplied criterion, in input
// order. With no criteria the input is returned as is.
func Filter(restaurants []domain.Restaurant, c Criteria) []domain.Restaurant {
	preds := c.predicates()
	if len(preds) == 0 {
		return restaurants
	}

	filtered := make([]domain.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if matchesAll(r, preds) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matchesAll(r domain.Restaurant, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}
