package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidNumber = errors.New("invalid numeric filter")

// ParseQuery extracts restaurant filters from the URL query.
func ParseQuery(query url.Values) (Criteria, error) {
	c := Criteria{
		Search:       query.Get("search"),
		Cuisine:      query.Get("cuisine"),
		Neighborhood: query.Get("neighborhood"),
	}

	var err error
	if c.MinRating, err = parseOptionalFloat(query, "minRating"); err != nil {
		return Criteria{}, err
	}
	if c.MaxPrice, err = parseOptionalFloat(query, "maxPrice"); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

func parseOptionalFloat(query url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, key, raw)
	}
	return &v, nil
}

// Query encodes the criteria for GET /restaurants, skipping absent ones.
func (c Criteria) Query() url.Values {
	params := url.Values{}
	if s := strings.TrimSpace(c.Search); s != "" {
		params.Set("search", s)
	}
	if s := strings.TrimSpace(c.Cuisine); s != "" {
		params.Set("cuisine", s)
	}
	if s := strings.TrimSpace(c.Neighborhood); s != "" {
		params.Set("neighborhood", s)
	}
	if minRating, ok := c.minRating(); ok {
		params.Set("minRating", strconv.FormatFloat(minRating, 'f', -1, 64))
	}
	if c.MaxPrice != nil {
		params.Set("maxPrice", strconv.FormatFloat(*c.MaxPrice, 'f', -1, 64))
	}
	return params
}
