package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"foodiegv/catalog"
	"foodiegv/domain"
)

var ErrNotFound = errors.New("not found")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx reply other than 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront returned %d", e.Status)
	}
	return fmt.Sprintf("storefront returned %d: %s", e.Status, e.Message)
}

// Client talks to storefront-svc. BaseURL includes any /api prefix.
type Client struct {
	BaseURL string
	HTTP    HTTPClient
}

func NewClient(baseURL string, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: baseURL, HTTP: httpClient}
}

func (c *Client) Restaurants(ctx context.Context, criteria catalog.Criteria) ([]domain.Restaurant, error) {
	path := "/restaurants"
	if query := criteria.Query().Encode(); query != "" {
		path += "?" + query
	}

	var restaurants []domain.Restaurant
	if err := c.do(ctx, http.MethodGet, path, nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *Client) Restaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	if err := c.do(ctx, http.MethodGet, "/restaurants/"+url.PathEscape(id), nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (c *Client) Reviews(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.do(ctx, http.MethodGet, "/restaurants/"+url.PathEscape(restaurantID)+"/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, restaurantID string, input domain.ReviewInput) (*domain.Review, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	var review domain.Review
	if err := c.do(ctx, http.MethodPost, "/restaurants/"+url.PathEscape(restaurantID)+"/reviews", body, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, dst any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
