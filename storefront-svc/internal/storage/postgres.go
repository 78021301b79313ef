package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodiegv/domain"
)

// PostgresRepository reads the catalog from Postgres. It never writes
// reviews; submissions stay an acknowledged echo.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const restaurantColumns = `id, name, COALESCE(image, ''), cuisine, neighborhood, average_price,
		rating, review_count, COALESCE(delivery_time, ''), delivery_fee`

func scanRestaurant(row interface{ Scan(...any) error }, rest *domain.Restaurant) error {
	return row.Scan(&rest.ID, &rest.Name, &rest.Image, &rest.Cuisine, &rest.Neighborhood, &rest.AveragePrice,
		&rest.Rating, &rest.ReviewCount, &rest.DeliveryTime, &rest.DeliveryFee)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	index := make(map[string]int)
	for rows.Next() {
		var rest domain.Restaurant
		if err := scanRestaurant(rows, &rest); err != nil {
			return nil, err
		}
		rest.Menu = []domain.MenuItem{}
		index[rest.ID] = len(restaurants)
		restaurants = append(restaurants, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.DB.QueryContext(ctx, `
		SELECT restaurant_id, id, name, COALESCE(description, ''), price, COALESCE(image, ''), category
		FROM menu_items
		ORDER BY restaurant_id, position, id`)
	if err != nil {
		return nil, err
	}
	defer items.Close()

	for items.Next() {
		var restaurantID string
		var item domain.MenuItem
		if err := items.Scan(&restaurantID, &item.ID, &item.Name, &item.Description, &item.Price, &item.Image, &item.Category); err != nil {
			return nil, err
		}
		if i, ok := index[restaurantID]; ok {
			restaurants[i].Menu = append(restaurants[i].Menu, item)
		}
	}
	return restaurants, items.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE id = $1`, id)
	if err := scanRestaurant(row, &rest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), price, COALESCE(image, ''), category
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY position, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rest.Menu = []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Image, &item.Category); err != nil {
			return nil, err
		}
		rest.Menu = append(rest.Menu, item)
	}
	return &rest, rows.Err()
}

func (r *PostgresRepository) ListReviews(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, user_name, rating, COALESCE(comment, ''), to_char(review_date, 'YYYY-MM-DD')
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY review_date DESC, id`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.RestaurantID, &rev.UserName, &rev.Rating, &rev.Comment, &rev.Date); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			image TEXT,
			cuisine TEXT NOT NULL,
			neighborhood TEXT NOT NULL,
			average_price NUMERIC(10, 2) NOT NULL DEFAULT 0,
			rating NUMERIC(3, 2) NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			delivery_time TEXT,
			delivery_fee NUMERIC(10, 2) NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			restaurant_id TEXT NOT NULL REFERENCES restaurants (id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
			image TEXT,
			category TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (restaurant_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT,
			review_date DATE NOT NULL DEFAULT CURRENT_DATE
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
