package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"foodiegv/storefront-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var restaurantCols = []string{"id", "name", "image", "cuisine", "neighborhood", "average_price",
	"rating", "review_count", "delivery_time", "delivery_fee"}

func newMockRepository(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresRepository(db), mock
}

func TestPostgresRepository_ListRestaurants(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM restaurants").
		WillReturnRows(sqlmock.NewRows(restaurantCols).
			AddRow("1", "Bella Napoli", "", "Italiana", "Centro", 45.0, 4.6, 128, "30-40 min", 4.99).
			AddRow("2", "Burger House", "", "Hambúrgueres", "Jardins", 28.0, 4.3, 96, "20-30 min", 3.99))
	mock.ExpectQuery("FROM menu_items").
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_id", "id", "name", "description", "price", "image", "category"}).
			AddRow("1", "101", "Spaghetti Carbonara", "", 42.9, "", "Massas").
			AddRow("2", "201", "Classic Burger", "", 15.0, "", "Burgers").
			AddRow("9", "901", "Orphan", "", 1.0, "", "Other"))

	restaurants, err := repo.ListRestaurants(context.Background())

	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Bella Napoli", restaurants[0].Name)
	require.Len(t, restaurants[0].Menu, 1)
	assert.Equal(t, "101", restaurants[0].Menu[0].ID)
	require.Len(t, restaurants[1].Menu, 1)
	assert.Equal(t, 15.0, restaurants[1].Menu[0].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetRestaurant(t *testing.T) {
	tests := []struct {
		name          string
		prepare       func(mock sqlmock.Sqlmock)
		expectNil     bool
		expectedError bool
	}{
		{
			name: "found",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM restaurants").WithArgs("2").
					WillReturnRows(sqlmock.NewRows(restaurantCols).
						AddRow("2", "Burger House", "", "Hambúrgueres", "Jardins", 28.0, 4.3, 96, "20-30 min", 3.99))
				mock.ExpectQuery("FROM menu_items").WithArgs("2").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "image", "category"}).
						AddRow("201", "Classic Burger", "", 15.0, "", "Burgers"))
			},
		},
		{
			name: "not_found",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM restaurants").WithArgs("99").WillReturnError(sql.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "query_error",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM restaurants").WithArgs("2").WillReturnError(errors.New("connection reset"))
			},
			expectedError: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			testCase.prepare(mock)

			id := "2"
			if testCase.expectNil {
				id = "99"
			}
			restaurant, err := repo.GetRestaurant(context.Background(), id)

			switch {
			case testCase.expectedError:
				assert.Error(t, err)
			case testCase.expectNil:
				assert.NoError(t, err)
				assert.Nil(t, restaurant)
			default:
				require.NoError(t, err)
				require.NotNil(t, restaurant)
				assert.Equal(t, "Burger House", restaurant.Name)
				require.Len(t, restaurant.Menu, 1)
				assert.Equal(t, "Classic Burger", restaurant.Menu[0].Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_ListReviews(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM reviews").WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "user_name", "rating", "comment", "date"}).
			AddRow("1", "1", "Mariana Souza", 5, "A melhor carbonara da cidade!", "2024-03-12").
			AddRow("2", "1", "Pedro Lima", 4, "", "2024-03-08"))

	reviews, err := repo.ListReviews(context.Background(), "1")

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "2024-03-12", reviews[0].Date)
	assert.Equal(t, "", reviews[1].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_EnsureSchema(t *testing.T) {
	t.Run("creates_tables", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS restaurants").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS menu_items").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS reviews").WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.EnsureSchema(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps_error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS restaurants").WillReturnError(errors.New("permission denied"))

		err := repo.EnsureSchema(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ensure schema")
	})
}
