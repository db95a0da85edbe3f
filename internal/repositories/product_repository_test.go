package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{
	"id", "name", "description", "price", "stock", "status", "image_url",
	"category_id", "brand_id", "created_at", "updated_at", "category_name", "brand_name",
}

func TestProductRepository_GetProductsByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - products with options", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		p1, p2, categoryID := uuid.New(), uuid.New(), uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = ANY($1::uuid[])")).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(p1, "T-Shirt", "", "10.00", 5, "ACTIVE", "", categoryID, nil, now, now, "Clothing", nil).
				AddRow(p2, "Sticker", "", "5.00", 100, "ACTIVE", "", nil, nil, now, now, nil, nil))
		mock.ExpectQuery(regexp.QuoteMeta("FROM product_options WHERE product_id = ANY($1::uuid[])")).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "name", "option_values"}).
				AddRow(uuid.New(), p1, "Size", "{S,M,L}"))

		// Act
		products, err := repos.Products.GetProductsByIDs(ctx, []uuid.UUID{p1, p2})

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.True(t, decimal.NewFromInt(10).Equal(products[0].Price))
		require.NotNil(t, products[0].Category)
		assert.Equal(t, "Clothing", products[0].Category.Name)
		assert.Nil(t, products[0].Brand)
		require.Len(t, products[0].Options, 1)
		assert.Equal(t, []string{"S", "M", "L"}, products[0].Options[0].Values)
		assert.Empty(t, products[1].Options)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty id list skips the database", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)

		// Act
		products, err := repos.Products.GetProductsByIDs(ctx, nil)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_CreateProduct(t *testing.T) {
	// Arrange
	repos, mock := newMockDB(t)
	product := &models.Product{
		Name:    "T-Shirt",
		Price:   decimal.RequireFromString("19.90"),
		Stock:   3,
		Status:  models.ProductStatusActive,
		Options: []models.ProductOption{{Name: "Size", Values: []string{"S", "M"}}},
	}
	newID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("T-Shirt", nil, product.Price, 3, product.Status, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO product_options (product_id, name, option_values)")).
		WithArgs(newID, "Size", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	// Act
	err := repos.Products.CreateProduct(context.Background(), product)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, newID, product.ID)
	assert.Equal(t, newID, product.Options[0].ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces options in the same transaction", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		product := &models.Product{ID: uuid.New(), Name: "Mug", Price: decimal.NewFromInt(8), Status: models.ProductStatusActive,
			Options: []models.ProductOption{{Name: "Color", Values: []string{"Red"}}}}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_options WHERE product_id = $1")).
			WithArgs(product.ID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO product_options")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectCommit()

		// Act
		err := repos.Products.UpdateProduct(ctx, product, true)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing product rolls back", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))
		mock.ExpectRollback()

		// Act
		err := repos.Products.UpdateProduct(ctx, &models.Product{ID: uuid.New()}, false)

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - options removed first", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_options WHERE product_id = $1")).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := repos.Products.DeleteProduct(ctx, id)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure rolls back", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_options")).WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		// Act
		err := repos.Products.DeleteProduct(ctx, uuid.New())

		// Assert
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_CountSaleItems(t *testing.T) {
	// Arrange
	repos, mock := newMockDB(t)
	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sale_items WHERE product_id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	// Act
	count, err := repos.Products.CountSaleItems(context.Background(), id)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
