package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*repository.Repositories, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repository.New(db), mock
}

var saleColumns = []string{
	"id", "customer_id", "status", "total", "date", "payment_method", "tracking_code", "address", "notes",
	"created_at", "updated_at", "name", "email", "phone",
}

var saleItemColumns = []string{
	"id", "sale_id", "product_id", "quantity", "unit_price", "subtotal", "name", "price", "status", "image_url",
}

func TestSaleRepository_CreateSale(t *testing.T) {
	ctx := context.Background()

	newSale := func() *models.Sale {
		return &models.Sale{
			CustomerID: uuid.New(),
			Status:     models.SaleStatusPending,
			Total:      decimal.NewFromInt(25),
			Items: []models.SaleItem{
				{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(20)},
				{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(5), Subtotal: decimal.NewFromInt(5)},
			},
		}
	}

	t.Run("Success - header and items in one transaction", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		sale := newSale()
		saleID := uuid.New()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales (customer_id, status, total, payment_method, address)")).
			WithArgs(sale.CustomerID, sale.Status, sale.Total, nil, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "date", "created_at", "updated_at"}).AddRow(saleID, now, now, now))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sale_items")).
			WithArgs(saleID, 1, sale.Items[0].ProductID, 2, sale.Items[0].UnitPrice, sale.Items[0].Subtotal).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sale_items")).
			WithArgs(saleID, 2, sale.Items[1].ProductID, 1, sale.Items[1].UnitPrice, sale.Items[1].Subtotal).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectCommit()

		// Act
		err := repos.Sales.CreateSale(ctx, sale)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, saleID, sale.ID)
		assert.Equal(t, saleID, sale.Items[1].SaleID)
		assert.NotEqual(t, uuid.Nil, sale.Items[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Item failure rolls back and keeps the driver error", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		sale := newSale()
		pqErr := &pq.Error{Code: "23503", Message: "insert or update on table \"sale_items\" violates foreign key constraint"}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "date", "created_at", "updated_at"}).AddRow(uuid.New(), time.Now(), time.Now(), time.Now()))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sale_items")).WillReturnError(pqErr)
		mock.ExpectRollback()

		// Act
		err := repos.Sales.CreateSale(ctx, sale)

		// Assert
		require.Error(t, err)
		storageErr, ok := repository.StorageError(err)
		require.True(t, ok)
		assert.Equal(t, pqErr.Message, storageErr.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaleRepository_GetSaleByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - with customer and items", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		saleID, customerID, productID := uuid.New(), uuid.New(), uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta("FROM sales s JOIN customers c ON c.id = s.customer_id WHERE s.id = $1")).
			WithArgs(saleID).
			WillReturnRows(sqlmock.NewRows(saleColumns).
				AddRow(saleID, customerID, "SHIPPED", "25.00", now, "card", "ABC123", "Main St 1", "Order shipped", now, now, "Ana", "ana@example.com", ""))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE si.sale_id = ANY($1::uuid[])")).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(saleItemColumns).
				AddRow(uuid.New(), saleID, productID, 2, "12.50", "25.00", "Mug", "14.00", "ACTIVE", ""))

		// Act
		sale, err := repos.Sales.GetSaleByID(ctx, saleID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.SaleStatusShipped, sale.Status)
		assert.True(t, decimal.NewFromInt(25).Equal(sale.Total))
		require.NotNil(t, sale.Customer)
		assert.Equal(t, "Ana", sale.Customer.Name)
		require.Len(t, sale.Items, 1)
		assert.True(t, decimal.RequireFromString("12.50").Equal(sale.Items[0].UnitPrice))
		assert.Equal(t, "Mug", sale.Items[0].Product.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE s.id = $1")).WillReturnRows(sqlmock.NewRows(saleColumns))

		// Act
		sale, err := repos.Sales.GetSaleByID(ctx, uuid.New())

		// Assert
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaleRepository_ListSales(t *testing.T) {
	// Arrange
	repos, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sales")).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.date DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows(saleColumns))

	// Act
	sales, total, err := repos.Sales.ListSales(context.Background(), 20, 10)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, sales)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepository_UpdateSaleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Absent patch fields are sent as NULL", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("tracking_code = COALESCE($3, tracking_code), address = COALESCE($4, address)")).
			WithArgs("PREPARING", "Order in preparation", nil, nil, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repos.Sales.UpdateSaleStatus(ctx, id, models.SaleStatusChange{Status: models.SaleStatusPreparing, Notes: "Order in preparation"})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Supplied tracking code is written", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		id := uuid.New()
		code := "ABC123"

		mock.ExpectExec(regexp.QuoteMeta("UPDATE sales")).
			WithArgs("SHIPPED", "Order shipped with tracking: ABC123", code, nil, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repos.Sales.UpdateSaleStatus(ctx, id, models.SaleStatusChange{Status: models.SaleStatusShipped, Notes: "Order shipped with tracking: ABC123", TrackingCode: &code})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE sales")).WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repos.Sales.UpdateSaleStatus(ctx, uuid.New(), models.SaleStatusChange{Status: "FOO", Notes: "Status updated to FOO"})

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Database error", func(t *testing.T) {
		// Arrange
		repos, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE sales")).WillReturnError(errors.New("connection reset"))

		// Act
		err := repos.Sales.UpdateSaleStatus(ctx, uuid.New(), models.SaleStatusChange{Status: models.SaleStatusCompleted})

		// Assert
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSaleRepository_TopSellingProducts(t *testing.T) {
	// Arrange
	repos, mock := newMockDB(t)
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sold DESC LIMIT $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "sold", "name", "price", "stock", "status", "image_url"}).
			AddRow(productID, 42, "Mug", "9.90", 3, "ACTIVE", ""))

	// Act
	top, err := repos.Sales.TopSellingProducts(context.Background(), 5)

	// Assert
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 42, top[0].QuantitySold)
	assert.Equal(t, productID, top[0].Product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
