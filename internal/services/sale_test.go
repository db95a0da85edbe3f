package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	appErrors "github.com/storedesk/backoffice-api/internal/errors"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
	"github.com/storedesk/backoffice-api/internal/repositories/mocks"
	service "github.com/storedesk/backoffice-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	sales     *mocks.SaleRepository
	customers *mocks.CustomerRepository
	products  *mocks.ProductRepository
	service   service.SaleService
}

func newSaleFixture(t *testing.T, policy models.TransitionPolicy) *saleFixture {
	f := &saleFixture{
		sales:     mocks.NewSaleRepository(t),
		customers: mocks.NewCustomerRepository(t),
		products:  mocks.NewProductRepository(t),
	}
	f.service = service.NewSaleService(f.sales, f.customers, f.products, policy)

	return f
}

func ptr(s string) *string {
	return &s
}

func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func TestCreateSale(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	p1 := models.Product{ID: uuid.New(), Name: "Keyboard", Price: decimal.NewFromInt(10)}
	p2 := models.Product{ID: uuid.New(), Name: "Mouse", Price: decimal.NewFromInt(5)}
	customer := &models.Customer{ID: customerID, Name: "Ada", Email: "ada@example.com"}

	t.Run("Success - Totals from product prices", func(t *testing.T) {
		// Arrange
		f := newSaleFixture(t, models.TransitionPermissive)
		req := &models.CreateSaleRequest{
			CustomerID: customerID,
			Items: []models.SaleItemRequest{
				{ProductID: p1.ID, Quantity: 2},
				{ProductID: p2.ID, Quantity: 1},
			},
			PaymentMethod: "card",
		}
		saleID := uuid.New()

		f.customers.On("GetCustomerByID", mock.Anything, customerID).Return(customer, nil).Once()
		f.products.On("GetProductsByIDs", mock.Anything, []uuid.UUID{p1.ID, p2.ID}).Return([]models.Product{p2, p1}, nil).Once()
		f.sales.On("CreateSale", mock.Anything, mock.MatchedBy(func(s *models.Sale) bool {
			return s.Total.Equal(decimal.NewFromInt(25)) && s.Status == models.SaleStatusPending && len(s.Items) == 2
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Sale).ID = saleID
		}).Return(nil).Once()

		// Act
		sale, err := f.service.CreateSale(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, saleID, sale.ID)
		assert.True(t, sale.Total.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, models.SaleStatusPending, sale.Status)
		assert.Equal(t, "card", sale.PaymentMethod)
		assert.Equal(t, customer, sale.Customer)

		require.Len(t, sale.Items, 2)
		assert.Equal(t, p1.ID, sale.Items[0].ProductID)
		assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, sale.Items[0].Subtotal.Equal(decimal.NewFromInt(20)))
		assert.True(t, sale.Items[1].Subtotal.Equal(decimal.NewFromInt(5)))
		require.NotNil(t, sale.Items[1].Product)
		assert.Equal(t, "Mouse", sale.Items[1].Product.Name)
	})

	t.Run("Success - Explicit initial status and repeated product", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)
		req := &models.CreateSaleRequest{
			CustomerID: customerID,
			Status:     models.SaleStatusCompleted,
			Items: []models.SaleItemRequest{
				{ProductID: p1.ID, Quantity: 1},
				{ProductID: p1.ID, Quantity: 3},
			},
		}

		f.customers.On("GetCustomerByID", mock.Anything, customerID).Return(customer, nil).Once()
		f.products.On("GetProductsByIDs", mock.Anything, []uuid.UUID{p1.ID}).Return([]models.Product{p1}, nil).Once()
		f.sales.On("CreateSale", mock.Anything, mock.AnythingOfType("*models.Sale")).Return(nil).Once()

		sale, err := f.service.CreateSale(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, models.SaleStatusCompleted, sale.Status)
		assert.True(t, sale.Total.Equal(decimal.NewFromInt(40)))
		assert.Len(t, sale.Items, 2)
	})

	t.Run("Failure - Empty items never reach the store", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)

		sale, err := f.service.CreateSale(ctx, &models.CreateSaleRequest{CustomerID: customerID})

		assert.Nil(t, sale)
		assertAppError(t, err, appErrors.ErrCodeValidation, "")
		f.customers.AssertNotCalled(t, "GetCustomerByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Non positive quantity", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)
		req := &models.CreateSaleRequest{
			CustomerID: customerID,
			Items:      []models.SaleItemRequest{{ProductID: p1.ID, Quantity: 0}},
		}

		_, err := f.service.CreateSale(ctx, req)

		assertAppError(t, err, appErrors.ErrCodeValidation, "")
	})

	t.Run("Failure - Status not allowed at creation", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)
		req := &models.CreateSaleRequest{
			CustomerID: customerID,
			Status:     models.SaleStatusShipped,
			Items:      []models.SaleItemRequest{{ProductID: p1.ID, Quantity: 1}},
		}

		_, err := f.service.CreateSale(ctx, req)

		assertAppError(t, err, appErrors.ErrCodeBadRequest, "")
	})

	t.Run("Failure - Customer not found", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)
		req := &models.CreateSaleRequest{
			CustomerID: customerID,
			Items:      []models.SaleItemRequest{{ProductID: p1.ID, Quantity: 1}},
		}

		f.customers.On("GetCustomerByID", mock.Anything, customerID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.CreateSale(ctx, req)

		assertAppError(t, err, appErrors.ErrCodeNotFound, fmt.Sprintf("Customer %s not found", customerID))
	})

	t.Run("Failure - Missing products listed in request order", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)
		missingA, missingB := uuid.New(), uuid.New()
		req := &models.CreateSaleRequest{
			CustomerID: customerID,
			Items: []models.SaleItemRequest{
				{ProductID: missingA, Quantity: 1},
				{ProductID: p1.ID, Quantity: 1},
				{ProductID: missingB, Quantity: 1},
				{ProductID: missingA, Quantity: 2},
			},
		}

		f.customers.On("GetCustomerByID", mock.Anything, customerID).Return(customer, nil).Once()
		f.products.On("GetProductsByIDs", mock.Anything, []uuid.UUID{missingA, p1.ID, missingB}).Return([]models.Product{p1}, nil).Once()

		sale, err := f.service.CreateSale(ctx, req)

		assert.Nil(t, sale)
		assertAppError(t, err, appErrors.ErrCodeBadRequest, fmt.Sprintf("Products not found: %s, %s", missingA, missingB))
		f.sales.AssertNotCalled(t, "CreateSale", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Database rejects the sale", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)
		req := &models.CreateSaleRequest{
			CustomerID: customerID,
			Items:      []models.SaleItemRequest{{ProductID: p1.ID, Quantity: 1}},
		}
		pqErr := &pq.Error{Code: "23503", Message: "insert or update on table \"sale_items\" violates foreign key constraint"}

		f.customers.On("GetCustomerByID", mock.Anything, customerID).Return(customer, nil).Once()
		f.products.On("GetProductsByIDs", mock.Anything, []uuid.UUID{p1.ID}).Return([]models.Product{p1}, nil).Once()
		f.sales.On("CreateSale", mock.Anything, mock.Anything).Return(fmt.Errorf("failed to insert sale item: %w", pqErr)).Once()

		_, err := f.service.CreateSale(ctx, req)

		assertAppError(t, err, appErrors.ErrCodeBadRequest, "Failed to create sale: "+pqErr.Message)
		assert.ErrorIs(t, err, pqErr)
	})

	t.Run("Failure - Other store errors propagate unchanged", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)
		req := &models.CreateSaleRequest{
			CustomerID: customerID,
			Items:      []models.SaleItemRequest{{ProductID: p1.ID, Quantity: 1}},
		}
		storeErr := errors.New("connection reset")

		f.customers.On("GetCustomerByID", mock.Anything, customerID).Return(customer, nil).Once()
		f.products.On("GetProductsByIDs", mock.Anything, []uuid.UUID{p1.ID}).Return([]models.Product{p1}, nil).Once()
		f.sales.On("CreateSale", mock.Anything, mock.Anything).Return(storeErr).Once()

		_, err := f.service.CreateSale(ctx, req)

		assert.Equal(t, storeErr, err)
	})
}

func TestUpdateSaleStatus(t *testing.T) {
	ctx := context.Background()
	saleID := uuid.New()

	saleIn := func(status models.SaleStatus) *models.Sale {
		return &models.Sale{ID: saleID, Status: status, Total: decimal.NewFromInt(25)}
	}

	t.Run("Success - Shipped with tracking code", func(t *testing.T) {
		// Arrange
		f := newSaleFixture(t, models.TransitionPermissive)
		req := &models.UpdateSaleStatusRequest{
			Status:       "SHIPPED",
			TrackingCode: ptr("ABC123"),
			Notes:        ptr("Left at the <b>front desk</b>"),
			AdminName:    ptr("Alice"),
		}
		updated := saleIn(models.SaleStatusShipped)
		updated.TrackingCode = "ABC123"

		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(saleIn(models.SaleStatusPreparing), nil).Once()
		f.sales.On("UpdateSaleStatus", mock.Anything, saleID, mock.MatchedBy(func(c models.SaleStatusChange) bool {
			return c.Status == models.SaleStatusShipped &&
				c.Notes == "Order shipped with tracking: ABC123\nLeft at the front desk\nBy: Alice" &&
				c.TrackingCode != nil && *c.TrackingCode == "ABC123" &&
				c.Address == nil
		})).Return(nil).Once()
		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(updated, nil).Once()

		// Act
		sale, err := f.service.UpdateSaleStatus(ctx, saleID, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, updated, sale)
	})

	t.Run("Success - Unknown status in permissive mode", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)

		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(saleIn(models.SaleStatusPending), nil).Once()
		f.sales.On("UpdateSaleStatus", mock.Anything, saleID, models.SaleStatusChange{
			Status: "FOO",
			Notes:  "Status updated to FOO",
		}).Return(nil).Once()
		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(saleIn("FOO"), nil).Once()

		sale, err := f.service.UpdateSaleStatus(ctx, saleID, &models.UpdateSaleStatusRequest{Status: "FOO"})

		require.NoError(t, err)
		assert.Equal(t, models.SaleStatus("FOO"), sale.Status)
	})

	t.Run("Success - Empty tracking code and address are ignored", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)

		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(saleIn(models.SaleStatusPreparing), nil).Twice()
		f.sales.On("UpdateSaleStatus", mock.Anything, saleID, models.SaleStatusChange{
			Status: models.SaleStatusShipped,
			Notes:  "Order shipped",
		}).Return(nil).Once()

		_, err := f.service.UpdateSaleStatus(ctx, saleID, &models.UpdateSaleStatusRequest{
			Status:       "SHIPPED",
			TrackingCode: ptr(""),
			Address:      ptr("   "),
		})

		require.NoError(t, err)
	})

	t.Run("Failure - Strict policy rejects backwards transition", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionStrict)

		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(saleIn(models.SaleStatusCompleted), nil).Once()

		sale, err := f.service.UpdateSaleStatus(ctx, saleID, &models.UpdateSaleStatusRequest{Status: "PENDING"})

		assert.Nil(t, sale)
		assertAppError(t, err, appErrors.ErrCodeBadRequest, "Invalid status transition from COMPLETED to PENDING")
		f.sales.AssertNotCalled(t, "UpdateSaleStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Strict policy rejects unknown status", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionStrict)

		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(saleIn(models.SaleStatusPending), nil).Once()

		_, err := f.service.UpdateSaleStatus(ctx, saleID, &models.UpdateSaleStatusRequest{Status: "FOO"})

		assertAppError(t, err, appErrors.ErrCodeBadRequest, "Invalid status transition from PENDING to FOO")
	})

	t.Run("Success - Strict policy allows cancellation", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionStrict)

		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(saleIn(models.SaleStatusPending), nil).Once()
		f.sales.On("UpdateSaleStatus", mock.Anything, saleID, models.SaleStatusChange{
			Status: models.SaleStatusCancelled,
			Notes:  "Order cancelled",
		}).Return(nil).Once()
		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(saleIn(models.SaleStatusCancelled), nil).Once()

		sale, err := f.service.UpdateSaleStatus(ctx, saleID, &models.UpdateSaleStatusRequest{Status: "CANCELLED"})

		require.NoError(t, err)
		assert.Equal(t, models.SaleStatusCancelled, sale.Status)
	})

	t.Run("Failure - Sale not found", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)

		f.sales.On("GetSaleByID", mock.Anything, saleID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.UpdateSaleStatus(ctx, saleID, &models.UpdateSaleStatusRequest{Status: "PREPARING"})

		assertAppError(t, err, appErrors.ErrCodeNotFound, fmt.Sprintf("Sale %s not found", saleID))
	})

	t.Run("Failure - Blank status", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)

		_, err := f.service.UpdateSaleStatus(ctx, saleID, &models.UpdateSaleStatusRequest{Status: "  "})

		assertAppError(t, err, appErrors.ErrCodeValidation, "")
	})
}

func TestGetAndListSales(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - List computes page envelope", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)
		sales := []models.Sale{{ID: uuid.New()}, {ID: uuid.New()}}

		f.sales.On("ListSales", mock.Anything, 10, 10).Return(sales, 25, nil).Once()

		page, err := f.service.ListSales(ctx, 2, 10)

		require.NoError(t, err)
		assert.Equal(t, 25, page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.HasMore)
		assert.Len(t, page.Items, 2)
	})

	t.Run("Success - Defaults applied", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)

		f.sales.On("ListSales", mock.Anything, 0, models.DefaultPerPage).Return(nil, 0, nil).Once()

		page, err := f.service.ListSales(ctx, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasMore)
		assert.NotNil(t, page.Items)
	})

	t.Run("Failure - Get missing sale", func(t *testing.T) {
		f := newSaleFixture(t, models.TransitionPermissive)
		id := uuid.New()

		f.sales.On("GetSaleByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.GetSale(ctx, id)

		assertAppError(t, err, appErrors.ErrCodeNotFound, fmt.Sprintf("Sale %s not found", id))
	})
}

func TestStatusNotes(t *testing.T) {
	assert.Equal(t, "Order completed", service.StatusNotes("Order completed", "", ""))
	assert.Equal(t, "Order completed\nthanks", service.StatusNotes("Order completed", "thanks", ""))
	assert.Equal(t, "Order completed\nBy: Bob", service.StatusNotes("Order completed", "", "Bob"))
	assert.Equal(t, "Order completed\nthanks\nBy: Bob", service.StatusNotes("Order completed", "thanks", "Bob"))
}
