package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storedesk/backoffice-api/internal/api/handlers"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/storedesk/backoffice-api/internal/services/mocks"
	"github.com/storedesk/backoffice-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetDashboardHandler(t *testing.T) {
	adminID := uuid.New()

	t.Run("Success - Dashboard aggregates", func(t *testing.T) {
		mockService := mocks.NewDashboardService(t)
		handler := handlers.NewDashboardHandler(mockService)

		dashboard := &models.Dashboard{
			RecentProducts: []models.Product{{ID: uuid.New(), Name: "Lamp"}},
			Inventory:      models.InventorySummary{Total: 1, Value: decimal.NewFromInt(30)},
			RecentSales:    []models.Sale{},
			TopProducts:    []models.TopProduct{},
		}
		mockService.On("GetDashboard", mock.Anything).Return(dashboard, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/", nil, adminID, nil)
		rr := httptest.NewRecorder()

		handler.GetDashboard().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"inventory":{"total":1,"value":30}`)
	})

	t.Run("Failure - Unexpected error is masked", func(t *testing.T) {
		mockService := mocks.NewDashboardService(t)
		handler := handlers.NewDashboardHandler(mockService)

		mockService.On("GetDashboard", mock.Anything).Return(nil, errors.New("pq: connection refused")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/", nil, adminID, nil)
		rr := httptest.NewRecorder()

		handler.GetDashboard().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "connection refused")
	})
}

func TestListCustomersHandler(t *testing.T) {
	adminID := uuid.New()

	t.Run("Success - Customers listed", func(t *testing.T) {
		mockService := mocks.NewCustomerService(t)
		handler := handlers.NewCustomerHandler(mockService)

		customers := []models.Customer{
			{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"},
			{ID: uuid.New(), Name: "Bruno", Email: "bruno@example.com"},
		}
		mockService.On("ListCustomers", mock.Anything).Return(customers, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/", nil, adminID, nil)
		rr := httptest.NewRecorder()

		handler.ListCustomers().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got []models.Customer
		decodeData(t, rr, &got)
		assert.Len(t, got, 2)
		assert.Equal(t, "Ana", got[0].Name)
	})
}
