package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// SaleRepository is a mock type for the SaleRepository type
type SaleRepository struct {
	mock.Mock
}

func (_m *SaleRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	ret := _m.Called(ctx, sale)
	return ret.Error(0)
}

func (_m *SaleRepository) GetSaleByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Sale
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Sale)
	}

	return r0, ret.Error(1)
}

func (_m *SaleRepository) ListSales(ctx context.Context, offset int, limit int) ([]models.Sale, int, error) {
	ret := _m.Called(ctx, offset, limit)

	var r0 []models.Sale
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Sale)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *SaleRepository) UpdateSaleStatus(ctx context.Context, id uuid.UUID, change models.SaleStatusChange) error {
	ret := _m.Called(ctx, id, change)
	return ret.Error(0)
}

func (_m *SaleRepository) TopSellingProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	ret := _m.Called(ctx, limit)

	var r0 []models.TopProduct
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.TopProduct)
	}

	return r0, ret.Error(1)
}

// NewSaleRepository creates a new instance of SaleRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSaleRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *SaleRepository {
	m := &SaleRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
