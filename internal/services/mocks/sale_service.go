package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// SaleService is a mock type for the SaleService type
type SaleService struct {
	mock.Mock
}

func (_m *SaleService) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Sale
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Sale)
	}

	return r0, ret.Error(1)
}

func (_m *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Sale
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Sale)
	}

	return r0, ret.Error(1)
}

func (_m *SaleService) ListSales(ctx context.Context, page int, perPage int) (*models.Page[models.Sale], error) {
	ret := _m.Called(ctx, page, perPage)

	var r0 *models.Page[models.Sale]
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Page[models.Sale])
	}

	return r0, ret.Error(1)
}

func (_m *SaleService) UpdateSaleStatus(ctx context.Context, id uuid.UUID, req *models.UpdateSaleStatusRequest) (*models.Sale, error) {
	ret := _m.Called(ctx, id, req)

	var r0 *models.Sale
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Sale)
	}

	return r0, ret.Error(1)
}

// NewSaleService creates a new instance of SaleService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSaleService(t interface {
	mock.TestingT
	Cleanup(func())
}) *SaleService {
	m := &SaleService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
