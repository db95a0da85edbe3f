package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// ProductRepository is a mock type for the ProductRepository type
type ProductRepository struct {
	mock.Mock
}

func (_m *ProductRepository) ListProducts(ctx context.Context, offset int, limit int) ([]models.Product, int, error) {
	ret := _m.Called(ctx, offset, limit)

	var r0 []models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Product)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *ProductRepository) ListRecentProducts(ctx context.Context, limit int) ([]models.Product, error) {
	ret := _m.Called(ctx, limit)

	var r0 []models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductRepository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	ret := _m.Called(ctx, ids)

	var r0 []models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	ret := _m.Called(ctx, product)
	return ret.Error(0)
}

func (_m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product, replaceOptions bool) error {
	ret := _m.Called(ctx, product, replaceOptions)
	return ret.Error(0)
}

func (_m *ProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *ProductRepository) CountSaleItems(ctx context.Context, id uuid.UUID) (int, error) {
	ret := _m.Called(ctx, id)
	return ret.Int(0), ret.Error(1)
}

// NewProductRepository creates a new instance of ProductRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewProductRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProductRepository {
	m := &ProductRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
