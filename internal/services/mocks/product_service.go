package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// ProductService is a mock type for the ProductService type
type ProductService struct {
	mock.Mock
}

func (_m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	ret := _m.Called(ctx, id, req)

	var r0 *models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *ProductService) ListProducts(ctx context.Context, page int, perPage int) (*models.Page[models.Product], error) {
	ret := _m.Called(ctx, page, perPage)

	var r0 *models.Page[models.Product]
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Page[models.Product])
	}

	return r0, ret.Error(1)
}

// NewProductService creates a new instance of ProductService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewProductService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProductService {
	m := &ProductService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
