package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// BrandService is a mock type for the BrandService type
type BrandService struct {
	mock.Mock
}

func (_m *BrandService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	ret := _m.Called(ctx)

	var r0 []models.Brand
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Brand)
	}

	return r0, ret.Error(1)
}

func (_m *BrandService) GetBrand(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Brand
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Brand)
	}

	return r0, ret.Error(1)
}

func (_m *BrandService) CreateBrand(ctx context.Context, req *models.BrandRequest) (*models.Brand, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Brand
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Brand)
	}

	return r0, ret.Error(1)
}

func (_m *BrandService) RenameBrand(ctx context.Context, id uuid.UUID, req *models.BrandRequest) (*models.Brand, error) {
	ret := _m.Called(ctx, id, req)

	var r0 *models.Brand
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Brand)
	}

	return r0, ret.Error(1)
}

func (_m *BrandService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewBrandService creates a new instance of BrandService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewBrandService(t interface {
	mock.TestingT
	Cleanup(func())
}) *BrandService {
	m := &BrandService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
