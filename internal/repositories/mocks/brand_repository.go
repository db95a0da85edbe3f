package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// BrandRepository is a mock type for the BrandRepository type
type BrandRepository struct {
	mock.Mock
}

func (_m *BrandRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	ret := _m.Called(ctx)

	var r0 []models.Brand
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Brand)
	}

	return r0, ret.Error(1)
}

func (_m *BrandRepository) GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Brand
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Brand)
	}

	return r0, ret.Error(1)
}

func (_m *BrandRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	ret := _m.Called(ctx, brand)
	return ret.Error(0)
}

func (_m *BrandRepository) RenameBrand(ctx context.Context, id uuid.UUID, name string) error {
	ret := _m.Called(ctx, id, name)
	return ret.Error(0)
}

func (_m *BrandRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *BrandRepository) ProductIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	ret := _m.Called(ctx, id)
	var r0 []uuid.UUID
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]uuid.UUID)
	}
	return r0, ret.Error(1)
}

func (_m *BrandRepository) CountProducts(ctx context.Context, id uuid.UUID) (int, error) {
	ret := _m.Called(ctx, id)
	return ret.Int(0), ret.Error(1)
}

// NewBrandRepository creates a new instance of BrandRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewBrandRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *BrandRepository {
	m := &BrandRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
