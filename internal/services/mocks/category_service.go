package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// CategoryService is a mock type for the CategoryService type
type CategoryService struct {
	mock.Mock
}

func (_m *CategoryService) ListCategories(ctx context.Context, page int, perPage int) (*models.Page[models.Category], error) {
	ret := _m.Called(ctx, page, perPage)

	var r0 *models.Page[models.Category]
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Page[models.Category])
	}

	return r0, ret.Error(1)
}

func (_m *CategoryService) ListAllCategories(ctx context.Context) ([]models.Category, error) {
	ret := _m.Called(ctx)

	var r0 []models.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Category)
	}

	return r0, ret.Error(1)
}

func (_m *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Category)
	}

	return r0, ret.Error(1)
}

func (_m *CategoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Category)
	}

	return r0, ret.Error(1)
}

func (_m *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	ret := _m.Called(ctx, id, req)

	var r0 *models.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Category)
	}

	return r0, ret.Error(1)
}

func (_m *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewCategoryService creates a new instance of CategoryService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCategoryService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CategoryService {
	m := &CategoryService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
