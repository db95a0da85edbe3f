package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// CategoryRepository is a mock type for the CategoryRepository type
type CategoryRepository struct {
	mock.Mock
}

func (_m *CategoryRepository) ListCategories(ctx context.Context, offset int, limit int) ([]models.Category, int, error) {
	ret := _m.Called(ctx, offset, limit)

	var r0 []models.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Category)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *CategoryRepository) ListAllCategories(ctx context.Context) ([]models.Category, error) {
	ret := _m.Called(ctx)

	var r0 []models.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Category)
	}

	return r0, ret.Error(1)
}

func (_m *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Category)
	}

	return r0, ret.Error(1)
}

func (_m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

func (_m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

func (_m *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	ret := _m.Called(ctx, id)
	var r0 []uuid.UUID
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]uuid.UUID)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) ProductIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	ret := _m.Called(ctx, id)
	var r0 []uuid.UUID
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]uuid.UUID)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) CountChildren(ctx context.Context, id uuid.UUID) (int, error) {
	ret := _m.Called(ctx, id)
	return ret.Int(0), ret.Error(1)
}

func (_m *CategoryRepository) IsDescendant(ctx context.Context, rootID uuid.UUID, candidateID uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, rootID, candidateID)
	return ret.Bool(0), ret.Error(1)
}

// NewCategoryRepository creates a new instance of CategoryRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCategoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CategoryRepository {
	m := &CategoryRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
