package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// AdminRepository is a mock type for the AdminRepository type
type AdminRepository struct {
	mock.Mock
}

func (_m *AdminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ret := _m.Called(ctx, email)

	var r0 *models.Admin
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Admin)
	}

	return r0, ret.Error(1)
}

func (_m *AdminRepository) GetAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Admin
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Admin)
	}

	return r0, ret.Error(1)
}

func (_m *AdminRepository) UpsertAdmin(ctx context.Context, admin *models.Admin) error {
	ret := _m.Called(ctx, admin)
	return ret.Error(0)
}

// NewAdminRepository creates a new instance of AdminRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAdminRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *AdminRepository {
	m := &AdminRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
