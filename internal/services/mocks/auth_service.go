package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// AuthService is a mock type for the AuthService type
type AuthService struct {
	mock.Mock
}

func (_m *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.LoginResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.LoginResponse)
	}

	return r0, ret.Error(1)
}

func (_m *AuthService) Me(ctx context.Context, adminID uuid.UUID) (*models.AdminProfile, error) {
	ret := _m.Called(ctx, adminID)

	var r0 *models.AdminProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.AdminProfile)
	}

	return r0, ret.Error(1)
}

// NewAuthService creates a new instance of AuthService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
