package mocks

import (
	"context"

	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// DashboardService is a mock type for the DashboardService type
type DashboardService struct {
	mock.Mock
}

func (_m *DashboardService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	ret := _m.Called(ctx)

	var r0 *models.Dashboard
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Dashboard)
	}

	return r0, ret.Error(1)
}

// NewDashboardService creates a new instance of DashboardService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewDashboardService(t interface {
	mock.TestingT
	Cleanup(func())
}) *DashboardService {
	m := &DashboardService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
