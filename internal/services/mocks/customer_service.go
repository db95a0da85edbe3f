package mocks

import (
	"context"

	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// CustomerService is a mock type for the CustomerService type
type CustomerService struct {
	mock.Mock
}

func (_m *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []models.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Customer)
	}

	return r0, ret.Error(1)
}

// NewCustomerService creates a new instance of CustomerService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCustomerService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CustomerService {
	m := &CustomerService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
