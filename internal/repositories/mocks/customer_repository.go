package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// CustomerRepository is a mock type for the CustomerRepository type
type CustomerRepository struct {
	mock.Mock
}

func (_m *CustomerRepository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *CustomerRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []models.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Customer)
	}

	return r0, ret.Error(1)
}

// NewCustomerRepository creates a new instance of CustomerRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCustomerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CustomerRepository {
	m := &CustomerRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
