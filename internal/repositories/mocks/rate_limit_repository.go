package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// RateLimitRepository is a mock type for the RateLimitRepository type
type RateLimitRepository struct {
	mock.Mock
}

func (_m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	ret := _m.Called(ctx, email)
	return ret.Bool(0), ret.Int(1), ret.Int(2), ret.Error(3)
}

// NewRateLimitRepository creates a new instance of RateLimitRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRateLimitRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *RateLimitRepository {
	m := &RateLimitRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
