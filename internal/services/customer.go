package service

import (
	"context"

	"github.com/storedesk/backoffice-api/internal/errors"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
)

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {

	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch customers").WithError(err)
	}

	return customers, nil
}
