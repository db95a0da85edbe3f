package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/storedesk/backoffice-api/internal/utils"
)

type CustomerRepository interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepo(db *sql.DB) CustomerRepository {
	return &customerRepository{DB: db}
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, email, COALESCE(phone, ''), created_at FROM customers WHERE id = $1`

	customer := &models.Customer{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.CreatedAt)
	if err != nil {
		return nil, noRows(err)
	}

	return customer, nil
}

func (r *customerRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, email, COALESCE(phone, ''), created_at FROM customers ORDER BY name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}

	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}
