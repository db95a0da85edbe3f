package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/storedesk/backoffice-api/internal/utils"
)

type AdminRepository interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	UpsertAdmin(ctx context.Context, admin *models.Admin) error
}

type adminRepository struct {
	DB *sql.DB
}

func NewAdminRepo(db *sql.DB) AdminRepository {
	return &adminRepository{DB: db}
}

const adminColumns = `id, email, password_hash, name, created_at, updated_at`

func (r *adminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`

	return r.scanAdmin(r.DB.QueryRowContext(dbCtx, query, email))
}

func (r *adminRepository) GetAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	return r.scanAdmin(r.DB.QueryRowContext(dbCtx, query, id))
}

// UpsertAdmin creates the admin or, when the email already exists, resets its name and password.
func (r *adminRepository) UpsertAdmin(ctx context.Context, admin *models.Admin) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO admins (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, name = EXCLUDED.name, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, admin.Email, admin.PasswordHash, admin.Name).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert admin: %w", err)
	}

	return nil
}

func (r *adminRepository) scanAdmin(row *sql.Row) (*models.Admin, error) {
	admin := &models.Admin{}

	err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.Name, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, noRows(err)
	}

	return admin, nil
}
