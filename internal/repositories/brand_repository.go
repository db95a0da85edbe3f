package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/storedesk/backoffice-api/internal/utils"
)

type BrandRepository interface {
	ListBrands(ctx context.Context) ([]models.Brand, error)
	GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	CreateBrand(ctx context.Context, brand *models.Brand) error
	RenameBrand(ctx context.Context, id uuid.UUID, name string) error
	DeleteBrand(ctx context.Context, id uuid.UUID) error
	CountProducts(ctx context.Context, id uuid.UUID) (int, error)
	ProductIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

type brandRepository struct {
	DB *sql.DB
}

func NewBrandRepo(db *sql.DB) BrandRepository {
	return &brandRepository{DB: db}
}

func (r *brandRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT b.id, b.name, b.created_at, COUNT(p.id)
		FROM brands b
		LEFT JOIN products p ON p.brand_id = b.id
		GROUP BY b.id
		ORDER BY b.name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []models.Brand{}

	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.ProductCount); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}

	return brands, rows.Err()
}

// GetBrandByID returns the brand with its products (without options).
func (r *brandRepository) GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	brand := &models.Brand{}

	err := r.DB.QueryRowContext(dbCtx, `SELECT id, name, created_at FROM brands WHERE id = $1`, id).Scan(&brand.ID, &brand.Name, &brand.CreatedAt)
	if err != nil {
		return nil, noRows(err)
	}

	query := `
		SELECT id, name, COALESCE(description, ''), price, stock, status, COALESCE(image_url, ''), category_id, created_at, updated_at
		FROM products
		WHERE brand_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand products: %w", err)
	}
	defer rows.Close()

	brand.Products = []models.Product{}

	for rows.Next() {
		var (
			p          models.Product
			categoryID uuid.NullUUID
		)

		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Status, &p.ImageURL, &categoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand product: %w", err)
		}

		p.CategoryID = uuidPtr(categoryID)
		p.BrandID = &brand.ID
		brand.Products = append(brand.Products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	brand.ProductCount = len(brand.Products)

	return brand, nil
}

func (r *brandRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	err := r.DB.QueryRowContext(dbCtx, `INSERT INTO brands (name) VALUES ($1) RETURNING id, created_at`, brand.Name).Scan(&brand.ID, &brand.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

func (r *brandRepository) RenameBrand(ctx context.Context, id uuid.UUID, name string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `UPDATE brands SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename brand: %w", err)
	}

	return rowsAffected(res)
}

func (r *brandRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	return rowsAffected(res)
}

func (r *brandRepository) CountProducts(ctx context.Context, id uuid.UUID) (int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products WHERE brand_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count brand products: %w", err)
	}

	return count, nil
}

func (r *brandRepository) ProductIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	ids, err := queryIDs(dbCtx, r.DB, `SELECT id FROM products WHERE brand_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand products: %w", err)
	}

	return ids, nil
}
