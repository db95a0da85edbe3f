package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/storedesk/backoffice-api/internal/utils"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, offset, limit int) ([]models.Product, int, error)
	ListRecentProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product, replaceOptions bool) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CountSaleItems(ctx context.Context, id uuid.UUID) (int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productSelect = `
	SELECT p.id, p.name, COALESCE(p.description, ''), p.price, p.stock, p.status, COALESCE(p.image_url, ''),
	       p.category_id, p.brand_id, p.created_at, p.updated_at, c.name, b.name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN brands b ON b.id = p.brand_id`

func (r *productRepository) ListProducts(ctx context.Context, offset, limit int) ([]models.Product, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products, err := r.queryProducts(dbCtx, productSelect+` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) ListRecentProducts(ctx context.Context, limit int) ([]models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryProducts(dbCtx, productSelect+` ORDER BY p.created_at DESC LIMIT $1`, limit)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	products, err := r.queryProducts(dbCtx, productSelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return nil, ErrNotFound
	}

	return &products[0], nil
}

// GetProductsByIDs resolves a batch of products in one round trip. Missing ids are
// simply absent from the result.
func (r *productRepository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryProducts(dbCtx, productSelect+` WHERE p.id = ANY($1::uuid[])`, uuidArray(ids))
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		query := `
			INSERT INTO products (name, description, price, stock, status, image_url, category_id, brand_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowContext(dbCtx, query,
			product.Name, nullString(product.Description), product.Price, product.Stock, product.Status,
			nullString(product.ImageURL), nullUUID(product.CategoryID), nullUUID(product.BrandID),
		).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}

		return insertOptions(dbCtx, tx, product)
	})
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product, replaceOptions bool) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		query := `
			UPDATE products
			SET name = $1, description = $2, price = $3, stock = $4, status = $5, image_url = $6,
			    category_id = $7, brand_id = $8, updated_at = NOW()
			WHERE id = $9
			RETURNING updated_at`

		err := tx.QueryRowContext(dbCtx, query,
			product.Name, nullString(product.Description), product.Price, product.Stock, product.Status,
			nullString(product.ImageURL), nullUUID(product.CategoryID), nullUUID(product.BrandID), product.ID,
		).Scan(&product.UpdatedAt)
		if err != nil {
			return noRows(err)
		}

		if !replaceOptions {
			return nil
		}

		if _, err := tx.ExecContext(dbCtx, `DELETE FROM product_options WHERE product_id = $1`, product.ID); err != nil {
			return fmt.Errorf("failed to clear product options: %w", err)
		}

		return insertOptions(dbCtx, tx, product)
	})
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		if _, err := tx.ExecContext(dbCtx, `DELETE FROM product_options WHERE product_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete product options: %w", err)
		}

		res, err := tx.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}

		return rowsAffected(res)
	})
}

func (r *productRepository) CountSaleItems(ctx context.Context, id uuid.UUID) (int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM sale_items WHERE product_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sale items: %w", err)
	}

	return count, nil
}

func insertOptions(ctx context.Context, q querier, product *models.Product) error {

	query := `INSERT INTO product_options (product_id, name, option_values) VALUES ($1, $2, $3) RETURNING id`

	for i := range product.Options {
		opt := &product.Options[i]
		opt.ProductID = product.ID

		if err := q.QueryRowContext(ctx, query, product.ID, opt.Name, pq.Array(opt.Values)).Scan(&opt.ID); err != nil {
			return fmt.Errorf("failed to insert product option: %w", err)
		}
	}

	return nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {

	products, err := scanProducts(ctx, r.DB, query, args...)
	if err != nil {
		return nil, err
	}

	if err := attachOptions(ctx, r.DB, products); err != nil {
		return nil, err
	}

	return products, nil
}

func scanProducts(ctx context.Context, q querier, query string, args ...any) ([]models.Product, error) {

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		var (
			p            models.Product
			categoryID   uuid.NullUUID
			brandID      uuid.NullUUID
			categoryName sql.NullString
			brandName    sql.NullString
		)

		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Status, &p.ImageURL,
			&categoryID, &brandID, &p.CreatedAt, &p.UpdatedAt, &categoryName, &brandName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		p.CategoryID = uuidPtr(categoryID)
		p.BrandID = uuidPtr(brandID)
		if categoryID.Valid {
			p.Category = &models.Category{ID: categoryID.UUID, Name: categoryName.String}
		}
		if brandID.Valid {
			p.Brand = &models.Brand{ID: brandID.UUID, Name: brandName.String}
		}
		p.Options = []models.ProductOption{}

		products = append(products, p)
	}

	return products, rows.Err()
}

func attachOptions(ctx context.Context, q querier, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(products))
	index := make(map[uuid.UUID]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	query := `SELECT id, product_id, name, option_values FROM product_options WHERE product_id = ANY($1::uuid[]) ORDER BY name ASC`

	rows, err := q.QueryContext(ctx, query, uuidArray(ids))
	if err != nil {
		return fmt.Errorf("failed to query product options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt models.ProductOption
		if err := rows.Scan(&opt.ID, &opt.ProductID, &opt.Name, pq.Array(&opt.Values)); err != nil {
			return fmt.Errorf("failed to scan product option: %w", err)
		}

		if i, ok := index[opt.ProductID]; ok {
			products[i].Options = append(products[i].Options, opt)
		}
	}

	return rows.Err()
}
