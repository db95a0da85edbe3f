package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/storedesk/backoffice-api/internal/utils"
)

type SaleRepository interface {
	CreateSale(ctx context.Context, sale *models.Sale) error
	GetSaleByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	ListSales(ctx context.Context, offset, limit int) ([]models.Sale, int, error)
	UpdateSaleStatus(ctx context.Context, id uuid.UUID, change models.SaleStatusChange) error
	TopSellingProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
}

type saleRepository struct {
	DB *sql.DB
}

func NewSaleRepo(db *sql.DB) SaleRepository {
	return &saleRepository{DB: db}
}

const saleSelect = `
	SELECT s.id, s.customer_id, s.status, s.total, s.date, COALESCE(s.payment_method, ''),
	       COALESCE(s.tracking_code, ''), COALESCE(s.address, ''), COALESCE(s.notes, ''),
	       s.created_at, s.updated_at,
	       c.name, c.email, COALESCE(c.phone, '')
	FROM sales s
	JOIN customers c ON c.id = s.customer_id`

// CreateSale writes the header and every item atomically. The ids, dates and
// timestamps generated by the database are written back into sale.
func (r *saleRepository) CreateSale(ctx context.Context, sale *models.Sale) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		query := `
			INSERT INTO sales (customer_id, status, total, payment_method, address)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, date, created_at, updated_at`

		err := tx.QueryRowContext(dbCtx, query, sale.CustomerID, sale.Status, sale.Total, nullString(sale.PaymentMethod), nullString(sale.Address)).
			Scan(&sale.ID, &sale.Date, &sale.CreatedAt, &sale.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		itemQuery := `
			INSERT INTO sale_items (sale_id, line_no, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`

		for i := range sale.Items {
			item := &sale.Items[i]
			item.SaleID = sale.ID

			if err := tx.QueryRowContext(dbCtx, itemQuery, sale.ID, i+1, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal).Scan(&item.ID); err != nil {
				return fmt.Errorf("failed to insert sale item: %w", err)
			}
		}

		return nil
	})
}

func (r *saleRepository) GetSaleByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	sales, err := r.querySales(dbCtx, saleSelect+` WHERE s.id = $1`, id)
	if err != nil {
		return nil, err
	}

	if len(sales) == 0 {
		return nil, ErrNotFound
	}

	return &sales[0], nil
}

func (r *saleRepository) ListSales(ctx context.Context, offset, limit int) ([]models.Sale, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM sales`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	sales, err := r.querySales(dbCtx, saleSelect+` ORDER BY s.date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// UpdateSaleStatus overwrites status and notes. Tracking code and address keep their
// stored value when the change leaves them nil.
func (r *saleRepository) UpdateSaleStatus(ctx context.Context, id uuid.UUID, change models.SaleStatusChange) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE sales
		SET status = $1, notes = $2, tracking_code = COALESCE($3, tracking_code), address = COALESCE($4, address), updated_at = NOW()
		WHERE id = $5`

	res, err := r.DB.ExecContext(dbCtx, query, string(change.Status), change.Notes, optionalText(change.TrackingCode), optionalText(change.Address), id)
	if err != nil {
		return fmt.Errorf("failed to update sale status: %w", err)
	}

	return rowsAffected(res)
}

func (r *saleRepository) TopSellingProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT si.product_id, SUM(si.quantity) AS sold, p.name, p.price, p.stock, p.status, COALESCE(p.image_url, '')
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		GROUP BY si.product_id, p.name, p.price, p.stock, p.status, p.image_url
		ORDER BY sold DESC
		LIMIT $1`

	rows, err := r.DB.QueryContext(dbCtx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}
	defer rows.Close()

	top := []models.TopProduct{}

	for rows.Next() {
		var (
			t models.TopProduct
			p models.Product
		)

		if err := rows.Scan(&t.ProductID, &t.QuantitySold, &p.Name, &p.Price, &p.Stock, &p.Status, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}

		p.ID = t.ProductID
		t.Product = &p
		top = append(top, t)
	}

	return top, rows.Err()
}

func (r *saleRepository) querySales(ctx context.Context, query string, args ...any) ([]models.Sale, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []models.Sale{}

	for rows.Next() {
		var (
			s models.Sale
			c models.Customer
		)

		err := rows.Scan(&s.ID, &s.CustomerID, &s.Status, &s.Total, &s.Date, &s.PaymentMethod,
			&s.TrackingCode, &s.Address, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
			&c.Name, &c.Email, &c.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}

		c.ID = s.CustomerID
		s.Customer = &c
		s.Items = []models.SaleItem{}

		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, sales); err != nil {
		return nil, err
	}

	return sales, nil
}

func (r *saleRepository) attachItems(ctx context.Context, sales []models.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(sales))
	index := make(map[uuid.UUID]int, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		index[s.ID] = i
	}

	query := `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.subtotal,
		       p.name, p.price, p.status, COALESCE(p.image_url, '')
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ANY($1::uuid[])
		ORDER BY si.sale_id, si.line_no ASC`

	rows, err := r.DB.QueryContext(ctx, query, uuidArray(ids))
	if err != nil {
		return fmt.Errorf("failed to query sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item models.SaleItem
			p    models.Product
		)

		err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal,
			&p.Name, &p.Price, &p.Status, &p.ImageURL)
		if err != nil {
			return fmt.Errorf("failed to scan sale item: %w", err)
		}

		p.ID = item.ProductID
		item.Product = &p

		if i, ok := index[item.SaleID]; ok {
			sales[i].Items = append(sales[i].Items, item)
		}
	}

	return rows.Err()
}

// optionalText maps an absent patch field to NULL so COALESCE keeps the stored value.
func optionalText(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
