package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/storedesk/backoffice-api/internal/utils"
)

type CategoryRepository interface {
	ListCategories(ctx context.Context, offset, limit int) ([]models.Category, int, error)
	ListAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	ProductIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	CountChildren(ctx context.Context, id uuid.UUID) (int, error)
	IsDescendant(ctx context.Context, rootID, candidateID uuid.UUID) (bool, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

const categorySelect = `
	SELECT c.id, c.name, c.position, c.parent_id, c.created_at,
	       p.id, p.name, p.position,
	       (SELECT COUNT(*) FROM categories ch WHERE ch.parent_id = c.id)
	FROM categories c
	LEFT JOIN categories p ON p.id = c.parent_id`

func (r *categoryRepository) ListCategories(ctx context.Context, offset, limit int) ([]models.Category, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	categories, err := r.queryCategories(dbCtx, categorySelect+` ORDER BY c.position ASC, c.name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachChildren(dbCtx, categories); err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *categoryRepository) ListAllCategories(ctx context.Context) ([]models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryCategories(dbCtx, categorySelect+` ORDER BY c.position ASC, c.name ASC`)
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	categories, err := r.queryCategories(dbCtx, categorySelect+` WHERE c.id = $1`, id)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return nil, ErrNotFound
	}

	if err := r.attachChildren(dbCtx, categories); err != nil {
		return nil, err
	}

	return &categories[0], nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO categories (name, position, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, category.Name, category.Position, nullUUID(category.ParentID)).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE categories SET name = $1, position = $2, parent_id = $3 WHERE id = $4`

	res, err := r.DB.ExecContext(dbCtx, query, category.Name, category.Position, nullUUID(category.ParentID), category.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	return rowsAffected(res)
}

// DeleteCategory detaches the category's products and removes it in one transaction.
// It returns the ids of the detached products.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var detached []uuid.UUID

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {
		ids, err := queryIDs(dbCtx, tx, `UPDATE products SET category_id = NULL, updated_at = NOW() WHERE category_id = $1 RETURNING id`, id)
		if err != nil {
			return fmt.Errorf("failed to detach products: %w", err)
		}

		res, err := tx.ExecContext(dbCtx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		if err := rowsAffected(res); err != nil {
			return err
		}

		detached = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detached, nil
}

func (r *categoryRepository) ProductIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	ids, err := queryIDs(dbCtx, r.DB, `SELECT id FROM products WHERE category_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list category products: %w", err)
	}

	return ids, nil
}

func (r *categoryRepository) CountChildren(ctx context.Context, id uuid.UUID) (int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM categories WHERE parent_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subcategories: %w", err)
	}

	return count, nil
}

// IsDescendant reports whether candidateID sits anywhere below rootID in the tree.
func (r *categoryRepository) IsDescendant(ctx context.Context, rootID, candidateID uuid.UUID) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM categories WHERE parent_id = $1
			UNION
			SELECT c.id FROM categories c JOIN subtree s ON c.parent_id = s.id
		)
		SELECT EXISTS (SELECT 1 FROM subtree WHERE id = $2)`

	var found bool
	if err := r.DB.QueryRowContext(dbCtx, query, rootID, candidateID).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to walk category tree: %w", err)
	}

	return found, nil
}

func (r *categoryRepository) queryCategories(ctx context.Context, query string, args ...any) ([]models.Category, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}

	for rows.Next() {
		var (
			c              models.Category
			parentRef      uuid.NullUUID
			parentID       uuid.NullUUID
			parentName     sql.NullString
			parentPosition sql.NullInt64
		)

		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &parentRef, &c.CreatedAt, &parentID, &parentName, &parentPosition, &c.ChildCount); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		c.ParentID = uuidPtr(parentRef)
		c.Children = []models.Category{}
		if parentID.Valid {
			c.Parent = &models.Category{ID: parentID.UUID, Name: parentName.String, Position: int(parentPosition.Int64)}
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) attachChildren(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(categories))
	index := make(map[uuid.UUID]int, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
		index[c.ID] = i
	}

	query := `
		SELECT id, name, position, parent_id, created_at
		FROM categories
		WHERE parent_id = ANY($1::uuid[])
		ORDER BY position ASC, name ASC`

	rows, err := r.DB.QueryContext(ctx, query, uuidArray(ids))
	if err != nil {
		return fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			child    models.Category
			parentID uuid.UUID
		)

		if err := rows.Scan(&child.ID, &child.Name, &child.Position, &parentID, &child.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan subcategory: %w", err)
		}

		child.ParentID = &parentID
		if i, ok := index[parentID]; ok {
			categories[i].Children = append(categories[i].Children, child)
		}
	}

	return rows.Err()
}
