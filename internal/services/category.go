package service

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/api/middleware"
	"github.com/storedesk/backoffice-api/internal/cache"
	"github.com/storedesk/backoffice-api/internal/errors"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
	"github.com/storedesk/backoffice-api/internal/utils"
)

const defaultCategoryPosition = 1

type CategoryService interface {
	ListCategories(ctx context.Context, page, perPage int) (*models.Page[models.Category], error)
	ListAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache cache.Cache
}

func NewCategoryService(repo repository.CategoryRepository, cache cache.Cache) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

func (s *categoryService) ListCategories(ctx context.Context, page, perPage int) (*models.Page[models.Category], error) {

	page, perPage = models.NormalizePage(page, perPage)

	categories, total, err := s.repo.ListCategories(ctx, models.Offset(page, perPage), perPage)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	result := models.NewPage(categories, total, page, perPage)

	return &result, nil
}

func (s *categoryService) ListAllCategories(ctx context.Context) ([]models.Category, error) {

	categories, err := s.repo.ListAllCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, categoryLookupError(id, err)
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		Name:     utils.SanitizeText(req.Name),
		Position: defaultCategoryPosition,
		ParentID: req.ParentID,
	}
	if req.Position != nil {
		category.Position = *req.Position
	}

	if category.Name == "" {
		return nil, errors.ValidationError("Name is required")
	}

	if req.ParentID != nil {
		if _, err := s.repo.GetCategoryByID(ctx, *req.ParentID); err != nil {
			return nil, parentLookupError(*req.ParentID, err)
		}
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, categoryWriteError(err, "Failed to create category")
	}

	return s.GetCategory(ctx, category.ID)
}

// UpdateCategory applies a partial update. An empty parentId detaches the category;
// a parent that is the category itself or one of its descendants is rejected.
func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, categoryLookupError(id, err)
	}

	renamed := false
	if req.Name != nil {
		name := utils.SanitizeText(*req.Name)
		if name == "" {
			return nil, errors.ValidationError("Name cannot be empty")
		}
		renamed = name != category.Name
		category.Name = name
	}

	if req.Position != nil {
		category.Position = *req.Position
	}

	if req.ParentID != nil {
		if *req.ParentID == "" {
			category.ParentID = nil
		} else {
			parentID, err := uuid.Parse(*req.ParentID)
			if err != nil {
				return nil, errors.BadRequestError("Invalid parent ID format").WithError(err)
			}

			if err := s.checkParent(ctx, id, parentID); err != nil {
				return nil, err
			}

			category.ParentID = &parentID
		}
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, categoryLookupError(id, err)
		}
		return nil, categoryWriteError(err, "Failed to update category")
	}

	if renamed {
		s.invalidateCategoryProducts(ctx, id)
	}

	return s.GetCategory(ctx, id)
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {

	if _, err := s.repo.GetCategoryByID(ctx, id); err != nil {
		return categoryLookupError(id, err)
	}

	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return errors.DatabaseError("Failed to check subcategories").WithError(err)
	}
	if children > 0 {
		return errors.BadRequestError("Cannot delete a category with subcategories")
	}

	detached, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return categoryLookupError(id, err)
		}
		return errors.DatabaseError("Failed to delete category").WithError(err)
	}

	invalidateProducts(ctx, s.cache, detached...)

	return nil
}

// invalidateCategoryProducts drops cached products that embed the category's name.
func (s *categoryService) invalidateCategoryProducts(ctx context.Context, id uuid.UUID) {
	ids, err := s.repo.ProductIDs(ctx, id)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to list category products for cache invalidation", slog.String("category_id", id.String()), slog.Any("error", err))
		return
	}

	invalidateProducts(ctx, s.cache, ids...)
}

func (s *categoryService) checkParent(ctx context.Context, id, parentID uuid.UUID) error {

	if parentID == id {
		return errors.BadRequestError("A category cannot be its own ancestor")
	}

	if _, err := s.repo.GetCategoryByID(ctx, parentID); err != nil {
		return parentLookupError(parentID, err)
	}

	descendant, err := s.repo.IsDescendant(ctx, id, parentID)
	if err != nil {
		return errors.DatabaseError("Failed to check category tree").WithError(err)
	}
	if descendant {
		return errors.BadRequestError("A category cannot be its own ancestor")
	}

	return nil
}

func categoryLookupError(id uuid.UUID, err error) error {
	if stdErrors.Is(err, repository.ErrNotFound) {
		return errors.NotFoundf("Category %s not found", id).WithError(err)
	}
	return errors.DatabaseError("Failed to fetch category").WithError(err)
}

func parentLookupError(id uuid.UUID, err error) error {
	if stdErrors.Is(err, repository.ErrNotFound) {
		return errors.NotFoundf("Parent category %s not found", id).WithError(err)
	}
	return errors.DatabaseError("Failed to fetch parent category").WithError(err)
}

func categoryWriteError(err error, message string) error {
	if repository.IsUniqueViolation(err) {
		return errors.DuplicateEntryError("A category with this name already exists").WithError(err)
	}
	return errors.DatabaseError(message).WithError(err)
}
