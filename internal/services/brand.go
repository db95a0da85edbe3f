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

type BrandService interface {
	ListBrands(ctx context.Context) ([]models.Brand, error)
	GetBrand(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	CreateBrand(ctx context.Context, req *models.BrandRequest) (*models.Brand, error)
	RenameBrand(ctx context.Context, id uuid.UUID, req *models.BrandRequest) (*models.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error
}

type brandService struct {
	repo  repository.BrandRepository
	cache cache.Cache
}

func NewBrandService(repo repository.BrandRepository, cache cache.Cache) BrandService {
	return &brandService{repo: repo, cache: cache}
}

func (s *brandService) ListBrands(ctx context.Context) ([]models.Brand, error) {

	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch brands").WithError(err)
	}

	return brands, nil
}

func (s *brandService) GetBrand(ctx context.Context, id uuid.UUID) (*models.Brand, error) {

	brand, err := s.repo.GetBrandByID(ctx, id)
	if err != nil {
		return nil, brandLookupError(id, err)
	}

	return brand, nil
}

func (s *brandService) CreateBrand(ctx context.Context, req *models.BrandRequest) (*models.Brand, error) {

	brand := &models.Brand{Name: utils.SanitizeText(req.Name), Products: []models.Product{}}
	if brand.Name == "" {
		return nil, errors.ValidationError("Name is required")
	}

	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		return nil, brandWriteError(err, "Failed to create brand")
	}

	return brand, nil
}

func (s *brandService) RenameBrand(ctx context.Context, id uuid.UUID, req *models.BrandRequest) (*models.Brand, error) {

	name := utils.SanitizeText(req.Name)
	if name == "" {
		return nil, errors.ValidationError("Name is required")
	}

	if err := s.repo.RenameBrand(ctx, id, name); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, brandLookupError(id, err)
		}
		return nil, brandWriteError(err, "Failed to update brand")
	}

	// Cached products embed the brand name.
	if ids, err := s.repo.ProductIDs(ctx, id); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to list brand products for cache invalidation", slog.String("brand_id", id.String()), slog.Any("error", err))
	} else {
		invalidateProducts(ctx, s.cache, ids...)
	}

	return s.GetBrand(ctx, id)
}

// DeleteBrand refuses to remove a brand that still has products.
func (s *brandService) DeleteBrand(ctx context.Context, id uuid.UUID) error {

	if _, err := s.repo.GetBrandByID(ctx, id); err != nil {
		return brandLookupError(id, err)
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return errors.DatabaseError("Failed to check brand products").WithError(err)
	}
	if count > 0 {
		return errors.BadRequestf("Cannot delete brand: it has %d associated products", count)
	}

	if err := s.repo.DeleteBrand(ctx, id); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return brandLookupError(id, err)
		}
		return errors.DatabaseError("Failed to delete brand").WithError(err)
	}

	return nil
}

func brandLookupError(id uuid.UUID, err error) error {
	if stdErrors.Is(err, repository.ErrNotFound) {
		return errors.NotFoundf("Brand %s not found", id).WithError(err)
	}
	return errors.DatabaseError("Failed to fetch brand").WithError(err)
}

func brandWriteError(err error, message string) error {
	if repository.IsUniqueViolation(err) {
		return errors.DuplicateEntryError("A brand with this name already exists").WithError(err)
	}
	return errors.DatabaseError(message).WithError(err)
}
