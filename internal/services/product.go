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

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, perPage int) (*models.Page[models.Product], error)
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	cache      cache.Cache
}

func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, brands repository.BrandRepository, cache cache.Cache) ProductService {
	return &productService{
		repo:       repo,
		categories: categories,
		brands:     brands,
		cache:      cache,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if req.Price.IsNegative() {
		return nil, errors.ValidationError("Price must be greater than or equal to 0")
	}

	if err := s.checkReferences(ctx, req.CategoryID, req.BrandID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ProductStatusActive
	}

	product := &models.Product{
		Name:        utils.SanitizeText(req.Name),
		Description: utils.SanitizeText(req.Description),
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
		Status:      status,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Options:     toOptions(req.Options),
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// GetProductByID serves from the cache when possible. Cache failures only cost a DB read.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, productLookupError(id, err)
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		logger.Warn("Product cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, productLookupError(id, err)
	}

	if err := s.checkReferences(ctx, req.CategoryID, req.BrandID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = utils.SanitizeText(*req.Name)
	}
	if req.Description != nil {
		product.Description = utils.SanitizeText(*req.Description)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.ValidationError("Price must be greater than or equal to 0")
		}
		product.Price = req.Price.Round(2)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.BrandID != nil {
		product.BrandID = req.BrandID
	}

	replaceOptions := req.Options != nil
	if replaceOptions {
		product.Options = toOptions(*req.Options)
	}

	if err := s.repo.UpdateProduct(ctx, product, replaceOptions); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, productLookupError(id, err)
		}
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	updated, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, productLookupError(id, err)
	}

	return updated, nil
}

// DeleteProduct refuses products that appear on a sale; those must be deactivated.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	if _, err := s.repo.GetProductByID(ctx, id); err != nil {
		return productLookupError(id, err)
	}

	count, err := s.repo.CountSaleItems(ctx, id)
	if err != nil {
		return errors.DatabaseError("Failed to check product sales").WithError(err)
	}
	if count > 0 {
		return errors.BadRequestf("Cannot delete product: it appears in %d sale items, deactivate it instead", count)
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return productLookupError(id, err)
		}
		return errors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *productService) ListProducts(ctx context.Context, page, perPage int) (*models.Page[models.Product], error) {

	page, perPage = models.NormalizePage(page, perPage)

	products, total, err := s.repo.ListProducts(ctx, models.Offset(page, perPage), perPage)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	result := models.NewPage(products, total, page, perPage)

	return &result, nil
}

func (s *productService) checkReferences(ctx context.Context, categoryID, brandID *uuid.UUID) error {

	if categoryID != nil {
		if _, err := s.categories.GetCategoryByID(ctx, *categoryID); err != nil {
			if stdErrors.Is(err, repository.ErrNotFound) {
				return errors.NotFoundf("Category %s not found", *categoryID).WithError(err)
			}
			return errors.DatabaseError("Failed to fetch category").WithError(err)
		}
	}

	if brandID != nil {
		if _, err := s.brands.GetBrandByID(ctx, *brandID); err != nil {
			if stdErrors.Is(err, repository.ErrNotFound) {
				return errors.NotFoundf("Brand %s not found", *brandID).WithError(err)
			}
			return errors.DatabaseError("Failed to fetch brand").WithError(err)
		}
	}

	return nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	invalidateProducts(ctx, s.cache, id)
}

// invalidateProducts drops the cached copies of the given products. Failures are logged only.
func invalidateProducts(ctx context.Context, c cache.Cache, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cache.Key(cache.ProductKeyPrefix, id.String())
	}

	if err := c.Delete(ctx, keys...); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}

func productLookupError(id uuid.UUID, err error) error {
	if stdErrors.Is(err, repository.ErrNotFound) {
		return errors.NotFoundf("Product %s not found", id).WithError(err)
	}
	return errors.DatabaseError("Failed to fetch product").WithError(err)
}

func toOptions(reqs []models.ProductOptionRequest) []models.ProductOption {
	options := make([]models.ProductOption, 0, len(reqs))
	for _, o := range reqs {
		values := make([]string, 0, len(o.Values))
		for _, v := range o.Values {
			values = append(values, utils.SanitizeText(v))
		}
		options = append(options, models.ProductOption{Name: utils.SanitizeText(o.Name), Values: values})
	}
	return options
}
