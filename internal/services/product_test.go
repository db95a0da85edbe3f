package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	cacheMocks "github.com/storedesk/backoffice-api/internal/cache/mocks"
	appErrors "github.com/storedesk/backoffice-api/internal/errors"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
	"github.com/storedesk/backoffice-api/internal/repositories/mocks"
	service "github.com/storedesk/backoffice-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	repo       *mocks.ProductRepository
	categories *mocks.CategoryRepository
	brands     *mocks.BrandRepository
	cache      *cacheMocks.Cache
	service    service.ProductService
}

func newProductFixture(t *testing.T) *productFixture {
	f := &productFixture{
		repo:       mocks.NewProductRepository(t),
		categories: mocks.NewCategoryRepository(t),
		brands:     mocks.NewBrandRepository(t),
		cache:      cacheMocks.NewCache(t),
	}
	f.service = service.NewProductService(f.repo, f.categories, f.brands, f.cache)

	return f
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Defaults and options", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		categoryID := uuid.New()
		req := &models.CreateProductRequest{
			Name:       "  Desk <script>alert(1)</script>Lamp ",
			Price:      decimal.RequireFromString("19.999"),
			Stock:      4,
			CategoryID: &categoryID,
			Options:    []models.ProductOptionRequest{{Name: "Color", Values: []string{"Red", "Blue"}}},
		}

		f.categories.On("GetCategoryByID", mock.Anything, categoryID).Return(&models.Category{ID: categoryID}, nil).Once()
		f.repo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Status == models.ProductStatusActive && len(p.Options) == 1
		})).Return(nil).Once()

		// Act
		product, err := f.service.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Desk Lamp", product.Name)
		assert.Equal(t, "20", product.Price.String())
		assert.Equal(t, models.ProductStatusActive, product.Status)
		assert.Equal(t, []string{"Red", "Blue"}, product.Options[0].Values)
	})

	t.Run("Failure - Negative price", func(t *testing.T) {
		f := newProductFixture(t)

		_, err := f.service.CreateProduct(ctx, &models.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(-1)})

		assertAppError(t, err, appErrors.ErrCodeValidation, "")
	})

	t.Run("Failure - Unknown brand", func(t *testing.T) {
		f := newProductFixture(t)
		brandID := uuid.New()

		f.brands.On("GetBrandByID", mock.Anything, brandID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.CreateProduct(ctx, &models.CreateProductRequest{Name: "x", BrandID: &brandID})

		assertAppError(t, err, appErrors.ErrCodeNotFound, "Brand "+brandID.String()+" not found")
	})

	t.Run("Failure - Database error", func(t *testing.T) {
		f := newProductFixture(t)

		f.repo.On("CreateProduct", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		_, err := f.service.CreateProduct(ctx, &models.CreateProductRequest{Name: "x"})

		assertAppError(t, err, appErrors.ErrCodeDatabaseError, "Failed to create product")
	})
}

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	key := "product:" + id.String()

	t.Run("Success - Cache hit", func(t *testing.T) {
		f := newProductFixture(t)

		f.cache.On("Get", mock.Anything, key, mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
			*args.Get(2).(*models.Product) = models.Product{ID: id, Name: "Cached"}
		}).Return(true, nil).Once()

		product, err := f.service.GetProductByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "Cached", product.Name)
		f.repo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - Cache miss fills cache", func(t *testing.T) {
		f := newProductFixture(t)
		stored := &models.Product{ID: id, Name: "Stored"}

		f.cache.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		f.repo.On("GetProductByID", mock.Anything, id).Return(stored, nil).Once()
		f.cache.On("Set", mock.Anything, key, stored, time.Duration(0)).Return(nil).Once()

		product, err := f.service.GetProductByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, stored, product)
	})

	t.Run("Success - Cache failure falls back to database", func(t *testing.T) {
		f := newProductFixture(t)
		stored := &models.Product{ID: id}

		f.cache.On("Get", mock.Anything, key, mock.Anything).Return(false, errors.New("redis down")).Once()
		f.repo.On("GetProductByID", mock.Anything, id).Return(stored, nil).Once()
		f.cache.On("Set", mock.Anything, key, stored, time.Duration(0)).Return(errors.New("redis down")).Once()

		product, err := f.service.GetProductByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, stored, product)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		f := newProductFixture(t)

		f.cache.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		f.repo.On("GetProductByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.GetProductByID(ctx, id)

		assertAppError(t, err, appErrors.ErrCodeNotFound, "Product "+id.String()+" not found")
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	key := "product:" + id.String()

	t.Run("Success - Patch fields and replace options", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		existing := &models.Product{ID: id, Name: "Old", Price: decimal.NewFromInt(10), Stock: 1, Status: models.ProductStatusActive}
		price := decimal.NewFromInt(12)
		inactive := models.ProductStatusInactive
		options := []models.ProductOptionRequest{{Name: "Size", Values: []string{"S"}}}

		f.repo.On("GetProductByID", mock.Anything, id).Return(existing, nil).Once()
		f.repo.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Old" && p.Price.Equal(price) && p.Status == inactive && len(p.Options) == 1
		}), true).Return(nil).Once()
		f.cache.On("Delete", mock.Anything, key).Return(nil).Once()
		f.repo.On("GetProductByID", mock.Anything, id).Return(&models.Product{ID: id, Status: inactive}, nil).Once()

		// Act
		product, err := f.service.UpdateProduct(ctx, id, &models.UpdateProductRequest{Price: &price, Status: &inactive, Options: &options})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, inactive, product.Status)
	})

	t.Run("Success - Options untouched when absent", func(t *testing.T) {
		f := newProductFixture(t)
		name := "New"

		f.repo.On("GetProductByID", mock.Anything, id).Return(&models.Product{ID: id}, nil).Twice()
		f.repo.On("UpdateProduct", mock.Anything, mock.Anything, false).Return(nil).Once()
		f.cache.On("Delete", mock.Anything, key).Return(nil).Once()

		_, err := f.service.UpdateProduct(ctx, id, &models.UpdateProductRequest{Name: &name})

		require.NoError(t, err)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		f := newProductFixture(t)

		f.repo.On("GetProductByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.UpdateProduct(ctx, id, &models.UpdateProductRequest{})

		assertAppError(t, err, appErrors.ErrCodeNotFound, "")
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success - Delete unsold product", func(t *testing.T) {
		f := newProductFixture(t)

		f.repo.On("GetProductByID", mock.Anything, id).Return(&models.Product{ID: id}, nil).Once()
		f.repo.On("CountSaleItems", mock.Anything, id).Return(0, nil).Once()
		f.repo.On("DeleteProduct", mock.Anything, id).Return(nil).Once()
		f.cache.On("Delete", mock.Anything, "product:"+id.String()).Return(nil).Once()

		assert.NoError(t, f.service.DeleteProduct(ctx, id))
	})

	t.Run("Failure - Product has sales", func(t *testing.T) {
		f := newProductFixture(t)

		f.repo.On("GetProductByID", mock.Anything, id).Return(&models.Product{ID: id}, nil).Once()
		f.repo.On("CountSaleItems", mock.Anything, id).Return(3, nil).Once()

		err := f.service.DeleteProduct(ctx, id)

		assertAppError(t, err, appErrors.ErrCodeBadRequest, "")
		f.repo.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
	})
}

func TestListProducts(t *testing.T) {
	f := newProductFixture(t)

	f.repo.On("ListProducts", mock.Anything, 0, 5).Return([]models.Product{{ID: uuid.New()}}, 1, nil).Once()

	page, err := f.service.ListProducts(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.HasMore)
}
