package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/storedesk/backoffice-api/internal/api/middleware"
	"github.com/storedesk/backoffice-api/internal/models"
	service "github.com/storedesk/backoffice-api/internal/services"
	"github.com/storedesk/backoffice-api/internal/utils"
	"github.com/storedesk/backoffice-api/internal/utils/response"
)

type BrandHandler struct {
	brandService service.BrandService
	validator    *validator.Validate
}

func NewBrandHandler(brandService service.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService, validator: validator.New()}
}

// ListBrands godoc
//
//	@Summary	List brands
//	@Tags		Brands
//	@Produce	json
//	@Success	200	{array}		models.Brand			"Brands ordered by name, with product counts"
//	@Failure	500	{object}	response.ErrorResponse	"Internal server error"
//	@Security	BearerAuth
//	@Router		/brands [get]
func (h *BrandHandler) ListBrands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		brands, err := h.brandService.ListBrands(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list brands", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, brands)
	}
}

// GetBrand godoc
//
//	@Summary	Get a brand
//	@Tags		Brands
//	@Produce	json
//	@Param		id	path		string					true	"Brand ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.Brand			"Brand with its products"
//	@Failure	400	{object}	response.ErrorResponse	"Invalid brand ID format"
//	@Failure	404	{object}	response.ErrorResponse	"Brand not found"
//	@Security	BearerAuth
//	@Router		/brands/{id} [get]
func (h *BrandHandler) GetBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "brand")
		if err != nil {
			logger.Warn("Invalid brand id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		brand, err := h.brandService.GetBrand(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get brand", slog.String("brandId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, brand)
	}
}

// CreateBrand godoc
//
//	@Summary	Create a brand
//	@Tags		Brands
//	@Accept		json
//	@Produce	json
//	@Param		brand	body		models.BrandRequest		true	"Brand name"
//	@Success	201		{object}	models.Brand			"Brand created"
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	409		{object}	response.ErrorResponse	"Name already used"
//	@Security	BearerAuth
//	@Router		/brands [post]
func (h *BrandHandler) CreateBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.BrandRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create brand input")
			return
		}

		brand, err := h.brandService.CreateBrand(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create brand", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Brand created", slog.String("brandId", brand.ID.String()))
		response.Success(w, http.StatusCreated, brand)
	}
}

// RenameBrand godoc
//
//	@Summary	Rename a brand
//	@Tags		Brands
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Brand ID (UUID)"	Format(uuid)
//	@Param		brand	body		models.BrandRequest		true	"New name"
//	@Success	200		{object}	models.Brand			"Renamed brand"
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	404		{object}	response.ErrorResponse	"Brand not found"
//	@Failure	409		{object}	response.ErrorResponse	"Name already used"
//	@Security	BearerAuth
//	@Router		/brands/{id} [patch]
func (h *BrandHandler) RenameBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "brand")
		if err != nil {
			logger.Warn("Invalid brand id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.BrandRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid rename brand input")
			return
		}

		brand, err := h.brandService.RenameBrand(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to rename brand", slog.String("brandId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, brand)
	}
}

// DeleteBrand godoc
//
//	@Summary	Delete a brand
//	@Tags		Brands
//	@Param		id	path	string	true	"Brand ID (UUID)"	Format(uuid)
//	@Success	204	"Brand deleted"
//	@Failure	400	{object}	response.ErrorResponse	"Brand still has products"
//	@Failure	404	{object}	response.ErrorResponse	"Brand not found"
//	@Security	BearerAuth
//	@Router		/brands/{id} [delete]
func (h *BrandHandler) DeleteBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "brand")
		if err != nil {
			logger.Warn("Invalid brand id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.brandService.DeleteBrand(r.Context(), id); err != nil {
			logger.Error("Failed to delete brand", slog.String("brandId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Brand deleted", slog.String("brandId", id.String()))
		response.NoContent(w)
	}
}
