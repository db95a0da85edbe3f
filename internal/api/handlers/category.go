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

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

// ListCategories godoc
//
//	@Summary	List categories
//	@Tags		Categories
//	@Produce	json
//	@Param		page	query		int								false	"Page number (default: 1)"
//	@Param		perPage	query		int								false	"Items per page (default: 10, max: 100)"
//	@Success	200		{object}	models.Page[models.Category]	"Page of categories ordered by position"
//	@Failure	500		{object}	response.ErrorResponse			"Internal server error"
//	@Security	BearerAuth
//	@Router		/categories [get]
func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, perPage := utils.ParsePagination(r)

		categories, err := h.categoryService.ListCategories(r.Context(), page, perPage)
		if err != nil {
			logger.Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// ListAllCategories godoc
//
//	@Summary	List every category
//	@Tags		Categories
//	@Produce	json
//	@Success	200	{array}		models.Category			"All categories ordered by position"
//	@Failure	500	{object}	response.ErrorResponse	"Internal server error"
//	@Security	BearerAuth
//	@Router		/categories/all [get]
func (h *CategoryHandler) ListAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.categoryService.ListAllCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// GetCategory godoc
//
//	@Summary	Get a category
//	@Tags		Categories
//	@Produce	json
//	@Param		id	path		string					true	"Category ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.Category			"Category with parent and children"
//	@Failure	400	{object}	response.ErrorResponse	"Invalid category ID format"
//	@Failure	404	{object}	response.ErrorResponse	"Category not found"
//	@Security	BearerAuth
//	@Router		/categories/{id} [get]
func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "category")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		category, err := h.categoryService.GetCategory(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get category", slog.String("categoryId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// CreateCategory godoc
//
//	@Summary	Create a category
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		category	body		models.CreateCategoryRequest	true	"Category details"
//	@Success	201			{object}	models.Category					"Category created"
//	@Failure	400			{object}	response.ErrorResponse			"Validation error"
//	@Failure	404			{object}	response.ErrorResponse			"Parent category not found"
//	@Failure	409			{object}	response.ErrorResponse			"Name already used"
//	@Security	BearerAuth
//	@Router		/categories [post]
func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create category input")
			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category created", slog.String("categoryId", category.ID.String()))
		response.Success(w, http.StatusCreated, category)
	}
}

// UpdateCategory godoc
//
//	@Summary		Update a category
//	@Description	Partial update. An empty parentId detaches the category from its parent.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Category ID (UUID)"	Format(uuid)
//	@Param			category	body		models.UpdateCategoryRequest	true	"Fields to change"
//	@Success		200			{object}	models.Category					"Updated category"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error or cycle in the tree"
//	@Failure		404			{object}	response.ErrorResponse			"Category not found"
//	@Failure		409			{object}	response.ErrorResponse			"Name already used"
//	@Security		BearerAuth
//	@Router			/categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "category")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update category input")
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update category", slog.String("categoryId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// DeleteCategory godoc
//
//	@Summary	Delete a category
//	@Tags		Categories
//	@Param		id	path	string	true	"Category ID (UUID)"	Format(uuid)
//	@Success	204	"Category deleted"
//	@Failure	400	{object}	response.ErrorResponse	"Category has subcategories"
//	@Failure	404	{object}	response.ErrorResponse	"Category not found"
//	@Security	BearerAuth
//	@Router		/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "category")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			logger.Error("Failed to delete category", slog.String("categoryId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category deleted", slog.String("categoryId", id.String()))
		response.NoContent(w)
	}
}
