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

type SaleHandler struct {
	saleService service.SaleService
	validator   *validator.Validate
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService, validator: validator.New()}
}

// CreateSale godoc
//
//	@Summary		Register a sale
//	@Description	Creates a sale for a customer. Unit prices are taken from the current product prices and the total is computed server side.
//	@Tags			Sales
//	@Accept			json
//	@Produce		json
//	@Param			sale	body		models.CreateSaleRequest	true	"Customer, items and optional initial status"
//	@Success		201		{object}	models.Sale					"Sale created"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or unknown products"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Customer not found"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/sales [post]
func (h *SaleHandler) CreateSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateSaleRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create sale input")
			return
		}

		sale, err := h.saleService.CreateSale(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create sale", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Sale created successfully", slog.String("saleId", sale.ID.String()))
		response.Success(w, http.StatusCreated, sale)
	}
}

// GetSale godoc
//
//	@Summary		Get a sale
//	@Description	Returns a sale with its customer and items.
//	@Tags			Sales
//	@Produce		json
//	@Param			id	path		string					true	"Sale ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Sale				"Sale"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid sale ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Sale not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/sales/{id} [get]
func (h *SaleHandler) GetSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "sale")
		if err != nil {
			logger.Warn("Invalid sale id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		sale, err := h.saleService.GetSale(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get sale", slog.String("saleId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sale)
	}
}

// ListSales godoc
//
//	@Summary		List sales
//	@Description	Lists sales, newest first.
//	@Tags			Sales
//	@Produce		json
//	@Param			page	query		int											false	"Page number (default: 1)"					minimum(1)
//	@Param			perPage	query		int											false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200		{object}	models.Page[models.Sale]					"Page of sales"
//	@Failure		401		{object}	response.ErrorResponse						"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse						"Internal server error"
//	@Security		BearerAuth
//	@Router			/sales [get]
func (h *SaleHandler) ListSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, perPage := utils.ParsePagination(r)

		sales, err := h.saleService.ListSales(r.Context(), page, perPage)
		if err != nil {
			logger.Error("Failed to list sales", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sales)
	}
}

// UpdateSaleStatus godoc
//
//	@Summary		Change the status of a sale
//	@Description	Moves a sale to a new status and replaces its notes with the generated status message, the optional note and the admin name.
//	@Tags			Sales
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Sale ID (UUID)"	Format(uuid)
//	@Param			status	body		models.UpdateSaleStatusRequest	true	"Target status and optional details"
//	@Success		200		{object}	models.Sale						"Updated sale"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error or invalid transition"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse			"Sale not found"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/sales/{id}/status [patch]
func (h *SaleHandler) UpdateSaleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "sale")
		if err != nil {
			logger.Warn("Invalid sale id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("saleId", id.String()))

		var req models.UpdateSaleStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid sale status input")
			return
		}

		sale, err := h.saleService.UpdateSaleStatus(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update sale status", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Sale status updated", slog.String("status", string(sale.Status)))
		response.Success(w, http.StatusOK, sale)
	}
}
