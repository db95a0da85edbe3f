package handlers

import (
	"log/slog"
	"net/http"

	"github.com/storedesk/backoffice-api/internal/api/middleware"
	service "github.com/storedesk/backoffice-api/internal/services"
	"github.com/storedesk/backoffice-api/internal/utils/response"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// ListCustomers godoc
//
//	@Summary	List customers
//	@Tags		Customers
//	@Produce	json
//	@Success	200	{array}		models.Customer			"Customers ordered by name"
//	@Failure	500	{object}	response.ErrorResponse	"Internal server error"
//	@Security	BearerAuth
//	@Router		/customers [get]
func (h *CustomerHandler) ListCustomers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		customers, err := h.customerService.ListCustomers(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list customers", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, customers)
	}
}
