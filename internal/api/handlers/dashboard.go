package handlers

import (
	"log/slog"
	"net/http"

	"github.com/storedesk/backoffice-api/internal/api/middleware"
	service "github.com/storedesk/backoffice-api/internal/services"
	"github.com/storedesk/backoffice-api/internal/utils/response"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
//
//	@Summary		Back-office dashboard
//	@Description	Recent products, inventory value, recent sales and best sellers.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	models.Dashboard		"Dashboard"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/dashboard [get]
func (h *DashboardHandler) GetDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		dashboard, err := h.dashboardService.GetDashboard(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to build dashboard", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, dashboard)
	}
}
