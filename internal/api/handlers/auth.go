package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/storedesk/backoffice-api/internal/api/middleware"
	"github.com/storedesk/backoffice-api/internal/errors"
	"github.com/storedesk/backoffice-api/internal/models"
	service "github.com/storedesk/backoffice-api/internal/services"
	"github.com/storedesk/backoffice-api/internal/utils"
	"github.com/storedesk/backoffice-api/internal/utils/response"
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, validator: validator.New()}
}

// Login godoc
//
//	@Summary		Admin login
//	@Description	Exchanges admin credentials for a bearer token. Attempts are rate limited per email.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Admin credentials"
//	@Success		200			{object}	models.LoginResponse	"Token issued"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid credentials"
//	@Failure		429			{object}	response.ErrorResponse	"Too many attempts"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Me godoc
//
//	@Summary	Current admin
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	models.AdminProfile		"Authenticated admin"
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure	404	{object}	response.ErrorResponse	"Admin no longer exists"
//	@Security	BearerAuth
//	@Router		/auth/me [get]
func (h *AuthHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized profile access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		profile, err := h.authService.Me(r.Context(), claims.AdminID)
		if err != nil {
			logger.Error("Failed to load admin profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}
