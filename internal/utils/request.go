package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	appErrors "github.com/storedesk/backoffice-api/internal/errors"
	"github.com/storedesk/backoffice-api/internal/models"
	"github.com/storedesk/backoffice-api/internal/utils/response"
)

// ParseAndValidate decodes the JSON body into dest and runs the validator on it.
// On failure it writes the error response and returns false.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, appErrors.BadRequestError("invalid input data"))
		}
		return false
	}

	return true
}

// ParseID reads the {id} path value as a UUID.
func ParseID(r *http.Request, resource string) (uuid.UUID, error) {
	raw := r.PathValue("id")

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.BadRequestf("Invalid %s ID format", resource).WithError(err)
	}

	return id, nil
}

// ParsePagination reads page and perPage from the query string, falling back to defaults.
func ParsePagination(r *http.Request) (int, int) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))

	return models.NormalizePage(page, perPage)
}
