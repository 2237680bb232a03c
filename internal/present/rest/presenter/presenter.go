package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/totegamma/quill/internal/domain"
)

type resultResponse struct {
	Result any `json:"result"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// OK wraps a successful procedure result.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, resultResponse{Result: payload})
}

// Error maps a classified failure to its HTTP status. Failures are surfaced
// verbatim; nothing is retried or downgraded here.
func Error(c echo.Context, err error) error {
	var validationErr domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:  validationErr.Error(),
			Code:   "VALIDATION",
			Fields: validationErr.Fields,
		})
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, errorResponse{
			Error: err.Error(),
			Code:  "UNAUTHENTICATED",
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{
			Error: err.Error(),
			Code:  "FORBIDDEN",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{
			Error: err.Error(),
			Code:  "NOT_FOUND",
		})
	default:
		slog.Error(
			"internal error",
			slog.String("error", err.Error()),
			slog.String("module", "rest"),
		)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: err.Error(),
			Code:  "INTERNAL",
		})
	}
}
