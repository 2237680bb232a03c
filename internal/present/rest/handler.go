package rest

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/quill/internal/domain"
	"github.com/totegamma/quill/internal/pipeline"
	"github.com/totegamma/quill/internal/present/rest/middleware"
	"github.com/totegamma/quill/internal/present/rest/presenter"
)

type Handler struct {
	registry *pipeline.Registry
}

func NewHandler(registry *pipeline.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.AuthMiddleware) {
	e.GET("/health", h.handleHealth)
	e.POST("/rpc/:procedure", h.handleRPC, auth.IdentifySession)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) handleRPC(c echo.Context) error {
	ctx := c.Request().Context()

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return presenter.Error(c, domain.ValidationError{Fields: []domain.FieldError{{
			Reason: "unreadable payload",
		}}})
	}

	result, err := h.registry.Dispatch(ctx, c.Param("procedure"), raw)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, result)
}
