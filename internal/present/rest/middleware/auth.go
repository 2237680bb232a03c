package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/quill/internal/domain"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// IdentifySession stashes the raw bearer token, if any, into the request
// context. The token is not validated here; the authenticated guard resolves
// it when a procedure requires it.
func (s *AuthMiddleware) IdentifySession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifySession")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 || split[0] != "Bearer" {
				span.RecordError(fmt.Errorf("invalid authorization header"))
			} else {
				ctx = context.WithValue(ctx, domain.SessionTokenCtxKey, split[1])
			}
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
