package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/moewai/aquaflow/internal/model" // model defines the closed role set
)

// RequireRole returns a middleware that enforces that the authenticated
// user holds one of the given roles.  The role sets come from the
// navigation table, so the menu a role sees and the routes it may call are
// gated by the same allow-list.  It assumes JWTAuth has already stored the
// role claim in the context under "role"; requests with a missing or
// disallowed role are rejected with 403 Forbidden.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[model.Role(role)] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
