package auth

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the auth routes. Login endpoints are public; /me
// requires a valid bearer token. The RequireUser/RequireAdmin middleware is
// exported separately for other plugins to guard their own route groups.
func RegisterRoutes(e *echo.Echo, h *Handler, service AuthService) {
	g := e.Group("/api/auth")

	g.POST("/login", h.Login)
	g.POST("/login/json", h.LoginJSON)
	g.GET("/me", h.Me, RequireUser(service))
}
