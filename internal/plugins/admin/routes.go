package admin

import (
	"github.com/labstack/echo/v4"

	"myblog/backend/internal/plugins/auth"
)

// RegisterRoutes sets up the admin routes. Everything here requires the
// auth middleware. The message inbox registers its own /api/admin/messages
// group from the messages plugin.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/api/admin", auth.RequireAdmin(authService))

	g.GET("/dashboard", h.Dashboard)

	g.GET("/comments/pending", h.PendingComments)
	g.POST("/comments/:id/approve", h.ApproveComment)
	g.DELETE("/comments/:id", h.DeleteComment)

	g.GET("/users", h.ListUsers)
	g.POST("/users/:id/toggle-active", h.ToggleUserActive)
}
