package messages

import (
	"github.com/labstack/echo/v4"

	"myblog/backend/internal/plugins/auth"
)

// RegisterRoutes sets up the message routes. Submission is public; the
// inbox lives under /api/admin behind the auth middleware.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	e.POST("/api/messages", h.Submit)

	g := e.Group("/api/admin/messages", auth.RequireAdmin(authService))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}
