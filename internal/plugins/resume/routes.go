package resume

import (
	"github.com/labstack/echo/v4"

	"myblog/backend/internal/plugins/auth"
)

// RegisterRoutes sets up the resume routes. Reads are public; section
// management requires the auth middleware.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/api/resume")
	admin := auth.RequireAdmin(authService)

	g.GET("", h.GetResume)
	g.GET("/sections", h.ListSections)

	g.POST("/sections", h.CreateSection, admin)
	g.PUT("/sections/:id", h.UpdateSection, admin)
	g.DELETE("/sections/:id", h.DeleteSection, admin)
}
