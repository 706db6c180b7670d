package blog

import (
	"github.com/labstack/echo/v4"

	"myblog/backend/internal/plugins/auth"
)

// RegisterRoutes sets up the blog routes. Reads are public (drafts hidden);
// every write sits behind the auth middleware. Post management lives under
// /admin so the slug-addressed public reads and the id-addressed writes
// never share a route segment.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/api/blog")
	admin := auth.RequireAdmin(authService)

	// Public surface.
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:slug", h.GetPost)
	g.GET("/posts/:slug/comments", h.ListComments)
	g.POST("/comments", h.CreateComment)
	g.GET("/categories", h.ListCategories)

	// Post management.
	g.GET("/admin/posts", h.ListAllPosts, admin)
	g.POST("/admin/posts", h.CreatePost, admin)
	g.PUT("/admin/posts/:id", h.UpdatePost, admin)
	g.DELETE("/admin/posts/:id", h.DeletePost, admin)

	// Category management.
	g.POST("/categories", h.CreateCategory, admin)
	g.PUT("/categories/:id", h.UpdateCategory, admin)
	g.DELETE("/categories/:id", h.DeleteCategory, admin)
}

// authorIDFromContext resolves the authenticated user's id for post
// authorship. The admin middleware guarantees a user is present.
func authorIDFromContext(c echo.Context) int64 {
	if user := auth.GetUser(c); user != nil {
		return user.ID
	}
	return 0
}
