package app

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"myblog/backend/internal/plugins/admin"
	"myblog/backend/internal/plugins/auth"
	"myblog/backend/internal/plugins/blog"
	"myblog/backend/internal/plugins/messages"
	"myblog/backend/internal/plugins/resume"
)

// RegisterRoutes builds every plugin's repository/service/handler stack over
// the shared DB pool and registers its routes. This is the single place
// where all routes are aggregated.
func (a *App) RegisterRoutes() error {
	e := a.Echo

	// Health check endpoint for Docker health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// auth plugin -- login and identity; its middleware guards every other
	// plugin's write routes.
	tokens, err := auth.NewTokenService(a.Config.Auth.SecretKey, a.Config.Auth.Algorithm)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	userRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(userRepo, tokens, a.Config.Auth.TokenTTL)
	auth.RegisterRoutes(e, auth.NewHandler(authService), authService)

	// blog plugin.
	postRepo := blog.NewPostRepository(a.DB)
	commentRepo := blog.NewCommentRepository(a.DB)
	categoryRepo := blog.NewCategoryRepository(a.DB)
	blogService := blog.NewBlogService(postRepo, commentRepo, categoryRepo)
	blog.RegisterRoutes(e, blog.NewHandler(blogService, a.Config.Page), authService)

	// resume plugin.
	sectionRepo := resume.NewSectionRepository(a.DB)
	resumeService := resume.NewResumeService(sectionRepo)
	resume.RegisterRoutes(e, resume.NewHandler(resumeService), authService)

	// messages plugin.
	messageRepo := messages.NewMessageRepository(a.DB)
	messageService := messages.NewMessageService(messageRepo)
	messages.RegisterRoutes(e, messages.NewHandler(messageService), authService)

	// admin plugin -- composes the other plugins' repositories.
	adminService := admin.NewAdminService(postRepo, commentRepo, messageRepo)
	admin.RegisterRoutes(e, admin.NewHandler(adminService, authService), authService)

	return nil
}
