package admin

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"myblog/backend/internal/apperror"
	"myblog/backend/internal/plugins/auth"
)

// Handler handles HTTP requests for the admin surface. User management
// delegates to the auth service; everything else goes through AdminService.
type Handler struct {
	service AdminService
	users   auth.AuthService
}

// NewHandler creates a new admin handler.
func NewHandler(service AdminService, users auth.AuthService) *Handler {
	return &Handler{service: service, users: users}
}

// Dashboard returns the admin landing payload.
// GET /api/admin/dashboard
func (h *Handler) Dashboard(c echo.Context) error {
	dashboard, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

// PendingComments returns the full moderation queue.
// GET /api/admin/comments/pending
func (h *Handler) PendingComments(c echo.Context) error {
	pending, err := h.service.PendingComments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pending)
}

// ApproveComment makes a comment publicly visible.
// POST /api/admin/comments/:id/approve
func (h *Handler) ApproveComment(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.ApproveComment(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "comment approved"})
}

// DeleteComment removes a comment.
// DELETE /api/admin/comments/:id
func (h *Handler) DeleteComment(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteComment(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers returns every user account.
// GET /api/admin/users
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ToggleUserActive flips a user's active flag. Disabling your own account
// is refused.
// POST /api/admin/users/:id/toggle-active
func (h *Handler) ToggleUserActive(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	actor := auth.GetUser(c)
	if actor == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	active, err := h.users.ToggleActive(c.Request().Context(), actor.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":        id,
		"is_active": active,
	})
}

// paramID parses the :id route parameter.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequest("invalid id")
	}
	return id, nil
}
