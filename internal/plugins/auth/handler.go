package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"myblog/backend/internal/apperror"
)

// Handler handles HTTP requests for authentication. Handlers are thin: they
// bind the request, call the service, and shape the response. No business
// logic lives here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// Login authenticates form-encoded credentials and returns an access token.
// POST /api/auth/login
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	return h.issueToken(c, req)
}

// LoginJSON authenticates a JSON credential body. Same semantics as Login;
// the frontend prefers JSON while OAuth2-style tools post forms.
// POST /api/auth/login/json
func (h *Handler) LoginJSON(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	return h.issueToken(c, req)
}

// issueToken runs the login flow and writes the token response.
func (h *Handler) issueToken(c echo.Context, req LoginRequest) error {
	token, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated user's record.
// GET /api/auth/me
func (h *Handler) Me(c echo.Context) error {
	user := GetUser(c)
	if user == nil {
		return apperror.NewUnauthorized("authentication required")
	}
	return c.JSON(http.StatusOK, user)
}
