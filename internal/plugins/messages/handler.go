package messages

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"myblog/backend/internal/apperror"
)

// Handler handles HTTP requests for contact messages.
type Handler struct {
	service MessageService
}

// NewHandler creates a new messages handler.
func NewHandler(service MessageService) *Handler {
	return &Handler{service: service}
}

// Submit records a public contact form submission.
// POST /api/messages
func (h *Handler) Submit(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.service.Submit(c.Request().Context(), req, c.RealIP())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, message)
}

// List returns the whole inbox, newest first.
// GET /api/admin/messages
func (h *Handler) List(c echo.Context) error {
	msgs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Get returns one message, marking it read on first fetch.
// GET /api/admin/messages/:id
func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperror.NewBadRequest("invalid id")
	}

	message, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message)
}

// Delete removes a message.
// DELETE /api/admin/messages/:id
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperror.NewBadRequest("invalid id")
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
