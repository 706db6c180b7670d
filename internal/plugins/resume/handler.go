package resume

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"myblog/backend/internal/apperror"
)

// Handler handles HTTP requests for the resume.
type Handler struct {
	service ResumeService
}

// NewHandler creates a new resume handler.
func NewHandler(service ResumeService) *Handler {
	return &Handler{service: service}
}

// GetResume returns the full public resume: visible sections grouped by type.
// GET /api/resume
func (h *Handler) GetResume(c echo.Context) error {
	resume, err := h.service.GetResume(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resume)
}

// ListSections returns sections, optionally filtered by ?type=.
// GET /api/resume/sections
func (h *Handler) ListSections(c echo.Context) error {
	sections, err := h.service.ListSections(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sections)
}

// CreateSection creates a new resume section.
// POST /api/resume/sections
func (h *Handler) CreateSection(c echo.Context) error {
	var req SectionCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	section, err := h.service.CreateSection(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, section)
}

// UpdateSection applies a partial update to a section.
// PUT /api/resume/sections/:id
func (h *Handler) UpdateSection(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperror.NewBadRequest("invalid id")
	}

	var req SectionUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	section, err := h.service.UpdateSection(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, section)
}

// DeleteSection deletes a section.
// DELETE /api/resume/sections/:id
func (h *Handler) DeleteSection(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperror.NewBadRequest("invalid id")
	}
	if err := h.service.DeleteSection(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
