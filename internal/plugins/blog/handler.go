package blog

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"myblog/backend/internal/apperror"
	"myblog/backend/internal/config"
	"myblog/backend/internal/pagination"
)

// Handler handles HTTP requests for the blog. Handlers are thin: they bind
// the request, call the service, and shape the response.
type Handler struct {
	service BlogService
	page    config.PageConfig
}

// NewHandler creates a new blog handler.
func NewHandler(service BlogService, page config.PageConfig) *Handler {
	return &Handler{service: service, page: page}
}

// ListPosts returns one page of published posts, optionally filtered by
// category and title search.
// GET /api/blog/posts?page=&size=&category_id=&search=
func (h *Handler) ListPosts(c echo.Context) error {
	return h.listPosts(c, true)
}

// ListAllPosts is the authenticated listing: drafts included unless the
// client asks for published_only=true.
// GET /api/blog/admin/posts?page=&size=&category_id=&search=&published_only=
func (h *Handler) ListAllPosts(c echo.Context) error {
	publishedOnly := false
	if v := c.QueryParam("published_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return apperror.NewBadRequest("published_only must be a boolean")
		}
		publishedOnly = b
	}
	return h.listPosts(c, publishedOnly)
}

func (h *Handler) listPosts(c echo.Context, publishedOnly bool) error {
	filter := PostFilter{
		Search:        c.QueryParam("search"),
		PublishedOnly: publishedOnly,
	}
	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperror.NewBadRequest("category_id must be an integer")
		}
		filter.CategoryID = &id
	}

	params := pagination.Build(c.QueryParam("page"), c.QueryParam("size"),
		h.page.DefaultSize, h.page.MaxSize)

	result, err := h.service.ListPosts(c.Request().Context(), filter, params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// GetPost returns a published post with its approved comments and bumps the
// view counter. Drafts 404.
// GET /api/blog/posts/:slug
func (h *Handler) GetPost(c echo.Context) error {
	post, err := h.service.GetPostBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost creates a new post authored by the authenticated user.
// POST /api/blog/admin/posts
func (h *Handler) CreatePost(c echo.Context) error {
	var req PostCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	authorID := authorIDFromContext(c)
	post, err := h.service.CreatePost(c.Request().Context(), authorID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost applies a partial update to a post.
// PUT /api/blog/admin/posts/:id
func (h *Handler) UpdatePost(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req PostUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.UpdatePost(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post.
// DELETE /api/blog/admin/posts/:id
func (h *Handler) DeletePost(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateComment records a public comment against a published post. The
// comment waits for approval before showing up anywhere.
// POST /api/blog/comments
func (h *Handler) CreateComment(c echo.Context) error {
	var req CommentCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.service.CreateComment(c.Request().Context(), req,
		c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListComments returns a published post's approved comments.
// GET /api/blog/posts/:slug/comments
func (h *Handler) ListComments(c echo.Context) error {
	comments, err := h.service.ListApprovedComments(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// ListCategories returns all categories.
// GET /api/blog/categories
func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a new category.
// POST /api/blog/categories
func (h *Handler) CreateCategory(c echo.Context) error {
	var req CategoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory applies a partial update to a category.
// PUT /api/blog/categories/:id
func (h *Handler) UpdateCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req CategoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.service.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category, refusing while posts still reference it.
// DELETE /api/blog/categories/:id
func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// paramID parses the :id route parameter.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequest("invalid id")
	}
	return id, nil
}
