package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gosimple/slug"

	"myblog/backend/internal/apperror"
	"myblog/backend/internal/pagination"
)

// BlogService defines the business logic contract for the blog. Handlers
// call these methods -- they never touch the repositories directly.
type BlogService interface {
	ListPosts(ctx context.Context, filter PostFilter, params pagination.Params) (pagination.Result[Post], error)
	GetPostBySlug(ctx context.Context, postSlug string) (*PostWithComments, error)
	CreatePost(ctx context.Context, authorID int64, req PostCreateRequest) (*Post, error)
	UpdatePost(ctx context.Context, id int64, req PostUpdateRequest) (*Post, error)
	DeletePost(ctx context.Context, id int64) error

	CreateComment(ctx context.Context, req CommentCreateRequest, ip, userAgent string) (*Comment, error)
	ListApprovedComments(ctx context.Context, postSlug string) ([]Comment, error)

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, req CategoryCreateRequest) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, req CategoryUpdateRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// defaultCategoryColor matches the frontend's default badge color.
const defaultCategoryColor = "#007bff"

// blogService implements BlogService.
type blogService struct {
	posts      PostRepository
	comments   CommentRepository
	categories CategoryRepository
}

// NewBlogService creates a new blog service with the given repositories.
func NewBlogService(posts PostRepository, comments CommentRepository, categories CategoryRepository) BlogService {
	return &blogService{
		posts:      posts,
		comments:   comments,
		categories: categories,
	}
}

// ListPosts returns one page of posts matching the filter, wrapped in the
// standard pagination envelope.
func (s *blogService) ListPosts(ctx context.Context, filter PostFilter, params pagination.Params) (pagination.Result[Post], error) {
	posts, total, err := s.posts.List(ctx, filter, params.Offset(), params.Limit())
	if err != nil {
		return pagination.Result[Post]{}, apperror.NewInternal(fmt.Errorf("listing posts: %w", err))
	}
	return pagination.NewResult(posts, total, params), nil
}

// GetPostBySlug returns a published post with its approved comments. The
// view counter is bumped by a single atomic UPDATE; a draft slug is
// indistinguishable from a missing one.
func (s *blogService) GetPostBySlug(ctx context.Context, postSlug string) (*PostWithComments, error) {
	post, err := s.findPublished(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("incrementing views: %w", err))
	}
	post.ViewCount++

	comments, err := s.comments.ListApprovedByPost(ctx, post.ID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing comments: %w", err))
	}
	if comments == nil {
		comments = make([]Comment, 0)
	}

	return &PostWithComments{Post: *post, Comments: comments}, nil
}

// findPublished looks up a post by slug and hides drafts behind 404.
func (s *blogService) findPublished(ctx context.Context, postSlug string) (*Post, error) {
	post, err := s.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding post: %w", err))
	}
	if !post.IsPublished {
		return nil, apperror.NewNotFound("post not found")
	}
	return post, nil
}

// CreatePost creates a new post. A missing slug is derived from the title;
// a colliding slug gets a numeric suffix. Posts created already-published
// get their publish timestamp stamped immediately.
func (s *blogService) CreatePost(ctx context.Context, authorID int64, req PostCreateRequest) (*Post, error) {
	postSlug, err := s.resolveSlug(ctx, req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	post := &Post{
		Title:         req.Title,
		Slug:          postSlug,
		Summary:       req.Summary,
		Content:       req.Content,
		CategoryID:    req.CategoryID,
		AuthorID:      authorID,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   req.IsPublished,
	}
	if req.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating post: %w", err))
	}

	slog.Info("post created",
		slog.Int64("post_id", post.ID),
		slog.String("slug", post.Slug),
		slog.Bool("published", post.IsPublished),
	)

	return post, nil
}

// resolveSlug normalizes the requested slug (deriving it from the title when
// absent) and suffixes it with the post count on collision.
func (s *blogService) resolveSlug(ctx context.Context, requested, title string) (string, error) {
	postSlug := requested
	if postSlug == "" {
		postSlug = slugify(title)
	}

	exists, err := s.posts.SlugExists(ctx, postSlug)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("checking slug: %w", err))
	}
	if exists {
		count, err := s.posts.Count(ctx)
		if err != nil {
			return "", apperror.NewInternal(fmt.Errorf("counting posts: %w", err))
		}
		postSlug = fmt.Sprintf("%s-%d", postSlug, count+1)
	}

	return postSlug, nil
}

// slugify derives a URL-safe slug from free text.
func slugify(text string) string {
	s := slug.Make(text)
	if s == "" {
		return "untitled"
	}
	return s
}

// UpdatePost applies a patch to a post: only fields present in the request
// overwrite stored values. Flipping a draft to published stamps the publish
// timestamp; re-publishing an already-published post leaves it alone.
func (s *blogService) UpdatePost(ctx context.Context, id int64, req PostUpdateRequest) (*Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding post: %w", err))
	}

	wasPublished := post.IsPublished

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Slug != nil {
		post.Slug = *req.Slug
	}
	if req.Summary != nil {
		post.Summary = req.Summary
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.CategoryID != nil {
		post.CategoryID = req.CategoryID
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = req.FeaturedImage
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if !wasPublished && post.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("updating post: %w", err))
	}

	return post, nil
}

// DeletePost removes a post and (via schema cascade) its comments.
func (s *blogService) DeletePost(ctx context.Context, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("deleting post: %w", err))
	}

	slog.Info("post deleted", slog.Int64("post_id", id))
	return nil
}

// CreateComment records a public comment submission against a published
// post. The comment stays hidden until approved. Submitter IP and user
// agent are kept for spam triage, never exposed.
func (s *blogService) CreateComment(ctx context.Context, req CommentCreateRequest, ip, userAgent string) (*Comment, error) {
	post, err := s.posts.FindByID(ctx, req.PostID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding post: %w", err))
	}
	if !post.IsPublished {
		return nil, apperror.NewNotFound("post not found")
	}

	comment := &Comment{
		PostID:      req.PostID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Content:     req.Content,
	}
	if ip != "" {
		comment.IPAddress = &ip
	}
	if userAgent != "" {
		comment.UserAgent = &userAgent
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating comment: %w", err))
	}

	slog.Info("comment submitted",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID),
	)

	return comment, nil
}

// ListApprovedComments returns a published post's approved comments.
func (s *blogService) ListApprovedComments(ctx context.Context, postSlug string) ([]Comment, error) {
	post, err := s.findPublished(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListApprovedByPost(ctx, post.ID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing comments: %w", err))
	}
	if comments == nil {
		comments = make([]Comment, 0)
	}
	return comments, nil
}

// ListCategories returns all categories ordered by name.
func (s *blogService) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing categories: %w", err))
	}
	if categories == nil {
		categories = make([]Category, 0)
	}
	return categories, nil
}

// CreateCategory creates a new category, deriving the slug from the name
// when absent.
func (s *blogService) CreateCategory(ctx context.Context, req CategoryCreateRequest) (*Category, error) {
	catSlug := req.Slug
	if catSlug == "" {
		catSlug = slugify(req.Name)
	}
	color := req.Color
	if color == "" {
		color = defaultCategoryColor
	}

	category := &Category{
		Name:        req.Name,
		Slug:        catSlug,
		Description: req.Description,
		Color:       color,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating category: %w", err))
	}

	return category, nil
}

// UpdateCategory applies a patch to a category.
func (s *blogService) UpdateCategory(ctx context.Context, id int64, req CategoryUpdateRequest) (*Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding category: %w", err))
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("updating category: %w", err))
	}

	return category, nil
}

// DeleteCategory removes a category. Deletion is refused while posts still
// reference it -- the posts would silently lose their grouping otherwise.
func (s *blogService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("finding category: %w", err))
	}

	count, err := s.categories.CountPosts(ctx, id)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("counting posts in category: %w", err))
	}
	if count > 0 {
		return apperror.NewBadRequest("category still has posts and cannot be deleted")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("deleting category: %w", err))
	}

	return nil
}
