package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"myblog/backend/internal/apperror"
)

// PostRepository defines the data access contract for post operations.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type PostRepository interface {
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]Post, int, error)
	FindByID(ctx context.Context, id int64) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	SumViews(ctx context.Context) (int64, error)
	TopViewedSince(ctx context.Context, since time.Time, limit int) ([]Post, error)
}

// CommentRepository defines the data access contract for comment operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	ListApprovedByPost(ctx context.Context, postID int64) ([]Comment, error)
	ListPending(ctx context.Context, limit int) ([]Comment, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the data access contract for category operations.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64) error
	CountPosts(ctx context.Context, categoryID int64) (int, error)
}

const postColumns = `id, title, slug, summary, content, category_id, author_id,
	featured_image, is_published, view_count, created_at, updated_at, published_at`

// postRepository implements PostRepository with hand-written MariaDB queries.
type postRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new post repository backed by the given DB pool.
func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

// buildFilter turns a PostFilter into a WHERE clause and its arguments.
func buildFilter(filter PostFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.PublishedOnly {
		conds = append(conds, "is_published = TRUE")
	}
	if filter.CategoryID != nil {
		conds = append(conds, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Search != "" {
		conds = append(conds, "title LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of posts matching the filter plus the total match
// count. The count runs against the same predicate set BEFORE the LIMIT so
// the total ignores pagination. Ordering is newest-published first with the
// id as a tie-breaker, so page boundaries are deterministic across calls.
func (r *postRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]Post, int, error) {
	where, args := buildFilter(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	query := `SELECT ` + postColumns + ` FROM blog_posts` + where +
		` ORDER BY published_at DESC, created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := scanPost(rows.Scan, &p); err != nil {
			return nil, 0, fmt.Errorf("scanning post row: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, total, rows.Err()
}

// scanPost scans a full post row via the given Scan function, shared by the
// single-row and multi-row read paths.
func scanPost(scan func(...any) error, p *Post) error {
	return scan(
		&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Content, &p.CategoryID,
		&p.AuthorID, &p.FeaturedImage, &p.IsPublished, &p.ViewCount,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
	)
}

// FindByID retrieves a post by its numeric ID.
// Returns apperror.NotFound if no post exists with this ID.
func (r *postRepository) FindByID(ctx context.Context, id int64) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE id = ?`

	post := &Post{}
	err := scanPost(r.db.QueryRowContext(ctx, query, id).Scan, post)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying post by id: %w", err)
	}

	return post, nil
}

// FindBySlug retrieves a post by its unique slug.
// Returns apperror.NotFound if no post exists with this slug.
func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = ?`

	post := &Post{}
	err := scanPost(r.db.QueryRowContext(ctx, query, slug).Scan, post)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying post by slug: %w", err)
	}

	return post, nil
}

// SlugExists returns true if a post with the given slug already exists.
func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = ?)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking slug existence: %w", err)
	}
	return exists, nil
}

// Create inserts a new post row and backfills the generated ID.
func (r *postRepository) Create(ctx context.Context, post *Post) error {
	query := `INSERT INTO blog_posts (title, slug, summary, content, category_id, author_id,
	          featured_image, is_published, published_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		post.Title, post.Slug, post.Summary, post.Content, post.CategoryID,
		post.AuthorID, post.FeaturedImage, post.IsPublished, post.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting post id: %w", err)
	}
	post.ID = id
	return nil
}

// Update writes all mutable columns of a post. The patch merge happens in
// the service; the repository always writes the full row.
func (r *postRepository) Update(ctx context.Context, post *Post) error {
	query := `UPDATE blog_posts SET title = ?, slug = ?, summary = ?, content = ?,
	          category_id = ?, featured_image = ?, is_published = ?, published_at = ?
	          WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		post.Title, post.Slug, post.Summary, post.Content, post.CategoryID,
		post.FeaturedImage, post.IsPublished, post.PublishedAt, post.ID,
	)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}
	return nil
}

// Delete removes a post. Comments cascade at the schema level.
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("post not found")
	}
	return nil
}

// IncrementViews bumps the view counter in a single UPDATE so concurrent
// reads of the same post never lose an increment.
func (r *postRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE blog_posts SET view_count = view_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("incrementing view count: %w", err)
	}
	return nil
}

// Count returns the total number of posts, drafts included.
func (r *postRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return count, nil
}

// SumViews returns the total view count across all posts.
func (r *postRepository) SumViews(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT SUM(view_count) FROM blog_posts`).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing view counts: %w", err)
	}
	// SUM over zero rows is NULL.
	return total.Int64, nil
}

// TopViewedSince returns the most-viewed posts published on or after `since`,
// for the admin dashboard.
func (r *postRepository) TopViewedSince(ctx context.Context, since time.Time, limit int) ([]Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts
	          WHERE published_at >= ? ORDER BY view_count DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("listing top viewed posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := scanPost(rows.Scan, &p); err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// --- Comment Repository ---

// commentRepository implements CommentRepository with MariaDB queries.
type commentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, post_id, author_name, author_email, content,
	is_approved, ip_address, user_agent, created_at`

// Create inserts a new (unapproved) comment row.
func (r *commentRepository) Create(ctx context.Context, comment *Comment) error {
	query := `INSERT INTO comments (post_id, author_name, author_email, content, ip_address, user_agent)
	          VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		comment.PostID, comment.AuthorName, comment.AuthorEmail,
		comment.Content, comment.IPAddress, comment.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting comment id: %w", err)
	}
	comment.ID = id
	return nil
}

// ListApprovedByPost returns a post's approved comments, newest first.
func (r *commentRepository) ListApprovedByPost(ctx context.Context, postID int64) ([]Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments
	          WHERE post_id = ? AND is_approved = TRUE
	          ORDER BY created_at DESC, id DESC`

	return r.queryComments(ctx, query, postID)
}

// ListPending returns unapproved comments, newest first. A limit of 0 means
// no limit (the moderation queue view wants everything).
func (r *commentRepository) ListPending(ctx context.Context, limit int) ([]Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments
	          WHERE is_approved = FALSE ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		return r.queryComments(ctx, query+` LIMIT ?`, limit)
	}
	return r.queryComments(ctx, query)
}

func (r *commentRepository) queryComments(ctx context.Context, query string, args ...any) ([]Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(
			&cm.ID, &cm.PostID, &cm.AuthorName, &cm.AuthorEmail, &cm.Content,
			&cm.IsApproved, &cm.IPAddress, &cm.UserAgent, &cm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		comments = append(comments, cm)
	}

	return comments, rows.Err()
}

// Approve marks a comment as approved.
func (r *commentRepository) Approve(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comments SET is_approved = TRUE WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("approving comment: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("comment not found")
	}
	return nil
}

// Delete removes a comment.
func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("comment not found")
	}
	return nil
}

// Count returns the total number of comments, pending included.
func (r *commentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting comments: %w", err)
	}
	return count, nil
}

// --- Category Repository ---

// categoryRepository implements CategoryRepository with MariaDB queries.
type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns all categories ordered by name.
func (r *categoryRepository) List(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name, slug, description, color, created_at
	          FROM blog_categories ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Color, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

// FindByID retrieves a category by its numeric ID.
// Returns apperror.NotFound if no category exists with this ID.
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*Category, error) {
	query := `SELECT id, name, slug, description, color, created_at
	          FROM blog_categories WHERE id = ?`

	cat := &Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Color, &cat.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying category by id: %w", err)
	}

	return cat, nil
}

// Create inserts a new category row and backfills the generated ID.
func (r *categoryRepository) Create(ctx context.Context, category *Category) error {
	query := `INSERT INTO blog_categories (name, slug, description, color)
	          VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		category.Name, category.Slug, category.Description, category.Color,
	)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting category id: %w", err)
	}
	category.ID = id
	return nil
}

// Update writes all mutable columns of a category.
func (r *categoryRepository) Update(ctx context.Context, category *Category) error {
	query := `UPDATE blog_categories SET name = ?, slug = ?, description = ?, color = ?
	          WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		category.Name, category.Slug, category.Description, category.Color, category.ID,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return nil
}

// Delete removes a category. The service refuses deletion while posts still
// reference the category, so this only runs against empty categories.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blog_categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("category not found")
	}
	return nil
}

// CountPosts returns the number of posts referencing a category.
func (r *categoryRepository) CountPosts(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting posts in category: %w", err)
	}
	return count, nil
}
