// Package blog implements posts, categories, and comments: the public blog
// surface plus the authenticated write operations behind it. Listing goes
// through the shared pagination package; everything else is plain CRUD with
// slug-addressed post reads.
package blog

import (
	"time"
)

// Category groups posts and carries a display color for the frontend.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// Post is a blog article. Unpublished posts are only visible to
// authenticated listings; public reads treat them as absent.
type Post struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Summary       *string    `json:"summary,omitempty"`
	Content       string     `json:"content"`
	CategoryID    *int64     `json:"category_id,omitempty"`
	AuthorID      int64      `json:"author_id"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	IsPublished   bool       `json:"is_published"`
	ViewCount     int        `json:"view_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

// Comment is a reader-submitted comment. Comments are hidden until an admin
// approves them; the client IP and user agent are kept for spam triage.
type Comment struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"post_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Content     string    `json:"content"`
	IsApproved  bool      `json:"is_approved"`
	IPAddress   *string   `json:"-"` // Never expose submitter IPs publicly.
	UserAgent   *string   `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostWithComments is the post detail payload: the post plus its approved
// comments, newest first.
type PostWithComments struct {
	Post
	Comments []Comment `json:"comments"`
}

// PostFilter is the predicate set applied before counting and paginating
// the post list.
type PostFilter struct {
	// CategoryID restricts to a single category when non-nil.
	CategoryID *int64

	// Search matches a substring of the title, case-insensitively.
	Search string

	// PublishedOnly hides drafts. Public listings always set this.
	PublishedOnly bool
}

// --- Request DTOs (bound from HTTP requests) ---

// PostCreateRequest holds the fields for a new post. Slug is optional; when
// empty it is derived from the title.
type PostCreateRequest struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Slug          string  `json:"slug" validate:"max=200"`
	Summary       *string `json:"summary"`
	Content       string  `json:"content" validate:"required"`
	CategoryID    *int64  `json:"category_id"`
	FeaturedImage *string `json:"featured_image" validate:"omitempty,max=500"`
	IsPublished   bool    `json:"is_published"`
}

// PostUpdateRequest is a patch: only non-nil fields are applied to the
// stored post.
type PostUpdateRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=200"`
	Slug          *string `json:"slug" validate:"omitempty,min=1,max=200"`
	Summary       *string `json:"summary"`
	Content       *string `json:"content" validate:"omitempty,min=1"`
	CategoryID    *int64  `json:"category_id"`
	FeaturedImage *string `json:"featured_image" validate:"omitempty,max=500"`
	IsPublished   *bool   `json:"is_published"`
}

// CommentCreateRequest holds a public comment submission.
type CommentCreateRequest struct {
	PostID      int64  `json:"post_id" validate:"required"`
	AuthorName  string `json:"author_name" validate:"required,max=100"`
	AuthorEmail string `json:"author_email" validate:"required,email,max=100"`
	Content     string `json:"content" validate:"required"`
}

// CategoryCreateRequest holds the fields for a new category. Slug is
// derived from the name when empty.
type CategoryCreateRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"max=100"`
	Description *string `json:"description"`
	Color       string  `json:"color" validate:"omitempty,max=7"`
}

// CategoryUpdateRequest is a patch: only non-nil fields are applied.
type CategoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitempty,max=7"`
}
