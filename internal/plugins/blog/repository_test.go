package blog

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"myblog/backend/internal/apperror"
)

func newMockDB(t *testing.T) (sqlmock.Sqlmock, PostRepository, CommentRepository, CategoryRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return mock, NewPostRepository(db), NewCommentRepository(db), NewCategoryRepository(db)
}

func postRows(posts ...Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "slug", "summary", "content", "category_id", "author_id",
		"featured_image", "is_published", "view_count", "created_at", "updated_at", "published_at",
	})
	for _, p := range posts {
		rows.AddRow(p.ID, p.Title, p.Slug, p.Summary, p.Content, p.CategoryID,
			p.AuthorID, p.FeaturedImage, p.IsPublished, p.ViewCount,
			p.CreatedAt, p.UpdatedAt, p.PublishedAt)
	}
	return rows
}

func TestPostList_CountsBeforeLimit(t *testing.T) {
	mock, posts, _, _ := newMockDB(t)

	catID := int64(2)
	filter := PostFilter{PublishedOnly: true, CategoryID: &catID, Search: "go"}

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM blog_posts WHERE is_published = TRUE AND category_id = ? AND title LIKE ?`)).
		WithArgs(catID, "%go%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .+ FROM blog_posts WHERE is_published = TRUE AND category_id = \? AND title LIKE \? ORDER BY published_at DESC, created_at DESC, id DESC LIMIT \? OFFSET \?`).
		WithArgs(catID, "%go%", 10, 20).
		WillReturnRows(postRows(Post{
			ID: 21, Title: "Go Post", Slug: "go-post", Content: "body",
			AuthorID: 1, IsPublished: true, CreatedAt: now, UpdatedAt: now, PublishedAt: &now,
		}))

	got, total, err := posts.List(context.Background(), filter, 20, 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 25 {
		t.Errorf("expected total 25, got %d", total)
	}
	if len(got) != 1 || got[0].Slug != "go-post" {
		t.Errorf("unexpected page: %+v", got)
	}
}

func TestPostFindBySlug_NotFound(t *testing.T) {
	mock, posts, _, _ := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM blog_posts WHERE slug = \?`).
		WithArgs("missing").
		WillReturnRows(postRows())

	_, err := posts.FindBySlug(context.Background(), "missing")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404 AppError, got %v", err)
	}
}

func TestPostIncrementViews_SingleAtomicUpdate(t *testing.T) {
	mock, posts, _, _ := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE blog_posts SET view_count = view_count + 1 WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := posts.IncrementViews(context.Background(), 7); err != nil {
		t.Fatalf("IncrementViews error: %v", err)
	}
}

func TestPostDelete_MissingRowIs404(t *testing.T) {
	mock, posts, _, _ := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM blog_posts WHERE id = ?`)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := posts.Delete(context.Background(), 42)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404 AppError, got %v", err)
	}
}

func TestPostSumViews_NullOverZeroRows(t *testing.T) {
	mock, posts, _, _ := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT SUM(view_count) FROM blog_posts`)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

	total, err := posts.SumViews(context.Background())
	if err != nil {
		t.Fatalf("SumViews error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0 for empty table, got %d", total)
	}
}

func TestCommentCreate_BackfillsID(t *testing.T) {
	mock, _, comments, _ := newMockDB(t)

	ip := "203.0.113.9"
	mock.ExpectExec(`INSERT INTO comments`).
		WithArgs(int64(1), "Reader", "reader@example.com", "hi", &ip, nil).
		WillReturnResult(sqlmock.NewResult(9, 1))

	cm := &Comment{PostID: 1, AuthorName: "Reader", AuthorEmail: "reader@example.com",
		Content: "hi", IPAddress: &ip}
	if err := comments.Create(context.Background(), cm); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if cm.ID != 9 {
		t.Errorf("expected backfilled id 9, got %d", cm.ID)
	}
}

func TestCommentApprove_MissingRowIs404(t *testing.T) {
	mock, _, comments, _ := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE comments SET is_approved = TRUE WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := comments.Approve(context.Background(), 5)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404 AppError, got %v", err)
	}
}

func TestCommentListPending_NoLimitFetchesAll(t *testing.T) {
	mock, _, comments, _ := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM comments\s+WHERE is_approved = FALSE ORDER BY created_at DESC, id DESC$`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "post_id", "author_name", "author_email", "content",
			"is_approved", "ip_address", "user_agent", "created_at",
		}).AddRow(1, 1, "Reader", "reader@example.com", "hi", false, nil, nil, time.Now()))

	got, err := comments.ListPending(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListPending error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 pending comment, got %d", len(got))
	}
}

func TestCategoryCountPosts(t *testing.T) {
	mock, _, _, categories := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM blog_posts WHERE category_id = ?`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := categories.CountPosts(context.Background(), 3)
	if err != nil {
		t.Fatalf("CountPosts error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4, got %d", count)
	}
}
