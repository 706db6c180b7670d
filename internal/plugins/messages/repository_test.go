package messages

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"myblog/backend/internal/apperror"
)

func newMockDB(t *testing.T) (sqlmock.Sqlmock, MessageRepository) {
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
	return mock, NewMessageRepository(db)
}

func TestMarkRead_ConditionalOnUnread(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE messages SET is_read = TRUE WHERE id = ? AND is_read = FALSE`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkRead(context.Background(), 3); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
}

func TestMarkRead_AlreadyReadIsNoError(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE messages SET is_read = TRUE WHERE id = ? AND is_read = FALSE`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.MarkRead(context.Background(), 3); err != nil {
		t.Fatalf("MarkRead error on no-op: %v", err)
	}
}

func TestList_NewestFirstOrdering(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM messages ORDER BY created_at DESC, id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "subject", "content", "is_read", "ip_address", "created_at",
		}).
			AddRow(2, "B", "b@example.com", nil, "later", false, nil, time.Now()).
			AddRow(1, "A", "a@example.com", nil, "earlier", true, nil, time.Now().Add(-time.Hour)))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestDelete_MissingRowIs404(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM messages WHERE id = ?`)).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 9)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404 AppError, got %v", err)
	}
}
