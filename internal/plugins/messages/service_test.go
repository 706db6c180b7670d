package messages

import (
	"context"
	"errors"
	"testing"
	"time"

	"myblog/backend/internal/apperror"
)

// mockMessageRepo implements MessageRepository for testing.
type mockMessageRepo struct {
	createFn   func(ctx context.Context, message *Message) error
	listFn     func(ctx context.Context) ([]Message, error)
	findByIDFn func(ctx context.Context, id int64) (*Message, error)
	markReadFn func(ctx context.Context, id int64) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockMessageRepo) Create(ctx context.Context, message *Message) error {
	if m.createFn != nil {
		return m.createFn(ctx, message)
	}
	message.ID = 1
	return nil
}

func (m *mockMessageRepo) List(ctx context.Context) ([]Message, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id int64) (*Message, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("message not found")
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id int64) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id)
	}
	return nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockMessageRepo) Count(ctx context.Context) (int, error) { return 0, nil }

func (m *mockMessageRepo) ListUnread(ctx context.Context, limit int) ([]Message, error) {
	return nil, nil
}

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

func TestSubmit_CapturesClientIP(t *testing.T) {
	var created *Message
	repo := &mockMessageRepo{
		createFn: func(ctx context.Context, message *Message) error {
			message.ID = 1
			created = message
			return nil
		},
	}
	svc := NewMessageService(repo)

	_, err := svc.Submit(context.Background(), CreateRequest{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Content: "Hello",
	}, "203.0.113.9")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if created.IPAddress == nil || *created.IPAddress != "203.0.113.9" {
		t.Errorf("expected IP captured, got %v", created.IPAddress)
	}
	if created.IsRead {
		t.Error("new messages must start unread")
	}
}

func TestSubmit_EmptyIPStaysNull(t *testing.T) {
	var created *Message
	repo := &mockMessageRepo{
		createFn: func(ctx context.Context, message *Message) error {
			created = message
			return nil
		},
	}
	svc := NewMessageService(repo)

	_, err := svc.Submit(context.Background(), CreateRequest{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Content: "Hello",
	}, "")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if created.IPAddress != nil {
		t.Errorf("expected nil IP, got %v", *created.IPAddress)
	}
}

func TestGet_MarksUnreadMessageRead(t *testing.T) {
	marked := false
	repo := &mockMessageRepo{
		findByIDFn: func(ctx context.Context, id int64) (*Message, error) {
			return &Message{ID: id, Name: "Visitor", Content: "hi", CreatedAt: time.Now()}, nil
		},
		markReadFn: func(ctx context.Context, id int64) error {
			marked = true
			return nil
		},
	}
	svc := NewMessageService(repo)

	got, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !marked {
		t.Error("expected unread message to be marked read")
	}
	if !got.IsRead {
		t.Error("expected returned record to reflect the new read state")
	}
}

func TestGet_ReadMessageSkipsWrite(t *testing.T) {
	repo := &mockMessageRepo{
		findByIDFn: func(ctx context.Context, id int64) (*Message, error) {
			return &Message{ID: id, IsRead: true}, nil
		},
		markReadFn: func(ctx context.Context, id int64) error {
			t.Error("mark-read must not run for an already-read message")
			return nil
		},
	}
	svc := NewMessageService(repo)

	if _, err := svc.Get(context.Background(), 1); err != nil {
		t.Fatalf("Get error: %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{})
	_, err := svc.Get(context.Background(), 42)
	assertAppError(t, err, 404)
}

func TestList_NilBecomesEmpty(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{})
	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockMessageRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			return apperror.NewNotFound("message not found")
		},
	}
	svc := NewMessageService(repo)
	assertAppError(t, svc.Delete(context.Background(), 42), 404)
}
