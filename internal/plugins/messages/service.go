package messages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"myblog/backend/internal/apperror"
)

// MessageService defines the business logic contract for the inbox.
type MessageService interface {
	Submit(ctx context.Context, req CreateRequest, ip string) (*Message, error)
	List(ctx context.Context) ([]Message, error)
	Get(ctx context.Context, id int64) (*Message, error)
	Delete(ctx context.Context, id int64) error
}

// messageService implements MessageService.
type messageService struct {
	repo MessageRepository
}

// NewMessageService creates a new message service.
func NewMessageService(repo MessageRepository) MessageService {
	return &messageService{repo: repo}
}

// Submit records a public contact form submission.
func (s *messageService) Submit(ctx context.Context, req CreateRequest, ip string) (*Message, error) {
	message := &Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Content: req.Content,
	}
	if ip != "" {
		message.IPAddress = &ip
	}

	if err := s.repo.Create(ctx, message); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating message: %w", err))
	}

	slog.Info("contact message received", slog.Int64("message_id", message.ID))
	return message, nil
}

// List returns every message, newest first.
func (s *messageService) List(ctx context.Context) ([]Message, error) {
	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing messages: %w", err))
	}
	if msgs == nil {
		msgs = make([]Message, 0)
	}
	return msgs, nil
}

// Get returns one message and marks it read. The returned record reflects
// the new read state even though the lookup ran first.
func (s *messageService) Get(ctx context.Context, id int64) (*Message, error) {
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding message: %w", err))
	}

	if !message.IsRead {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("marking message read: %w", err))
		}
		message.IsRead = true
	}

	return message, nil
}

// Delete removes a message.
func (s *messageService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("deleting message: %w", err))
	}
	return nil
}
