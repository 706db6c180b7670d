package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myblog/backend/internal/apperror"
	"myblog/backend/internal/plugins/blog"
	"myblog/backend/internal/plugins/messages"
)

// Dashboard list caps.
const (
	recentCommentLimit = 10
	recentMessageLimit = 10
	topPostLimit       = 5
	topPostWindow      = 7 * 24 * time.Hour
)

// AdminService defines the business logic contract for the admin surface.
type AdminService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	PendingComments(ctx context.Context) ([]blog.Comment, error)
	ApproveComment(ctx context.Context, id int64) error
	DeleteComment(ctx context.Context, id int64) error
}

// adminService implements AdminService over the other plugins' repositories.
type adminService struct {
	posts    blog.PostRepository
	comments blog.CommentRepository
	messages messages.MessageRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(posts blog.PostRepository, comments blog.CommentRepository, msgs messages.MessageRepository) AdminService {
	return &adminService{
		posts:    posts,
		comments: comments,
		messages: msgs,
	}
}

// Dashboard assembles the admin landing payload.
func (s *adminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	totalPosts, err := s.posts.Count(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("counting posts: %w", err))
	}
	totalComments, err := s.comments.Count(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("counting comments: %w", err))
	}
	totalMessages, err := s.messages.Count(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("counting messages: %w", err))
	}
	totalViews, err := s.posts.SumViews(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("summing views: %w", err))
	}

	pending, err := s.comments.ListPending(ctx, recentCommentLimit)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing pending comments: %w", err))
	}
	unread, err := s.messages.ListUnread(ctx, recentMessageLimit)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing unread messages: %w", err))
	}
	topPosts, err := s.posts.TopViewedSince(ctx, time.Now().Add(-topPostWindow), topPostLimit)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing top posts: %w", err))
	}

	if pending == nil {
		pending = make([]blog.Comment, 0)
	}
	if unread == nil {
		unread = make([]messages.Message, 0)
	}
	if topPosts == nil {
		topPosts = make([]blog.Post, 0)
	}

	return &Dashboard{
		Stats: Stats{
			TotalPosts:    totalPosts,
			TotalComments: totalComments,
			TotalMessages: totalMessages,
			TotalViews:    totalViews,
		},
		RecentComments: pending,
		RecentMessages: unread,
		RecentPosts:    topPosts,
	}, nil
}

// PendingComments returns the full moderation queue, newest first.
func (s *adminService) PendingComments(ctx context.Context) ([]blog.Comment, error) {
	pending, err := s.comments.ListPending(ctx, 0)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing pending comments: %w", err))
	}
	if pending == nil {
		pending = make([]blog.Comment, 0)
	}
	return pending, nil
}

// ApproveComment makes a comment publicly visible.
func (s *adminService) ApproveComment(ctx context.Context, id int64) error {
	if err := s.comments.Approve(ctx, id); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("approving comment: %w", err))
	}
	return nil
}

// DeleteComment removes a comment, approved or not.
func (s *adminService) DeleteComment(ctx context.Context, id int64) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("deleting comment: %w", err))
	}
	return nil
}
