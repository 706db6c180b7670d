// Package admin implements the management surface: the dashboard, comment
// moderation, and user administration. It owns no tables of its own; it
// composes the other plugins' repositories and services.
package admin

import (
	"myblog/backend/internal/plugins/blog"
	"myblog/backend/internal/plugins/messages"
)

// Stats are the dashboard headline numbers.
type Stats struct {
	TotalPosts    int   `json:"total_posts"`
	TotalComments int   `json:"total_comments"`
	TotalMessages int   `json:"total_messages"`
	TotalViews    int64 `json:"total_views"`
}

// Dashboard is the admin landing payload: totals plus the items most likely
// to need attention (pending comments, unread messages) and the posts
// pulling the most views this week.
type Dashboard struct {
	Stats          Stats              `json:"stats"`
	RecentComments []blog.Comment     `json:"recent_comments"`
	RecentMessages []messages.Message `json:"recent_messages"`
	RecentPosts    []blog.Post        `json:"recent_posts"`
}
