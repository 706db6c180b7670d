// Package messages implements the contact-message inbox: anonymous visitors
// submit messages through the public form and the site owner reads them
// through the admin surface. A message flips to read the first time it is
// fetched individually.
package messages

import (
	"time"
)

// Message is one contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject,omitempty"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	IPAddress *string   `json:"-"` // Never expose submitter IPs.
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest holds a public contact form submission.
type CreateRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Email   string  `json:"email" validate:"required,email,max=100"`
	Subject *string `json:"subject" validate:"omitempty,max=200"`
	Content string  `json:"content" validate:"required"`
}
