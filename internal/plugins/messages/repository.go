package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"myblog/backend/internal/apperror"
)

// MessageRepository defines the data access contract for contact messages.
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	List(ctx context.Context) ([]Message, error)
	FindByID(ctx context.Context, id int64) (*Message, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	ListUnread(ctx context.Context, limit int) ([]Message, error)
}

const messageColumns = `id, name, email, subject, content, is_read, ip_address, created_at`

// messageRepository implements MessageRepository with MariaDB queries.
type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a new (unread) message row and backfills the generated ID.
func (r *messageRepository) Create(ctx context.Context, message *Message) error {
	query := `INSERT INTO messages (name, email, subject, content, ip_address)
	          VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		message.Name, message.Email, message.Subject, message.Content, message.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting message id: %w", err)
	}
	message.ID = id
	return nil
}

// List returns every message, newest first.
func (r *messageRepository) List(ctx context.Context) ([]Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at DESC, id DESC`
	return r.queryMessages(ctx, query)
}

// ListUnread returns the newest unread messages, capped at limit.
func (r *messageRepository) ListUnread(ctx context.Context, limit int) ([]Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
	          WHERE is_read = FALSE ORDER BY created_at DESC, id DESC LIMIT ?`
	return r.queryMessages(ctx, query, limit)
}

func (r *messageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Subject, &m.Content,
			&m.IsRead, &m.IPAddress, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		msgs = append(msgs, m)
	}

	return msgs, rows.Err()
}

// FindByID retrieves a message by its numeric ID.
// Returns apperror.NotFound if no message exists with this ID.
func (r *messageRepository) FindByID(ctx context.Context, id int64) (*Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = ?`

	m := &Message{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Subject, &m.Content,
		&m.IsRead, &m.IPAddress, &m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("message not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying message by id: %w", err)
	}

	return m, nil
}

// MarkRead flips a message to read. The WHERE clause skips already-read
// rows so the write is a no-op on repeat fetches.
func (r *messageRepository) MarkRead(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET is_read = TRUE WHERE id = ? AND is_read = FALSE`, id)
	if err != nil {
		return fmt.Errorf("marking message read: %w", err)
	}
	return nil
}

// Delete removes a message.
func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("message not found")
	}
	return nil
}

// Count returns the total number of messages, read included.
func (r *messageRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return count, nil
}
