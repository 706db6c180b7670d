package resume

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"myblog/backend/internal/apperror"
)

// SectionRepository defines the data access contract for resume sections.
type SectionRepository interface {
	List(ctx context.Context, filter SectionFilter) ([]Section, error)
	FindByID(ctx context.Context, id int64) (*Section, error)
	Create(ctx context.Context, section *Section) error
	Update(ctx context.Context, section *Section) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

const sectionColumns = `id, section_type, title, content, order_index, is_visible,
	created_at, updated_at`

// sectionRepository implements SectionRepository with MariaDB queries.
type sectionRepository struct {
	db *sql.DB
}

// NewSectionRepository creates a new resume section repository.
func NewSectionRepository(db *sql.DB) SectionRepository {
	return &sectionRepository{db: db}
}

// List returns sections matching the filter, ordered by order_index with the
// id as a tie-breaker.
func (r *sectionRepository) List(ctx context.Context, filter SectionFilter) ([]Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM resume_sections`
	var conds []string
	var args []any

	if filter.VisibleOnly {
		conds = append(conds, "is_visible = TRUE")
	}
	if filter.Type != nil {
		conds = append(conds, "section_type = ?")
		args = append(args, string(*filter.Type))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += ` ORDER BY order_index, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing resume sections: %w", err)
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		var s Section
		if err := rows.Scan(
			&s.ID, &s.SectionType, &s.Title, &s.Content,
			&s.OrderIndex, &s.IsVisible, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning section row: %w", err)
		}
		sections = append(sections, s)
	}

	return sections, rows.Err()
}

// FindByID retrieves a section by its numeric ID.
// Returns apperror.NotFound if no section exists with this ID.
func (r *sectionRepository) FindByID(ctx context.Context, id int64) (*Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM resume_sections WHERE id = ?`

	s := &Section{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.SectionType, &s.Title, &s.Content,
		&s.OrderIndex, &s.IsVisible, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("resume section not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying section by id: %w", err)
	}

	return s, nil
}

// Create inserts a new section row and backfills the generated ID.
func (r *sectionRepository) Create(ctx context.Context, section *Section) error {
	query := `INSERT INTO resume_sections (section_type, title, content, order_index, is_visible)
	          VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		string(section.SectionType), section.Title, section.Content,
		section.OrderIndex, section.IsVisible,
	)
	if err != nil {
		return fmt.Errorf("inserting section: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting section id: %w", err)
	}
	section.ID = id
	return nil
}

// Update writes all mutable columns of a section. The type stays fixed.
func (r *sectionRepository) Update(ctx context.Context, section *Section) error {
	query := `UPDATE resume_sections SET title = ?, content = ?, order_index = ?, is_visible = ?
	          WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		section.Title, section.Content, section.OrderIndex, section.IsVisible, section.ID,
	)
	if err != nil {
		return fmt.Errorf("updating section: %w", err)
	}
	return nil
}

// Delete removes a section.
func (r *sectionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resume_sections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("resume section not found")
	}
	return nil
}

// Count returns the total number of sections, hidden included.
func (r *sectionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resume_sections`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting sections: %w", err)
	}
	return count, nil
}
