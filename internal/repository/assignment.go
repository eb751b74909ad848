package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"progress_service/internal/domain"
)

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListByCourse returns the course assignments in their configured order.
func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, course_id, name, order_index, deadline
		FROM assignments
		WHERE course_id = $1
		ORDER BY order_index, id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var assignments []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.CourseID, &a.Name, &a.Order, &a.Deadline); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return assignments, nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	var a domain.Assignment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, course_id, name, order_index, deadline
		FROM assignments
		WHERE id = $1
	`, id).Scan(&a.ID, &a.CourseID, &a.Name, &a.Order, &a.Deadline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &a, nil
}

// Count reports how many assignments exist with the given id (0 or 1).
func (r *AssignmentRepository) Count(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assignments WHERE id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}
