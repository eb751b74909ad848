package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"progress_service/internal/domain"
)

type GroupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetByID returns the group with its member users preloaded.
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	var group domain.Group
	err := r.db.QueryRowContext(ctx, `
		SELECT id, course_id, name
		FROM groups
		WHERE id = $1
	`, id).Scan(&group.ID, &group.CourseID, &group.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.login, u.name
		FROM users u
		JOIN group_members gm ON gm.user_id = u.id
		WHERE gm.group_id = $1
		ORDER BY u.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Login, &user.Name); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		group.Users = append(group.Users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &group, nil
}

// Count reports how many groups exist with the given id (0 or 1).
func (r *GroupRepository) Count(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups WHERE id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return count, nil
}
