package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"progress_service/internal/domain"
)

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	var course domain.Course
	err := r.db.QueryRowContext(ctx, `
		SELECT id, code, name
		FROM courses
		WHERE id = $1
	`, id).Scan(&course.ID, &course.Code, &course.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}
