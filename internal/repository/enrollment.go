package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"progress_service/internal/domain"
)

type EnrollmentRepository struct {
	db *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByUser returns the user's enrollments with their courses preloaded,
// optionally restricted to the given statuses.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64, statuses ...domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	q := `
		SELECT e.id, e.course_id, e.user_id, e.status, c.id, c.code, c.name
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1`
	args := []interface{}{userID}
	q, args = appendStatusFilter(q, args, 2, "e.", statuses)
	q += " ORDER BY e.id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var enrollments []*domain.Enrollment
	for rows.Next() {
		var e domain.Enrollment
		var c domain.Course
		if err := rows.Scan(&e.ID, &e.CourseID, &e.UserID, &e.Status, &c.ID, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		e.Course = &c
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return enrollments, nil
}

// ListByCourseWithUsers returns the course enrollments with their users
// preloaded. When excludeGroupMembers is set, users who belong to a group of
// the course are left out.
func (r *EnrollmentRepository) ListByCourseWithUsers(ctx context.Context, courseID int64, excludeGroupMembers bool, statuses ...domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	q := `
		SELECT e.id, e.course_id, e.user_id, e.status, u.id, u.login, u.name
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		WHERE e.course_id = $1`
	args := []interface{}{courseID}
	argsCount := 2

	if excludeGroupMembers {
		q += fmt.Sprintf(`
		AND NOT EXISTS (
			SELECT 1 FROM group_members gm
			JOIN groups g ON g.id = gm.group_id
			WHERE gm.user_id = e.user_id AND g.course_id = $%d
		)`, argsCount)
		args = append(args, courseID)
		argsCount++
	}

	q, args = appendStatusFilter(q, args, argsCount, "e.", statuses)
	q += " ORDER BY e.id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list course enrollments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var enrollments []*domain.Enrollment
	for rows.Next() {
		var e domain.Enrollment
		var u domain.User
		if err := rows.Scan(&e.ID, &e.CourseID, &e.UserID, &e.Status, &u.ID, &u.Login, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		e.User = &u
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return enrollments, nil
}

func appendStatusFilter(q string, args []interface{}, argsCount int, prefix string, statuses []domain.EnrollmentStatus) (string, []interface{}) {
	if len(statuses) == 0 {
		return q, args
	}
	placeholders := make([]string, len(statuses))
	for i := range statuses {
		placeholders[i] = fmt.Sprintf("$%d", argsCount)
		args = append(args, statuses[i])
		argsCount++
	}
	q += fmt.Sprintf(" AND %sstatus IN (%s)", prefix, strings.Join(placeholders, ", "))
	return q, args
}
