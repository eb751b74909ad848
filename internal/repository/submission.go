package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"progress_service/internal/domain"
)

var ErrNotFound = errors.New("not found")

const submissionColumns = `id, assignment_id, user_id, group_id, score, status, released, test_result, created_at, updated_at`

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Upsert merges the submission into the most recent row matching the
// (assignment, user, group) triple, or inserts a new row when there is no
// match. The select-then-write runs in one transaction with the matched row
// locked, so concurrent upserts for the same owner and assignment cannot
// create duplicates. The merged row's ID is written back to the submission.
func (r *SubmissionRepository) Upsert(ctx context.Context, submission *domain.Submission) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM submissions
		WHERE assignment_id = $1 AND user_id = $2 AND group_id = $3
		ORDER BY id DESC
		LIMIT 1
		FOR UPDATE
	`, submission.AssignmentID, submission.UserID, submission.GroupID).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = tx.QueryRowContext(ctx, `
			INSERT INTO submissions
				(assignment_id, user_id, group_id, score, status, released, test_result, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`,
			submission.AssignmentID,
			submission.UserID,
			submission.GroupID,
			submission.Score,
			submission.Status,
			submission.Released,
			jsonParam(submission.TestResult),
			time.Now(),
			time.Now(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert submission: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to find submission to merge: %w", err)
	default:
		// Score is written unconditionally, so a zero score overwrites a
		// previous grade instead of being skipped.
		_, err = tx.ExecContext(ctx, `
			UPDATE submissions
			SET score = $1, status = $2, released = $3, test_result = $4, updated_at = $5
			WHERE id = $6
		`,
			submission.Score,
			submission.Status,
			submission.Released,
			jsonParam(submission.TestResult),
			time.Now(),
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to merge submission: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}

	submission.ID = id
	return nil
}

// FindLast returns the most recently created submission matching the query.
func (r *SubmissionRepository) FindLast(ctx context.Context, query domain.SubmissionQuery) (*domain.Submission, error) {
	q := `SELECT ` + submissionColumns + ` FROM submissions WHERE 1=1`
	q, args := appendSubmissionFilter(q, nil, 1, "", query)
	q += " ORDER BY id DESC LIMIT 1"

	var submission domain.Submission
	var testResult []byte
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&submission.ID,
		&submission.AssignmentID,
		&submission.UserID,
		&submission.GroupID,
		&submission.Score,
		&submission.Status,
		&submission.Released,
		&testResult,
		&submission.CreatedAt,
		&submission.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	submission.TestResult = testResult

	return &submission, nil
}

// ListByQuery returns all submissions matching the query in store order.
func (r *SubmissionRepository) ListByQuery(ctx context.Context, query domain.SubmissionQuery) ([]*domain.Submission, error) {
	q := `SELECT ` + submissionColumns + ` FROM submissions WHERE 1=1`
	q, args := appendSubmissionFilter(q, nil, 1, "", query)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSubmissions(rows)
}

// ListForCourseOwner returns the owner's submissions across all assignments
// of the course, newest first within each assignment so the first row seen
// for an assignment is its latest submission.
func (r *SubmissionRepository) ListForCourseOwner(ctx context.Context, courseID int64, query domain.SubmissionQuery) ([]*domain.Submission, error) {
	q := `
		SELECT s.id, s.assignment_id, s.user_id, s.group_id, s.score, s.status,
		       s.released, s.test_result, s.created_at, s.updated_at
		FROM submissions s
		JOIN assignments a ON a.id = s.assignment_id
		WHERE a.course_id = $1`
	args := []interface{}{courseID}
	q, args = appendSubmissionFilter(q, args, 2, "s.", query)
	q += " ORDER BY s.assignment_id, s.id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list course submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSubmissions(rows)
}

// UpdateStatusByThreshold sets status and released on every submission for
// the assignment whose score is at or above minScore. Score and test results
// are left untouched.
func (r *SubmissionRepository) UpdateStatusByThreshold(ctx context.Context, assignmentID int64, minScore int, status domain.SubmissionStatus, released bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE submissions
		SET status = $1, released = $2, updated_at = $3
		WHERE assignment_id = $4 AND score >= $5
	`, status, released, time.Now(), assignmentID, minScore)
	if err != nil {
		return fmt.Errorf("failed to update submissions by threshold: %w", err)
	}
	return nil
}

// ListAwaitingReview returns graded submissions that have neither been
// approved nor released yet.
func (r *SubmissionRepository) ListAwaitingReview(ctx context.Context) ([]*domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE status = $1 AND released = false AND score > 0
		ORDER BY id
	`, domain.SubmissionStatusNone)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions awaiting review: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSubmissions(rows)
}

// jsonParam adapts a raw JSON value for a jsonb column; empty means NULL.
// lib/pq would send a plain []byte as bytea.
func jsonParam(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}

func appendSubmissionFilter(q string, args []interface{}, argsCount int, prefix string, query domain.SubmissionQuery) (string, []interface{}) {
	if query.AssignmentID != 0 {
		q += fmt.Sprintf(" AND %sassignment_id = $%d", prefix, argsCount)
		args = append(args, query.AssignmentID)
		argsCount++
	}
	if query.UserID != 0 {
		q += fmt.Sprintf(" AND %suser_id = $%d", prefix, argsCount)
		args = append(args, query.UserID)
		argsCount++
	}
	if query.GroupID != 0 {
		q += fmt.Sprintf(" AND %sgroup_id = $%d", prefix, argsCount)
		args = append(args, query.GroupID)
	}
	return q, args
}

func scanSubmissions(rows *sql.Rows) ([]*domain.Submission, error) {
	var submissions []*domain.Submission
	for rows.Next() {
		var s domain.Submission
		var testResult []byte
		err := rows.Scan(
			&s.ID,
			&s.AssignmentID,
			&s.UserID,
			&s.GroupID,
			&s.Score,
			&s.Status,
			&s.Released,
			&testResult,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		s.TestResult = testResult
		submissions = append(submissions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return submissions, nil
}
