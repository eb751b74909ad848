package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"progress_service/internal/domain"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (submission_id, reviewer_id, feedback, review, ready, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		review.SubmissionID,
		review.ReviewerID,
		review.Feedback,
		review.Review,
		review.Ready,
		review.Score,
		time.Now(),
		time.Now(),
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update overwrites feedback, review, ready and score on the row matching
// all of (id, submission_id, reviewer_id). A missing match updates nothing
// and is not an error; identity fields are never modified.
func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reviews
		SET feedback = $1, review = $2, ready = $3, score = $4, updated_at = $5
		WHERE id = $6 AND submission_id = $7 AND reviewer_id = $8
	`,
		review.Feedback,
		review.Review,
		review.Ready,
		review.Score,
		time.Now(),
		review.ID,
		review.SubmissionID,
		review.ReviewerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

// DeleteByQuery removes every review matching the query.
func (r *ReviewRepository) DeleteByQuery(ctx context.Context, query domain.ReviewQuery) error {
	q := `DELETE FROM reviews WHERE 1=1`
	var args []interface{}
	argsCount := 1

	if query.ID != 0 {
		q += fmt.Sprintf(" AND id = $%d", argsCount)
		args = append(args, query.ID)
		argsCount++
	}
	if query.SubmissionID != 0 {
		q += fmt.Sprintf(" AND submission_id = $%d", argsCount)
		args = append(args, query.SubmissionID)
		argsCount++
	}
	if query.ReviewerID != 0 {
		q += fmt.Sprintf(" AND reviewer_id = $%d", argsCount)
		args = append(args, query.ReviewerID)
	}

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}

func (r *ReviewRepository) ListBySubmission(ctx context.Context, submissionID int64) ([]*domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, submission_id, reviewer_id, feedback, review, ready, score, created_at, updated_at
		FROM reviews
		WHERE submission_id = $1
		ORDER BY id
	`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reviews []*domain.Review
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(
			&review.ID,
			&review.SubmissionID,
			&review.ReviewerID,
			&review.Feedback,
			&review.Review,
			&review.Ready,
			&review.Score,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}
