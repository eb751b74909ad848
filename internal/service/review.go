package service

import (
	"context"

	"progress_service/internal/domain"
)

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	UpdateReview(ctx context.Context, review *domain.Review) error
	DeleteReviews(ctx context.Context, query domain.ReviewQuery) error
	ListReviews(ctx context.Context, submissionID int64) ([]*domain.Review, error)
}

type reviewService struct {
	reviews ReviewStore
}

func NewReviewService(reviews ReviewStore) ReviewServiceInterface {
	return &reviewService{reviews: reviews}
}

// CreateReview inserts a new review; the store assigns its identity.
// Callers are responsible for not double-submitting a review for the same
// (submission, reviewer) pair.
func (s *reviewService) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if review.SubmissionID < 1 || review.ReviewerID < 1 {
		return nil, ErrInvalidReference
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// UpdateReview overwrites feedback, review content, ready and score on the
// review matching all of (id, submission, reviewer). A missing match updates
// nothing and is not an error.
func (s *reviewService) UpdateReview(ctx context.Context, review *domain.Review) error {
	return s.reviews.Update(ctx, review)
}

// DeleteReviews removes every review matching the query.
func (s *reviewService) DeleteReviews(ctx context.Context, query domain.ReviewQuery) error {
	return s.reviews.DeleteByQuery(ctx, query)
}

func (s *reviewService) ListReviews(ctx context.Context, submissionID int64) ([]*domain.Review, error) {
	return s.reviews.ListBySubmission(ctx, submissionID)
}
