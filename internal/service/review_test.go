package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"progress_service/internal/domain"
	"progress_service/internal/service"
)

func TestCreateReview(t *testing.T) {
	t.Run("missing identity fields", func(t *testing.T) {
		reviews := &MockReviewStore{}
		svc := service.NewReviewService(reviews)

		_, err := svc.CreateReview(context.Background(), &domain.Review{SubmissionID: 5})

		assert.ErrorIs(t, err, service.ErrInvalidReference)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store assigns identity", func(t *testing.T) {
		reviews := &MockReviewStore{}
		reviews.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Review).ID = 7
		}).Return(nil)
		svc := service.NewReviewService(reviews)

		created, err := svc.CreateReview(context.Background(), &domain.Review{
			SubmissionID: 5,
			ReviewerID:   4,
			Feedback:     "looks good",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), created.ID)
	})
}

func TestUpdateReviewMissingRowIsNoOp(t *testing.T) {
	reviews := &MockReviewStore{}
	reviews.On("Update", mock.Anything, mock.Anything).Return(nil)
	svc := service.NewReviewService(reviews)

	err := svc.UpdateReview(context.Background(), &domain.Review{ID: 999, SubmissionID: 5, ReviewerID: 4})

	assert.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestDeleteReviewsBySubmission(t *testing.T) {
	reviews := &MockReviewStore{}
	query := domain.ReviewQuery{SubmissionID: 5}
	reviews.On("DeleteByQuery", mock.Anything, query).Return(nil)
	svc := service.NewReviewService(reviews)

	err := svc.DeleteReviews(context.Background(), query)

	require.NoError(t, err)
	reviews.AssertExpectations(t)
}
