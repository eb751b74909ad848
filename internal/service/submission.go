package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"progress_service/internal/domain"
	"progress_service/internal/repository"
	"progress_service/pkg/logger"
)

const (
	TopicSubmissionReceived  = "submission.received"
	TopicSubmissionsApproved = "submissions.approved"
	TopicReviewReminder      = "review.reminder"
)

type SubmissionServiceInterface interface {
	CreateSubmission(ctx context.Context, submission *domain.Submission) error
	GetLatestSubmission(ctx context.Context, query domain.SubmissionQuery) (*domain.Submission, error)
	GetLastSubmissions(ctx context.Context, courseID int64, query domain.SubmissionQuery) ([]*domain.Submission, error)
	ListSubmissions(ctx context.Context, query domain.SubmissionQuery) ([]*domain.Submission, error)
	ApproveByThreshold(ctx context.Context, courseID, assignmentID int64, minScore int, status domain.SubmissionStatus, released bool) error
}

type submissionService struct {
	submissions SubmissionStore
	reviews     ReviewStore
	assignments AssignmentStore
	courses     CourseStore
	users       UserStore
	groups      GroupStore
	producer    EventProducer
	logger      *logger.Logger
}

func NewSubmissionService(
	submissions SubmissionStore,
	reviews ReviewStore,
	assignments AssignmentStore,
	courses CourseStore,
	users UserStore,
	groups GroupStore,
	producer EventProducer,
	log *logger.Logger,
) SubmissionServiceInterface {
	return &submissionService{
		submissions: submissions,
		reviews:     reviews,
		assignments: assignments,
		courses:     courses,
		users:       users,
		groups:      groups,
		producer:    producer,
		logger:      log,
	}
}

// CreateSubmission reconciles an incoming submission onto the canonical row
// for its (assignment, owner) pair. A matching row is merged in place, a
// missing one is created, and the resulting row ID is written back to the
// submission. Exactly one of UserID/GroupID must be set, and the assignment
// and owner must both exist.
func (s *submissionService) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	if submission.AssignmentID < 1 {
		return ErrInvalidReference
	}

	var ownerCount int64
	var err error
	switch {
	case submission.UserID > 0 && submission.GroupID > 0:
		return ErrInvalidReference
	case submission.UserID > 0:
		ownerCount, err = s.users.Count(ctx, submission.UserID)
	case submission.GroupID > 0:
		ownerCount, err = s.groups.Count(ctx, submission.GroupID)
	default:
		return ErrInvalidReference
	}
	if err != nil {
		return err
	}

	assignmentCount, err := s.assignments.Count(ctx, submission.AssignmentID)
	if err != nil {
		return err
	}

	if ownerCount+assignmentCount != 2 {
		return ErrNotFound
	}

	if err := s.submissions.Upsert(ctx, submission); err != nil {
		return err
	}

	s.publish(ctx, TopicSubmissionReceived, map[string]interface{}{
		"submission_id": submission.ID,
		"assignment_id": submission.AssignmentID,
		"user_id":       submission.UserID,
		"group_id":      submission.GroupID,
		"score":         submission.Score,
	})

	return nil
}

// GetLatestSubmission returns the most recent submission matching the query
// with its reviews attached.
func (s *submissionService) GetLatestSubmission(ctx context.Context, query domain.SubmissionQuery) (*domain.Submission, error) {
	submission, err := s.submissions.FindLast(ctx, query)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reviews, err := s.reviews.ListBySubmission(ctx, submission.ID)
	if err != nil {
		return nil, err
	}
	submission.Reviews = reviews

	return submission, nil
}

// GetLastSubmissions returns the owner's latest submission for each
// assignment of the course. The course must exist; assignments the owner
// never submitted for are skipped, any other lookup failure aborts.
func (s *submissionService) GetLastSubmissions(ctx context.Context, courseID int64, query domain.SubmissionQuery) ([]*domain.Submission, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var latest []*domain.Submission
	for _, assignment := range assignments {
		query.AssignmentID = assignment.ID
		submission, err := s.GetLatestSubmission(ctx, query)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		latest = append(latest, submission)
	}

	return latest, nil
}

func (s *submissionService) ListSubmissions(ctx context.Context, query domain.SubmissionQuery) ([]*domain.Submission, error) {
	return s.submissions.ListByQuery(ctx, query)
}

// ApproveByThreshold sets status and released on every submission for the
// assignment with score at or above minScore. Re-running with the same
// arguments yields the same end state.
func (s *submissionService) ApproveByThreshold(ctx context.Context, courseID, assignmentID int64, minScore int, status domain.SubmissionStatus, released bool) error {
	if !status.IsValid() {
		return ErrInvalidReference
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if assignment.CourseID != courseID {
		return ErrNotFound
	}

	if err := s.submissions.UpdateStatusByThreshold(ctx, assignmentID, minScore, status, released); err != nil {
		return err
	}

	s.publish(ctx, TopicSubmissionsApproved, map[string]interface{}{
		"course_id":     courseID,
		"assignment_id": assignmentID,
		"min_score":     minScore,
		"status":        status,
		"released":      released,
	})

	return nil
}

// publish emits a domain event. Event delivery is best effort and never
// fails the triggering operation.
func (s *submissionService) publish(ctx context.Context, topic string, message interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Send(ctx, topic, message); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}
