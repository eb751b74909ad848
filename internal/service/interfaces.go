package service

import (
	"context"

	"progress_service/internal/domain"
)

type SubmissionStore interface {
	Upsert(ctx context.Context, submission *domain.Submission) error
	FindLast(ctx context.Context, query domain.SubmissionQuery) (*domain.Submission, error)
	ListByQuery(ctx context.Context, query domain.SubmissionQuery) ([]*domain.Submission, error)
	ListForCourseOwner(ctx context.Context, courseID int64, query domain.SubmissionQuery) ([]*domain.Submission, error)
	UpdateStatusByThreshold(ctx context.Context, assignmentID int64, minScore int, status domain.SubmissionStatus, released bool) error
}

type ReviewStore interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	DeleteByQuery(ctx context.Context, query domain.ReviewQuery) error
	ListBySubmission(ctx context.Context, submissionID int64) ([]*domain.Review, error)
}

type AssignmentStore interface {
	ListByCourse(ctx context.Context, courseID int64) ([]*domain.Assignment, error)
	GetByID(ctx context.Context, id int64) (*domain.Assignment, error)
	Count(ctx context.Context, id int64) (int64, error)
}

type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Count(ctx context.Context, id int64) (int64, error)
}

type GroupStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	Count(ctx context.Context, id int64) (int64, error)
}

type EnrollmentStore interface {
	ListByUser(ctx context.Context, userID int64, statuses ...domain.EnrollmentStatus) ([]*domain.Enrollment, error)
	ListByCourseWithUsers(ctx context.Context, courseID int64, excludeGroupMembers bool, statuses ...domain.EnrollmentStatus) ([]*domain.Enrollment, error)
}

type EventProducer interface {
	Send(ctx context.Context, topic string, message interface{}) error
}
