package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"progress_service/internal/domain"
)

type MockSubmissionStore struct {
	mock.Mock
}

func (m *MockSubmissionStore) Upsert(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionStore) FindLast(ctx context.Context, query domain.SubmissionQuery) (*domain.Submission, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionStore) ListByQuery(ctx context.Context, query domain.SubmissionQuery) ([]*domain.Submission, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Submission), args.Error(1)
}

func (m *MockSubmissionStore) ListForCourseOwner(ctx context.Context, courseID int64, query domain.SubmissionQuery) ([]*domain.Submission, error) {
	args := m.Called(ctx, courseID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Submission), args.Error(1)
}

func (m *MockSubmissionStore) UpdateStatusByThreshold(ctx context.Context, assignmentID int64, minScore int, status domain.SubmissionStatus, released bool) error {
	args := m.Called(ctx, assignmentID, minScore, status, released)
	return args.Error(0)
}

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewStore) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewStore) DeleteByQuery(ctx context.Context, query domain.ReviewQuery) error {
	args := m.Called(ctx, query)
	return args.Error(0)
}

func (m *MockReviewStore) ListBySubmission(ctx context.Context, submissionID int64) ([]*domain.Review, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

type MockAssignmentStore struct {
	mock.Mock
}

func (m *MockAssignmentStore) ListByCourse(ctx context.Context, courseID int64) ([]*domain.Assignment, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentStore) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentStore) Count(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) Count(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockGroupStore struct {
	mock.Mock
}

func (m *MockGroupStore) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupStore) Count(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockEnrollmentStore struct {
	mock.Mock
}

func (m *MockEnrollmentStore) ListByUser(ctx context.Context, userID int64, statuses ...domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	args := m.Called(ctx, userID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentStore) ListByCourseWithUsers(ctx context.Context, courseID int64, excludeGroupMembers bool, statuses ...domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	args := m.Called(ctx, courseID, excludeGroupMembers, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) Send(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}
