package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"progress_service/internal/domain"
	"progress_service/internal/server/httpapi"
	"progress_service/internal/service"
	"progress_service/pkg/logger"
)

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionService) GetLatestSubmission(ctx context.Context, query domain.SubmissionQuery) (*domain.Submission, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionService) GetLastSubmissions(ctx context.Context, courseID int64, query domain.SubmissionQuery) ([]*domain.Submission, error) {
	args := m.Called(ctx, courseID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Submission), args.Error(1)
}

func (m *MockSubmissionService) ListSubmissions(ctx context.Context, query domain.SubmissionQuery) ([]*domain.Submission, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Submission), args.Error(1)
}

func (m *MockSubmissionService) ApproveByThreshold(ctx context.Context, courseID, assignmentID int64, minScore int, status domain.SubmissionStatus, released bool) error {
	args := m.Called(ctx, courseID, assignmentID, minScore, status, released)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewService) DeleteReviews(ctx context.Context, query domain.ReviewQuery) error {
	args := m.Called(ctx, query)
	return args.Error(0)
}

func (m *MockReviewService) ListReviews(ctx context.Context, submissionID int64) ([]*domain.Review, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) BuildStudentLink(ctx context.Context, user *domain.User, course *domain.Course, assignments []*domain.Assignment) (*domain.AssignmentLink, error) {
	args := m.Called(ctx, user, course, assignments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssignmentLink), args.Error(1)
}

func (m *MockLinkService) BuildGroupLink(ctx context.Context, group *domain.Group, course *domain.Course, assignments []*domain.Assignment) (*domain.AssignmentLink, error) {
	args := m.Called(ctx, group, course, assignments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssignmentLink), args.Error(1)
}

func (m *MockLinkService) BuildAllStudentLinks(ctx context.Context, user *domain.User, statuses ...domain.EnrollmentStatus) ([]*domain.AssignmentLink, error) {
	args := m.Called(ctx, user, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AssignmentLink), args.Error(1)
}

func (m *MockLinkService) BuildCourseRoster(ctx context.Context, course *domain.Course, excludeGroupMembers bool, statuses ...domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	args := m.Called(ctx, course, excludeGroupMembers, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
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

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, ok := c.entries[key]
	return data, ok
}

func (c *memoryCache) Set(_ context.Context, key string, data []byte, _ time.Duration) {
	c.entries[key] = data
}

func (c *memoryCache) Delete(_ context.Context, key string) {
	delete(c.entries, key)
}

type handlerMocks struct {
	submissions *MockSubmissionService
	reviews     *MockReviewService
	links       *MockLinkService
	courses     *MockCourseStore
	users       *MockUserStore
	groups      *MockGroupStore
	cache       *memoryCache
}

func newTestRouter() (http.Handler, *handlerMocks) {
	m := &handlerMocks{
		submissions: &MockSubmissionService{},
		reviews:     &MockReviewService{},
		links:       &MockLinkService{},
		courses:     &MockCourseStore{},
		users:       &MockUserStore{},
		groups:      &MockGroupStore{},
		cache:       newMemoryCache(),
	}
	h := httpapi.NewHandler(
		m.submissions,
		m.reviews,
		m.links,
		m.courses,
		m.users,
		m.groups,
		m.cache,
		time.Minute,
		logger.NewDevelopment(),
	)
	return h.Routes(), m
}

func TestCreateSubmissionEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, m := newTestRouter()
		m.submissions.On("CreateSubmission", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Submission).ID = 42
		}).Return(nil)

		body := bytes.NewBufferString(`{"assignment_id": 5, "user_id": 2, "score": 80}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/submissions", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var payload struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, int64(42), payload.ID)
	})

	t.Run("invalid reference", func(t *testing.T) {
		router, m := newTestRouter()
		m.submissions.On("CreateSubmission", mock.Anything, mock.Anything).Return(service.ErrInvalidReference)

		body := bytes.NewBufferString(`{"assignment_id": 5, "user_id": 2, "group_id": 3}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/submissions", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		router, m := newTestRouter()

		body := bytes.NewBufferString(`{"assignment_id": 5, "user_id": 2, "status": "GARBAGE"}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/submissions", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.submissions.AssertNotCalled(t, "CreateSubmission", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		router, m := newTestRouter()

		req := httptest.NewRequest(http.MethodPost, "/v1/submissions", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.submissions.AssertNotCalled(t, "CreateSubmission", mock.Anything, mock.Anything)
	})
}

func TestGetLatestSubmissionEndpoint(t *testing.T) {
	router, m := newTestRouter()
	query := domain.SubmissionQuery{AssignmentID: 5, UserID: 2}
	m.submissions.On("GetLatestSubmission", mock.Anything, query).
		Return(&domain.Submission{ID: 42, AssignmentID: 5, UserID: 2, Score: 80}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/submissions/latest?assignment_id=5&user_id=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	m.submissions.AssertExpectations(t)
}

func TestApproveSubmissionsEndpoint(t *testing.T) {
	router, m := newTestRouter()
	m.submissions.On("ApproveByThreshold", mock.Anything, int64(1), int64(11), 50, domain.SubmissionStatusApproved, true).
		Return(nil)

	body := bytes.NewBufferString(`{"min_score": 50, "status": "APPROVED", "released": true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/courses/1/assignments/11/approvals", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	m.submissions.AssertExpectations(t)
}

func TestDeleteReviewsEndpointRequiresFilter(t *testing.T) {
	router, m := newTestRouter()

	req := httptest.NewRequest(http.MethodDelete, "/v1/reviews", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.reviews.AssertNotCalled(t, "DeleteReviews", mock.Anything, mock.Anything)
}

func TestGetGroupProgressEndpointNotEnrolled(t *testing.T) {
	router, m := newTestRouter()
	course := &domain.Course{ID: 1}
	group := &domain.Group{ID: 3, CourseID: 99}
	m.courses.On("GetByID", mock.Anything, int64(1)).Return(course, nil)
	m.groups.On("GetByID", mock.Anything, int64(3)).Return(group, nil)
	m.links.On("BuildGroupLink", mock.Anything, group, course, []*domain.Assignment(nil)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/courses/1/groups/3/progress", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUserProgressEndpointRejectsBadStatus(t *testing.T) {
	router, m := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/users/2/progress?status=WIZARD", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetCourseRosterEndpointCachesResponse(t *testing.T) {
	router, m := newTestRouter()
	course := &domain.Course{ID: 1}
	m.courses.On("GetByID", mock.Anything, int64(1)).Return(course, nil)
	m.links.On("BuildCourseRoster", mock.Anything, course, false, []domain.EnrollmentStatus{}).
		Return([]*domain.Enrollment{
			{ID: 1, CourseID: 1, UserID: 2, User: &domain.User{ID: 2, Name: "Ada"}},
		}, nil)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/courses/1/roster", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var payloads []struct {
			UserID int64 `json:"user_id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payloads))
		require.Len(t, payloads, 1)
		assert.Equal(t, int64(2), payloads[0].UserID)
	}

	// The second request is served from the cache.
	m.links.AssertNumberOfCalls(t, "BuildCourseRoster", 1)
}
