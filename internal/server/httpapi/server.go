package httpapi

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"progress_service/internal/service"
	"progress_service/pkg/logger"
)

// Cache is the response cache used by read-heavy endpoints.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type Handler struct {
	submissions service.SubmissionServiceInterface
	reviews     service.ReviewServiceInterface
	links       service.LinkServiceInterface
	courses     service.CourseStore
	users       service.UserStore
	groups      service.GroupStore
	cache       Cache
	rosterTTL   time.Duration
	logger      *logger.Logger
}

func NewHandler(
	submissions service.SubmissionServiceInterface,
	reviews service.ReviewServiceInterface,
	links service.LinkServiceInterface,
	courses service.CourseStore,
	users service.UserStore,
	groups service.GroupStore,
	cache Cache,
	rosterTTL time.Duration,
	log *logger.Logger,
) *Handler {
	return &Handler{
		submissions: submissions,
		reviews:     reviews,
		links:       links,
		courses:     courses,
		users:       users,
		groups:      groups,
		cache:       cache,
		rosterTTL:   rosterTTL,
		logger:      log,
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(NewLoggingMiddleware(h.logger))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/submissions", h.CreateSubmission)
		r.Get("/submissions", h.ListSubmissions)
		r.Get("/submissions/latest", h.GetLatestSubmission)
		r.Get("/submissions/{submissionID}/reviews", h.ListReviews)

		r.Post("/reviews", h.CreateReview)
		r.Patch("/reviews/{reviewID}", h.UpdateReview)
		r.Delete("/reviews", h.DeleteReviews)

		r.Route("/courses/{courseID}", func(r chi.Router) {
			r.Get("/submissions/latest", h.GetLastSubmissions)
			r.Post("/assignments/{assignmentID}/approvals", h.ApproveSubmissions)
			r.Get("/students/{userID}/progress", h.GetStudentProgress)
			r.Get("/groups/{groupID}/progress", h.GetGroupProgress)
			r.Get("/roster", h.GetCourseRoster)
		})

		r.Get("/users/{userID}/progress", h.GetUserProgress)
	})

	return r
}
