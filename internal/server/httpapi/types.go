package httpapi

import (
	"encoding/json"
	"time"

	"progress_service/internal/domain"
)

type submissionPayload struct {
	ID           int64           `json:"id,omitempty"`
	AssignmentID int64           `json:"assignment_id"`
	UserID       int64           `json:"user_id,omitempty"`
	GroupID      int64           `json:"group_id,omitempty"`
	Score        int             `json:"score"`
	Status       string          `json:"status,omitempty"`
	Released     bool            `json:"released"`
	TestResult   json.RawMessage `json:"test_result,omitempty"`
	Reviews      []reviewPayload `json:"reviews,omitempty"`
	CreatedAt    time.Time       `json:"created_at,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}

type reviewPayload struct {
	ID           int64     `json:"id,omitempty"`
	SubmissionID int64     `json:"submission_id"`
	ReviewerID   int64     `json:"reviewer_id"`
	Feedback     string    `json:"feedback"`
	Review       string    `json:"review"`
	Ready        bool      `json:"ready"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

type approvalPayload struct {
	MinScore int    `json:"min_score"`
	Status   string `json:"status"`
	Released bool   `json:"released"`
}

type enrollmentPayload struct {
	ID       int64        `json:"id,omitempty"`
	CourseID int64        `json:"course_id"`
	UserID   int64        `json:"user_id,omitempty"`
	GroupID  int64        `json:"group_id,omitempty"`
	Status   string       `json:"status,omitempty"`
	User     *userPayload `json:"user,omitempty"`
}

type userPayload struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

type coursePayload struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type assignmentPayload struct {
	ID       int64      `json:"id"`
	CourseID int64      `json:"course_id"`
	Name     string     `json:"name"`
	Order    int        `json:"order"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

type submissionLinkPayload struct {
	Assignment    assignmentPayload  `json:"assignment"`
	Submission    *submissionPayload `json:"submission,omitempty"`
	SubmitterName string             `json:"submitter_name"`
}

type assignmentLinkPayload struct {
	Course      coursePayload           `json:"course"`
	Enrollment  enrollmentPayload       `json:"enrollment"`
	Submissions []submissionLinkPayload `json:"submissions"`
}

func toSubmissionPayload(s *domain.Submission) *submissionPayload {
	if s == nil {
		return nil
	}
	p := &submissionPayload{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		UserID:       s.UserID,
		GroupID:      s.GroupID,
		Score:        s.Score,
		Status:       string(s.Status),
		Released:     s.Released,
		TestResult:   s.TestResult,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	for _, review := range s.Reviews {
		p.Reviews = append(p.Reviews, toReviewPayload(review))
	}
	return p
}

func toReviewPayload(r *domain.Review) reviewPayload {
	return reviewPayload{
		ID:           r.ID,
		SubmissionID: r.SubmissionID,
		ReviewerID:   r.ReviewerID,
		Feedback:     r.Feedback,
		Review:       r.Review,
		Ready:        r.Ready,
		Score:        r.Score,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toEnrollmentPayload(e *domain.Enrollment) enrollmentPayload {
	p := enrollmentPayload{
		ID:       e.ID,
		CourseID: e.CourseID,
		UserID:   e.UserID,
		GroupID:  e.GroupID,
		Status:   string(e.Status),
	}
	if e.User != nil {
		p.User = &userPayload{ID: e.User.ID, Login: e.User.Login, Name: e.User.Name}
	}
	return p
}

func toAssignmentLinkPayload(link *domain.AssignmentLink) assignmentLinkPayload {
	p := assignmentLinkPayload{
		Course: coursePayload{
			ID:   link.Course.ID,
			Code: link.Course.Code,
			Name: link.Course.Name,
		},
		Enrollment:  toEnrollmentPayload(link.Enrollment),
		Submissions: make([]submissionLinkPayload, 0, len(link.Submissions)),
	}
	for _, sl := range link.Submissions {
		p.Submissions = append(p.Submissions, submissionLinkPayload{
			Assignment: assignmentPayload{
				ID:       sl.Assignment.ID,
				CourseID: sl.Assignment.CourseID,
				Name:     sl.Assignment.Name,
				Order:    sl.Assignment.Order,
				Deadline: sl.Assignment.Deadline,
			},
			Submission:    toSubmissionPayload(sl.Submission),
			SubmitterName: sl.SubmitterName,
		})
	}
	return p
}
