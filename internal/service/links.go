package service

import (
	"context"

	"progress_service/internal/domain"
)

type LinkServiceInterface interface {
	BuildStudentLink(ctx context.Context, user *domain.User, course *domain.Course, assignments []*domain.Assignment) (*domain.AssignmentLink, error)
	BuildGroupLink(ctx context.Context, group *domain.Group, course *domain.Course, assignments []*domain.Assignment) (*domain.AssignmentLink, error)
	BuildAllStudentLinks(ctx context.Context, user *domain.User, statuses ...domain.EnrollmentStatus) ([]*domain.AssignmentLink, error)
	BuildCourseRoster(ctx context.Context, course *domain.Course, excludeGroupMembers bool, statuses ...domain.EnrollmentStatus) ([]*domain.Enrollment, error)
}

type linkService struct {
	submissions SubmissionStore
	assignments AssignmentStore
	enrollments EnrollmentStore
}

func NewLinkService(
	submissions SubmissionStore,
	assignments AssignmentStore,
	enrollments EnrollmentStore,
) LinkServiceInterface {
	return &linkService{
		submissions: submissions,
		assignments: assignments,
		enrollments: enrollments,
	}
}

// BuildStudentLink joins the course, the student's enrollment and the course
// assignments with the student's latest submission per assignment. Pass nil
// assignments to have the course list fetched; pass an empty slice to build
// a link without touching submissions at all.
func (s *linkService) BuildStudentLink(ctx context.Context, user *domain.User, course *domain.Course, assignments []*domain.Assignment) (*domain.AssignmentLink, error) {
	enrollment := &domain.Enrollment{
		CourseID: course.ID,
		UserID:   user.ID,
		User:     user,
		Course:   course,
	}
	query := domain.SubmissionQuery{UserID: user.ID}
	return s.buildLink(ctx, enrollment, course, assignments, query, user.Name)
}

// BuildGroupLink is the group variant of BuildStudentLink. A group that is
// not enrolled in the course yields no link and no error.
func (s *linkService) BuildGroupLink(ctx context.Context, group *domain.Group, course *domain.Course, assignments []*domain.Assignment) (*domain.AssignmentLink, error) {
	if group.CourseID != course.ID {
		return nil, nil
	}

	enrollment := &domain.Enrollment{
		CourseID: course.ID,
		GroupID:  group.ID,
		Course:   course,
	}
	query := domain.SubmissionQuery{GroupID: group.ID}
	return s.buildLink(ctx, enrollment, course, assignments, query, group.Name)
}

// BuildAllStudentLinks builds one progress link per course the student is
// enrolled in, optionally restricted to the given enrollment statuses.
func (s *linkService) BuildAllStudentLinks(ctx context.Context, user *domain.User, statuses ...domain.EnrollmentStatus) ([]*domain.AssignmentLink, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, user.ID, statuses...)
	if err != nil {
		return nil, err
	}

	links := make([]*domain.AssignmentLink, 0, len(enrollments))
	for _, enrollment := range enrollments {
		enrollment.User = user
		query := domain.SubmissionQuery{UserID: user.ID}
		link, err := s.buildLink(ctx, enrollment, enrollment.Course, nil, query, user.Name)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, nil
}

// BuildCourseRoster returns the course enrollments paired with their users,
// each stamped with the course id for downstream consumers.
func (s *linkService) BuildCourseRoster(ctx context.Context, course *domain.Course, excludeGroupMembers bool, statuses ...domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	enrollments, err := s.enrollments.ListByCourseWithUsers(ctx, course.ID, excludeGroupMembers, statuses...)
	if err != nil {
		return nil, err
	}

	for _, enrollment := range enrollments {
		enrollment.CourseID = course.ID
	}

	return enrollments, nil
}

// buildLink fetches the owner's submissions for the course in one batch and
// pairs each assignment with its latest submission in memory, preserving the
// assignment ordering.
func (s *linkService) buildLink(ctx context.Context, enrollment *domain.Enrollment, course *domain.Course, assignments []*domain.Assignment, query domain.SubmissionQuery, submitterName string) (*domain.AssignmentLink, error) {
	if assignments == nil {
		var err error
		assignments, err = s.assignments.ListByCourse(ctx, course.ID)
		if err != nil {
			return nil, err
		}
	}

	link := &domain.AssignmentLink{
		Course:      course,
		Enrollment:  enrollment,
		Submissions: make([]*domain.SubmissionLink, 0, len(assignments)),
	}
	if len(assignments) == 0 {
		return link, nil
	}

	submissions, err := s.submissions.ListForCourseOwner(ctx, course.ID, query)
	if err != nil {
		return nil, err
	}

	// Rows arrive newest first within each assignment, so the first row
	// seen per assignment is the latest submission.
	latest := make(map[int64]*domain.Submission, len(submissions))
	for _, submission := range submissions {
		if _, ok := latest[submission.AssignmentID]; !ok {
			latest[submission.AssignmentID] = submission
		}
	}

	for _, assignment := range assignments {
		link.Submissions = append(link.Submissions, &domain.SubmissionLink{
			Assignment:    assignment,
			Submission:    latest[assignment.ID],
			SubmitterName: submitterName,
		})
	}

	return link, nil
}
