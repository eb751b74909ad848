package domain

// AssignmentLink is a transient progress view joining a course, an
// enrollment and the course assignments with each assignment's latest
// submission. It is rebuilt on every read and never persisted.
type AssignmentLink struct {
	Course      *Course
	Enrollment  *Enrollment
	Submissions []*SubmissionLink
}

// SubmissionLink pairs one assignment with the owner's latest submission
// for it. Submission is nil when the owner has not submitted anything.
type SubmissionLink struct {
	Assignment    *Assignment
	Submission    *Submission
	SubmitterName string
}
