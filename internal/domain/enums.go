package domain

type SubmissionStatus string

const (
	SubmissionStatusNone     SubmissionStatus = "NONE"
	SubmissionStatusApproved SubmissionStatus = "APPROVED"
	SubmissionStatusRevision SubmissionStatus = "REVISION"
	SubmissionStatusRejected SubmissionStatus = "REJECTED"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusNone, SubmissionStatusApproved,
		SubmissionStatusRevision, SubmissionStatusRejected:
		return true
	default:
		return false
	}
}

type EnrollmentStatus string

const (
	EnrollmentStatusNone    EnrollmentStatus = "NONE"
	EnrollmentStatusPending EnrollmentStatus = "PENDING"
	EnrollmentStatusStudent EnrollmentStatus = "STUDENT"
	EnrollmentStatusTeacher EnrollmentStatus = "TEACHER"
)

func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentStatusNone, EnrollmentStatusPending,
		EnrollmentStatusStudent, EnrollmentStatusTeacher:
		return true
	default:
		return false
	}
}
