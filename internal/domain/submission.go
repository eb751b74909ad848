package domain

import (
	"encoding/json"
	"time"
)

type Submission struct {
	ID           int64
	AssignmentID int64
	UserID       int64
	GroupID      int64
	Score        int
	Status       SubmissionStatus
	Released     bool
	TestResult   json.RawMessage
	Reviews      []*Review
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubmissionQuery filters submissions by equality on the set fields.
// A zero field does not constrain the result.
type SubmissionQuery struct {
	AssignmentID int64
	UserID       int64
	GroupID      int64
}
