package domain

import "time"

type Review struct {
	ID           int64
	SubmissionID int64
	ReviewerID   int64
	Feedback     string
	Review       string
	Ready        bool
	Score        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReviewQuery filters reviews by equality on the set fields.
type ReviewQuery struct {
	ID           int64
	SubmissionID int64
	ReviewerID   int64
}
