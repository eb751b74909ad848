package domain

import "time"

// Assignment is course configuration owned elsewhere; the progress core
// only reads it.
type Assignment struct {
	ID       int64
	CourseID int64
	Name     string
	Order    int
	Deadline *time.Time
}
