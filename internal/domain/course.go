package domain

type Course struct {
	ID   int64
	Code string
	Name string
}

type User struct {
	ID    int64
	Login string
	Name  string
}

type Group struct {
	ID       int64
	CourseID int64
	Name     string
	Users    []*User
}

// Enrollment ties a user or a group to a course. User and Course are filled
// only by queries that preload them.
type Enrollment struct {
	ID       int64
	CourseID int64
	UserID   int64
	GroupID  int64
	Status   EnrollmentStatus
	User     *User
	Course   *Course
}
