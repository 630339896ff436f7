package domain

import "time"

// EnrollmentStatus values mirror the enrollment workflow states.
const (
	EnrollmentStatusEnrolled   = "ENROLLED"
	EnrollmentStatusInProgress = "IN_PROGRESS"
	EnrollmentStatusCompleted  = "COMPLETED"
)

// Enrollment ties a user to a course. Payment and lesson-progress workflows
// own the Paid/Progress fields; this core only reads them for reporting.
type Enrollment struct {
	ID         string
	UserID     string
	CourseID   string
	Paid       bool
	Progress   float64
	Status     string
	EnrolledAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewEnrollment creates an enrollment in the ENROLLED state.
func NewEnrollment(userID, courseID string, paid bool) *Enrollment {
	now := time.Now()
	return &Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Paid:       paid,
		Status:     EnrollmentStatusEnrolled,
		EnrolledAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
