package dto

import "time"

// CreateCourseRequest is the admin request to create a course.
type CreateCourseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsFree      bool    `json:"is_free"`
}

// CourseResponse mirrors a course record.
type CourseResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	IsFree       bool      `json:"is_free"`
	InstructorID string    `json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// EnrollmentResponse mirrors an enrollment record.
type EnrollmentResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CourseID   string    `json:"course_id"`
	Paid       bool      `json:"paid"`
	Progress   float64   `json:"progress"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
