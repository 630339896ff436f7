package dto

import "time"

// OverviewResponse is the admin dashboard's single-call summary.
type OverviewResponse struct {
	TotalUsers        int             `json:"total_users"`
	TotalCourses      int             `json:"total_courses"`
	FreeCourses       int             `json:"free_courses"`
	PaidCourses       int             `json:"paid_courses"`
	RecentEnrollments int             `json:"recent_enrollments"` // last 30 days
	TotalRevenue      float64         `json:"total_revenue"`
	RecentCourses     []CourseSummary `json:"recent_courses"`
}

// CourseSummary is a light projection of a course for dashboard lists.
type CourseSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	IsFree    bool      `json:"is_free"`
	CreatedAt time.Time `json:"created_at"`
}

// TrendResponse is a day-bucketed enrollment time series, oldest first.
type TrendResponse struct {
	Range  string   `json:"range"`
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// TopCourseRow is one row of the top-courses leaderboard.
type TopCourseRow struct {
	CourseID     string  `json:"course_id"`
	Title        string  `json:"title"`
	StudentCount int     `json:"student_count"`
	Revenue      float64 `json:"revenue"`
}

// ActivityEvent is one entry of the recent-activity feed.
type ActivityEvent struct {
	Type       string     `json:"type"` // "enrollment_created" | "course_created"
	CourseID   string     `json:"course_id"`
	UserID     string     `json:"user_id,omitempty"`
	OccurredAt *time.Time `json:"occurred_at"`
}
