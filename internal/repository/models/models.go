package models

import (
	"database/sql"
	"time"
)

// Database rows. Nullable columns use database/sql null types; conversion to
// and from domain records happens in the repository adapters.

type User struct {
	ID                    string         `db:"id"`
	GoogleID              string         `db:"google_id"`
	Email                 string         `db:"email"`
	Name                  sql.NullString `db:"name"`
	Role                  string         `db:"role"`
	ProfilePictureURL     sql.NullString `db:"profile_picture_url"`
	EncryptedAccessToken  sql.NullString `db:"encrypted_access_token"`
	EncryptedRefreshToken sql.NullString `db:"encrypted_refresh_token"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
	DeletedAt             sql.NullTime   `db:"deleted_at"`
}

type Course struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	Price        float64        `db:"price"`
	IsFree       int            `db:"is_free"` // Oracle NUMBER(1)
	InstructorID sql.NullString `db:"instructor_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    sql.NullTime   `db:"deleted_at"`
}

type Enrollment struct {
	ID         string       `db:"id"`
	UserID     string       `db:"user_id"`
	CourseID   string       `db:"course_id"`
	Paid       int          `db:"paid"`
	Progress   float64      `db:"progress"`
	Status     string       `db:"status"`
	EnrolledAt time.Time    `db:"enrolled_at"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
	DeletedAt  sql.NullTime `db:"deleted_at"`
}

type Quiz struct {
	ID               string        `db:"id"`
	CourseID         string        `db:"course_id"`
	Title            string        `db:"title"`
	PassingScore     float64       `db:"passing_score"`
	TimeLimitMinutes sql.NullInt64 `db:"time_limit_minutes"`
	MaxAttempts      sql.NullInt64 `db:"max_attempts"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
	DeletedAt        sql.NullTime  `db:"deleted_at"`
}

type Question struct {
	ID         string       `db:"id"`
	QuizID     string       `db:"quiz_id"`
	Text       string       `db:"text"`
	QType      string       `db:"qtype"`
	OrderIndex int          `db:"order_index"`
	Points     int          `db:"points"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
	DeletedAt  sql.NullTime `db:"deleted_at"`
}

type Option struct {
	ID         string    `db:"id"`
	QuestionID string    `db:"question_id"`
	Text       string    `db:"text"`
	IsCorrect  int       `db:"is_correct"`
	OrderIndex int       `db:"order_index"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type QuizAttempt struct {
	ID               string       `db:"id"`
	UserID           string       `db:"user_id"`
	QuizID           string       `db:"quiz_id"`
	AttemptNumber    int          `db:"attempt_number"`
	TotalQuestions   int          `db:"total_questions"`
	CorrectAnswers   int          `db:"correct_answers"`
	ScorePercentage  float64      `db:"score_percentage"`
	Completed        int          `db:"completed"`
	Passed           int          `db:"passed"`
	StartedAt        time.Time    `db:"started_at"`
	CompletedAt      sql.NullTime `db:"completed_at"`
	TimeTakenMinutes int          `db:"time_taken_minutes"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
}

type QuizAnswer struct {
	ID               string         `db:"id"`
	AttemptID        string         `db:"attempt_id"`
	QuestionID       string         `db:"question_id"`
	SelectedOptionID sql.NullString `db:"selected_option_id"`
	IsCorrect        int            `db:"is_correct"`
	AnsweredAt       time.Time      `db:"answered_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type Certificate struct {
	ID                string         `db:"id"`
	UserID            string         `db:"user_id"`
	CourseID          string         `db:"course_id"`
	CertificateNumber string         `db:"certificate_number"`
	FinalScore        float64        `db:"final_score"`
	QuizScore         float64        `db:"quiz_score"`
	Status            string         `db:"status"`
	Metadata          sql.NullString `db:"metadata"`
	CompletionDate    time.Time      `db:"completion_date"`
	IssuedAt          time.Time      `db:"issued_at"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// BoolToInt converts a bool to the NUMBER(1) representation Oracle columns use.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
