package dto

import "time"

// CreateQuizRequest is the admin request to create a quiz with its questions.
type CreateQuizRequest struct {
	CourseID         string                  `json:"course_id"`
	Title            string                  `json:"title"`
	PassingScore     float64                 `json:"passing_score"`
	TimeLimitMinutes *int                    `json:"time_limit_minutes,omitempty"`
	MaxAttempts      *int                    `json:"max_attempts,omitempty"`
	Questions        []CreateQuestionRequest `json:"questions"`
}

type CreateQuestionRequest struct {
	Text       string                `json:"text"`
	Type       string                `json:"type"`
	OrderIndex int                   `json:"order_index"`
	Points     int                   `json:"points"`
	Options    []CreateOptionRequest `json:"options"`
}

type CreateOptionRequest struct {
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order_index"`
}

// QuizResponse is a quiz with its question tree. Correctness flags are only
// populated for the admin view.
type QuizResponse struct {
	ID               string             `json:"id"`
	CourseID         string             `json:"course_id"`
	Title            string             `json:"title"`
	PassingScore     float64            `json:"passing_score"`
	TimeLimitMinutes *int               `json:"time_limit_minutes,omitempty"`
	MaxAttempts      *int               `json:"max_attempts,omitempty"`
	Questions        []QuestionResponse `json:"questions"`
}

type QuestionResponse struct {
	ID         string           `json:"id"`
	Text       string           `json:"text"`
	Type       string           `json:"type"`
	OrderIndex int              `json:"order_index"`
	Points     int              `json:"points"`
	Options    []OptionResponse `json:"options"`
}

type OptionResponse struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	OrderIndex int    `json:"order_index"`
	IsCorrect  *bool  `json:"is_correct,omitempty"`
}

// SubmitAnswerRequest records the option a user selected for a question.
type SubmitAnswerRequest struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// AttemptResponse mirrors a quiz attempt.
type AttemptResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	QuizID           string     `json:"quiz_id"`
	AttemptNumber    int        `json:"attempt_number"`
	TotalQuestions   int        `json:"total_questions"`
	CorrectAnswers   int        `json:"correct_answers"`
	ScorePercentage  float64    `json:"score_percentage"`
	Completed        bool       `json:"completed"`
	Passed           bool       `json:"passed"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	TimeTakenMinutes int        `json:"time_taken_minutes"`
	AnsweredCount    int        `json:"answered_count"`
}

// CompleteAttemptResponse is returned by the complete operation.
type CompleteAttemptResponse struct {
	Attempt              AttemptResponse `json:"attempt"`
	Passed               bool            `json:"passed"`
	Score                float64         `json:"score"`
	CertificateGenerated bool            `json:"certificateGenerated"`
}
