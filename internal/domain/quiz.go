package domain

import "time"

// DefaultPassingScore is the percentage threshold applied when a quiz does
// not specify one.
const DefaultPassingScore = 70.0

// QuestionType tags how a question is presented and answered.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionTypeSingleChoice   QuestionType = "SINGLE_CHOICE"
)

// Quiz represents a quiz attached to exactly one course.
type Quiz struct {
	ID               string
	CourseID         string
	Title            string
	PassingScore     float64
	TimeLimitMinutes *int // nil = no time limit
	MaxAttempts      *int // nil = unlimited
	Questions        []*Question
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// NewQuiz creates a new Quiz instance
func NewQuiz(courseID, title string, passingScore float64) *Quiz {
	if passingScore <= 0 {
		passingScore = DefaultPassingScore
	}
	now := time.Now()
	return &Quiz{
		CourseID:     courseID,
		Title:        title,
		PassingScore: passingScore,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	var errs ValidationErrors
	if q.CourseID == "" {
		errs = append(errs, NewMissingFieldError("course_id"))
	}
	if q.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if q.PassingScore < 0 || q.PassingScore > 100 {
		errs = append(errs, NewOutOfRangeError("passing_score", int(q.PassingScore), 0, 100))
	}
	if q.MaxAttempts != nil && *q.MaxAttempts <= 0 {
		errs = append(errs, ValidationError{Field: "max_attempts", Message: "must be positive when set"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// QuestionByID returns the question with the given id, or nil.
func (q *Quiz) QuestionByID(questionID string) *Question {
	for _, question := range q.Questions {
		if question.ID == questionID {
			return question
		}
	}
	return nil
}

// IsPassing reports whether the given score percentage meets the quiz's
// passing threshold.
func (q *Quiz) IsPassing(scorePercentage float64) bool {
	return scorePercentage >= q.PassingScore
}

// Question belongs to one quiz and carries its options in display order.
type Question struct {
	ID         string
	QuizID     string
	Text       string
	Type       QuestionType
	OrderIndex int
	Points     int
	Options    []*Option
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate validates the question
func (q *Question) Validate() error {
	var errs ValidationErrors
	if q.Text == "" {
		errs = append(errs, NewMissingFieldError("text"))
	}
	switch q.Type {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeSingleChoice:
	default:
		errs = append(errs, NewInvalidFormatError("type", string(q.Type)))
	}
	if q.Points <= 0 {
		errs = append(errs, ValidationError{Field: "points", Message: "must be positive"})
	}
	if len(q.Options) == 0 {
		errs = append(errs, ValidationError{Field: "options", Message: "at least one option is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OptionByID returns the option with the given id, or nil.
func (q *Question) OptionByID(optionID string) *Option {
	for _, option := range q.Options {
		if option.ID == optionID {
			return option
		}
	}
	return nil
}

// Option belongs to one question.
type Option struct {
	ID         string
	QuestionID string
	Text       string
	IsCorrect  bool
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
