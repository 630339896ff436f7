package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"learnhub/internal/domain"
	"learnhub/internal/repository/models"
	"learnhub/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter.
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

const quizColumns = `
	id "id",
	course_id "course_id",
	title "title",
	passing_score "passing_score",
	time_limit_minutes "time_limit_minutes",
	max_attempts "max_attempts",
	created_at "created_at",
	updated_at "updated_at",
	deleted_at "deleted_at"`

// GetQuizByID implements domain.QuizRepository. The quiz is returned with its
// full question tree (questions in order, options in order).
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuiz models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	WHERE id = :1
	AND deleted_at IS NULL`

	err := exec.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}

	quiz := toDomainQuiz(&modelQuiz)

	questions, err := a.getQuestions(ctx, exec, id)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions
	return quiz, nil
}

func (a *QuizDatabaseAdapter) getQuestions(ctx context.Context, exec DBTX, quizID string) ([]*domain.Question, error) {
	var modelQuestions []models.Question
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		text "text",
		qtype "qtype",
		order_index "order_index",
		points "points",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM questions
	WHERE quiz_id = :1
	AND deleted_at IS NULL
	ORDER BY order_index ASC`

	if err := exec.SelectContext(ctx, &modelQuestions, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	questions := make([]*domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		question := toDomainQuestion(&modelQuestions[i])
		options, err := a.getOptions(ctx, exec, question.ID)
		if err != nil {
			return nil, err
		}
		question.Options = options
		questions = append(questions, question)
	}
	return questions, nil
}

func (a *QuizDatabaseAdapter) getOptions(ctx context.Context, exec DBTX, questionID string) ([]*domain.Option, error) {
	var modelOptions []models.Option
	query := `SELECT
		id "id",
		question_id "question_id",
		text "text",
		is_correct "is_correct",
		order_index "order_index",
		created_at "created_at",
		updated_at "updated_at"
	FROM question_options
	WHERE question_id = :1
	ORDER BY order_index ASC`

	if err := exec.SelectContext(ctx, &modelOptions, query, questionID); err != nil {
		return nil, fmt.Errorf("failed to get options for question %s: %w", questionID, err)
	}

	options := make([]*domain.Option, 0, len(modelOptions))
	for i := range modelOptions {
		options = append(options, toDomainOption(&modelOptions[i]))
	}
	return options, nil
}

// GetQuizzesByCourse implements domain.QuizRepository.
func (a *QuizDatabaseAdapter) GetQuizzesByCourse(ctx context.Context, courseID string) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuizzes []models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	WHERE course_id = :1
	AND deleted_at IS NULL
	ORDER BY created_at ASC`

	if err := exec.SelectContext(ctx, &modelQuizzes, query, courseID); err != nil {
		return nil, fmt.Errorf("failed to get quizzes for course %s: %w", courseID, err)
	}

	quizzes := make([]*domain.Quiz, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		quizzes = append(quizzes, toDomainQuiz(&modelQuizzes[i]))
	}
	return quizzes, nil
}

// SaveQuiz implements domain.QuizRepository. The quiz and its question tree
// are inserted together; callers run this inside a transaction.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, a.db)

	now := time.Now()
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	quizQuery := `INSERT INTO quizzes (
		id, course_id, title, passing_score, time_limit_minutes, max_attempts, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`

	_, err := exec.ExecContext(ctx, quizQuery,
		quiz.ID,
		quiz.CourseID,
		quiz.Title,
		quiz.PassingScore,
		util.IntPtrToNullInt64(quiz.TimeLimitMinutes),
		util.IntPtrToNullInt64(quiz.MaxAttempts),
		quiz.CreatedAt,
		quiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	questionQuery := `INSERT INTO questions (
		id, quiz_id, text, qtype, order_index, points, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`
	optionQuery := `INSERT INTO question_options (
		id, question_id, text, is_correct, order_index, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7
	)`

	for _, question := range quiz.Questions {
		if question.ID == "" {
			question.ID = util.NewULID()
		}
		question.QuizID = quiz.ID
		question.CreatedAt = now
		question.UpdatedAt = now

		_, err := exec.ExecContext(ctx, questionQuery,
			question.ID,
			question.QuizID,
			question.Text,
			string(question.Type),
			question.OrderIndex,
			question.Points,
			question.CreatedAt,
			question.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save question: %w", err)
		}

		for _, option := range question.Options {
			if option.ID == "" {
				option.ID = util.NewULID()
			}
			option.QuestionID = question.ID
			option.CreatedAt = now
			option.UpdatedAt = now

			_, err := exec.ExecContext(ctx, optionQuery,
				option.ID,
				option.QuestionID,
				option.Text,
				models.BoolToInt(option.IsCorrect),
				option.OrderIndex,
				option.CreatedAt,
				option.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to save option: %w", err)
			}
		}
	}

	return nil
}

// Converter helpers

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.Quiz{
		ID:               m.ID,
		CourseID:         m.CourseID,
		Title:            m.Title,
		PassingScore:     m.PassingScore,
		TimeLimitMinutes: util.NullInt64ToIntPtr(m.TimeLimitMinutes),
		MaxAttempts:      util.NullInt64ToIntPtr(m.MaxAttempts),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:         m.ID,
		QuizID:     m.QuizID,
		Text:       m.Text,
		Type:       domain.QuestionType(m.QType),
		OrderIndex: m.OrderIndex,
		Points:     m.Points,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toDomainOption(m *models.Option) *domain.Option {
	if m == nil {
		return nil
	}
	return &domain.Option{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Text:       m.Text,
		IsCorrect:  m.IsCorrect == 1,
		OrderIndex: m.OrderIndex,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
