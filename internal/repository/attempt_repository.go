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

// AttemptDatabaseAdapter implements domain.AttemptRepository using sqlx.DB.
type AttemptDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAttemptDatabaseAdapter creates a new instance of AttemptDatabaseAdapter.
func NewAttemptDatabaseAdapter(db *sqlx.DB) domain.AttemptRepository {
	return &AttemptDatabaseAdapter{db: db}
}

const attemptColumns = `
	id "id",
	user_id "user_id",
	quiz_id "quiz_id",
	attempt_number "attempt_number",
	total_questions "total_questions",
	correct_answers "correct_answers",
	score_percentage "score_percentage",
	completed "completed",
	passed "passed",
	started_at "started_at",
	completed_at "completed_at",
	time_taken_minutes "time_taken_minutes",
	created_at "created_at",
	updated_at "updated_at"`

// CountAttempts implements domain.AttemptRepository. Every attempt counts,
// completed or not.
func (a *AttemptDatabaseAdapter) CountAttempts(ctx context.Context, userID, quizID string) (int, error) {
	exec := GetExecutor(ctx, a.db)

	var count int
	query := `SELECT COUNT(*) FROM quiz_attempts WHERE user_id = :1 AND quiz_id = :2`
	if err := exec.GetContext(ctx, &count, query, userID, quizID); err != nil {
		return 0, fmt.Errorf("failed to count attempts for user %s quiz %s: %w", userID, quizID, err)
	}
	return count, nil
}

// CreateAttempt implements domain.AttemptRepository.
func (a *AttemptDatabaseAdapter) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	exec := GetExecutor(ctx, a.db)

	now := time.Now()
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	attempt.CreatedAt = now
	attempt.UpdatedAt = now

	query := `INSERT INTO quiz_attempts (
		id, user_id, quiz_id, attempt_number, total_questions, correct_answers,
		score_percentage, completed, passed, started_at, time_taken_minutes, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13
	)`

	_, err := exec.ExecContext(ctx, query,
		attempt.ID,
		attempt.UserID,
		attempt.QuizID,
		attempt.AttemptNumber,
		attempt.TotalQuestions,
		attempt.CorrectAnswers,
		attempt.ScorePercentage,
		models.BoolToInt(attempt.Completed),
		models.BoolToInt(attempt.Passed),
		attempt.StartedAt,
		attempt.TimeTakenMinutes,
		attempt.CreatedAt,
		attempt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

// GetAttemptByID implements domain.AttemptRepository. Answers are loaded with
// the attempt.
func (a *AttemptDatabaseAdapter) GetAttemptByID(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, a.db)

	var modelAttempt models.QuizAttempt
	query := `SELECT ` + attemptColumns + `
	FROM quiz_attempts
	WHERE id = :1`

	err := exec.GetContext(ctx, &modelAttempt, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt by ID %s: %w", id, err)
	}

	attempt := toDomainAttempt(&modelAttempt)

	answers, err := a.getAnswers(ctx, exec, id)
	if err != nil {
		return nil, err
	}
	attempt.Answers = answers
	return attempt, nil
}

func (a *AttemptDatabaseAdapter) getAnswers(ctx context.Context, exec DBTX, attemptID string) ([]*domain.QuizAnswer, error) {
	var modelAnswers []models.QuizAnswer
	query := `SELECT
		id "id",
		attempt_id "attempt_id",
		question_id "question_id",
		selected_option_id "selected_option_id",
		is_correct "is_correct",
		answered_at "answered_at",
		created_at "created_at",
		updated_at "updated_at"
	FROM quiz_answers
	WHERE attempt_id = :1
	ORDER BY answered_at ASC`

	if err := exec.SelectContext(ctx, &modelAnswers, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get answers for attempt %s: %w", attemptID, err)
	}

	answers := make([]*domain.QuizAnswer, 0, len(modelAnswers))
	for i := range modelAnswers {
		answers = append(answers, toDomainAnswer(&modelAnswers[i]))
	}
	return answers, nil
}

// UpsertAnswer implements domain.AttemptRepository. A resubmitted question
// replaces the earlier answer in place.
func (a *AttemptDatabaseAdapter) UpsertAnswer(ctx context.Context, answer *domain.QuizAnswer) error {
	exec := GetExecutor(ctx, a.db)

	now := time.Now()

	updateQuery := `UPDATE quiz_answers
	SET selected_option_id = :1, is_correct = :2, answered_at = :3, updated_at = :4
	WHERE attempt_id = :5 AND question_id = :6`

	result, err := exec.ExecContext(ctx, updateQuery,
		util.StringToNullString(answer.SelectedOptionID),
		models.BoolToInt(answer.IsCorrect),
		answer.AnsweredAt,
		now,
		answer.AttemptID,
		answer.QuestionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz answer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	if answer.ID == "" {
		answer.ID = util.NewULID()
	}
	answer.CreatedAt = now
	answer.UpdatedAt = now

	insertQuery := `INSERT INTO quiz_answers (
		id, attempt_id, question_id, selected_option_id, is_correct, answered_at, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`

	_, err = exec.ExecContext(ctx, insertQuery,
		answer.ID,
		answer.AttemptID,
		answer.QuestionID,
		util.StringToNullString(answer.SelectedOptionID),
		models.BoolToInt(answer.IsCorrect),
		answer.AnsweredAt,
		answer.CreatedAt,
		answer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz answer: %w", err)
	}
	return nil
}

// FinalizeAttempt implements domain.AttemptRepository. Only the scoring and
// completion columns change.
func (a *AttemptDatabaseAdapter) FinalizeAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	exec := GetExecutor(ctx, a.db)

	attempt.UpdatedAt = time.Now()

	query := `UPDATE quiz_attempts
	SET correct_answers = :1,
		score_percentage = :2,
		completed = :3,
		passed = :4,
		completed_at = :5,
		time_taken_minutes = :6,
		updated_at = :7
	WHERE id = :8`

	result, err := exec.ExecContext(ctx, query,
		attempt.CorrectAnswers,
		attempt.ScorePercentage,
		models.BoolToInt(attempt.Completed),
		models.BoolToInt(attempt.Passed),
		util.TimePtrToNullTime(attempt.CompletedAt),
		attempt.TimeTakenMinutes,
		attempt.UpdatedAt,
		attempt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize attempt %s: %w", attempt.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("quiz attempt not found: %s", attempt.ID))
	}
	return nil
}

// GetAttemptsByUserAndQuiz implements domain.AttemptRepository. Newest first.
func (a *AttemptDatabaseAdapter) GetAttemptsByUserAndQuiz(ctx context.Context, userID, quizID string) ([]*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, a.db)

	var modelAttempts []models.QuizAttempt
	query := `SELECT ` + attemptColumns + `
	FROM quiz_attempts
	WHERE user_id = :1 AND quiz_id = :2
	ORDER BY started_at DESC`

	if err := exec.SelectContext(ctx, &modelAttempts, query, userID, quizID); err != nil {
		return nil, fmt.Errorf("failed to get attempts for user %s quiz %s: %w", userID, quizID, err)
	}

	attempts := make([]*domain.QuizAttempt, 0, len(modelAttempts))
	for i := range modelAttempts {
		attempts = append(attempts, toDomainAttempt(&modelAttempts[i]))
	}
	return attempts, nil
}

func toDomainAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	var completedAt *time.Time
	if m.CompletedAt.Valid {
		completedAt = &m.CompletedAt.Time
	}
	return &domain.QuizAttempt{
		ID:               m.ID,
		UserID:           m.UserID,
		QuizID:           m.QuizID,
		AttemptNumber:    m.AttemptNumber,
		TotalQuestions:   m.TotalQuestions,
		CorrectAnswers:   m.CorrectAnswers,
		ScorePercentage:  m.ScorePercentage,
		Completed:        m.Completed == 1,
		Passed:           m.Passed == 1,
		StartedAt:        m.StartedAt,
		CompletedAt:      completedAt,
		TimeTakenMinutes: m.TimeTakenMinutes,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toDomainAnswer(m *models.QuizAnswer) *domain.QuizAnswer {
	if m == nil {
		return nil
	}
	return &domain.QuizAnswer{
		ID:               m.ID,
		AttemptID:        m.AttemptID,
		QuestionID:       m.QuestionID,
		SelectedOptionID: util.NullStringToString(m.SelectedOptionID),
		IsCorrect:        m.IsCorrect == 1,
		AnsweredAt:       m.AnsweredAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
