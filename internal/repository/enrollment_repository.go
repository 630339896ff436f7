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

// EnrollmentDatabaseAdapter implements domain.EnrollmentRepository using sqlx.DB.
type EnrollmentDatabaseAdapter struct {
	db *sqlx.DB
}

// NewEnrollmentDatabaseAdapter creates a new instance of EnrollmentDatabaseAdapter.
func NewEnrollmentDatabaseAdapter(db *sqlx.DB) domain.EnrollmentRepository {
	return &EnrollmentDatabaseAdapter{db: db}
}

const enrollmentColumns = `
	id "id",
	user_id "user_id",
	course_id "course_id",
	paid "paid",
	progress "progress",
	status "status",
	enrolled_at "enrolled_at",
	created_at "created_at",
	updated_at "updated_at"`

// CreateEnrollment implements domain.EnrollmentRepository. The unique
// constraint on (user_id, course_id) maps to CodeAlreadyEnrolled.
func (a *EnrollmentDatabaseAdapter) CreateEnrollment(ctx context.Context, enrollment *domain.Enrollment) error {
	exec := GetExecutor(ctx, a.db)

	now := time.Now()
	if enrollment.ID == "" {
		enrollment.ID = util.NewULID()
	}
	enrollment.CreatedAt = now
	enrollment.UpdatedAt = now

	query := `INSERT INTO enrollments (
		id, user_id, course_id, paid, progress, status, enrolled_at, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	_, err := exec.ExecContext(ctx, query,
		enrollment.ID,
		enrollment.UserID,
		enrollment.CourseID,
		models.BoolToInt(enrollment.Paid),
		enrollment.Progress,
		enrollment.Status,
		enrollment.EnrolledAt,
		enrollment.CreatedAt,
		enrollment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyEnrolledError(enrollment.UserID, enrollment.CourseID)
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

// GetEnrollmentByUserAndCourse implements domain.EnrollmentRepository.
func (a *EnrollmentDatabaseAdapter) GetEnrollmentByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Enrollment
	query := `SELECT ` + enrollmentColumns + `
	FROM enrollments
	WHERE user_id = :1 AND course_id = :2
	AND deleted_at IS NULL`

	err := exec.GetContext(ctx, &m, query, userID, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get enrollment for user %s course %s: %w", userID, courseID, err)
	}
	return toDomainEnrollment(&m), nil
}

// GetEnrollmentsByUser implements domain.EnrollmentRepository. Newest first.
func (a *EnrollmentDatabaseAdapter) GetEnrollmentsByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error) {
	exec := GetExecutor(ctx, a.db)

	var modelEnrollments []models.Enrollment
	query := `SELECT ` + enrollmentColumns + `
	FROM enrollments
	WHERE user_id = :1
	AND deleted_at IS NULL
	ORDER BY enrolled_at DESC`

	if err := exec.SelectContext(ctx, &modelEnrollments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get enrollments for user %s: %w", userID, err)
	}

	enrollments := make([]*domain.Enrollment, 0, len(modelEnrollments))
	for i := range modelEnrollments {
		enrollments = append(enrollments, toDomainEnrollment(&modelEnrollments[i]))
	}
	return enrollments, nil
}

// GetAllEnrollments implements domain.EnrollmentRepository. The dashboard
// aggregates over the full table; oldest first so trend bucketing scans in order.
func (a *EnrollmentDatabaseAdapter) GetAllEnrollments(ctx context.Context) ([]*domain.Enrollment, error) {
	exec := GetExecutor(ctx, a.db)

	var modelEnrollments []models.Enrollment
	query := `SELECT ` + enrollmentColumns + `
	FROM enrollments
	WHERE deleted_at IS NULL
	ORDER BY enrolled_at ASC`

	if err := exec.SelectContext(ctx, &modelEnrollments, query); err != nil {
		return nil, fmt.Errorf("failed to get all enrollments: %w", err)
	}

	enrollments := make([]*domain.Enrollment, 0, len(modelEnrollments))
	for i := range modelEnrollments {
		enrollments = append(enrollments, toDomainEnrollment(&modelEnrollments[i]))
	}
	return enrollments, nil
}

func toDomainEnrollment(m *models.Enrollment) *domain.Enrollment {
	if m == nil {
		return nil
	}
	return &domain.Enrollment{
		ID:         m.ID,
		UserID:     m.UserID,
		CourseID:   m.CourseID,
		Paid:       m.Paid == 1,
		Progress:   m.Progress,
		Status:     m.Status,
		EnrolledAt: m.EnrolledAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
