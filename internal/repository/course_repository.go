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

// CourseDatabaseAdapter implements domain.CourseRepository using sqlx.DB.
type CourseDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCourseDatabaseAdapter creates a new instance of CourseDatabaseAdapter.
func NewCourseDatabaseAdapter(db *sqlx.DB) domain.CourseRepository {
	return &CourseDatabaseAdapter{db: db}
}

const courseColumns = `
	id "id",
	title "title",
	description "description",
	price "price",
	is_free "is_free",
	instructor_id "instructor_id",
	created_at "created_at",
	updated_at "updated_at",
	deleted_at "deleted_at"`

// SaveCourse implements domain.CourseRepository.
func (a *CourseDatabaseAdapter) SaveCourse(ctx context.Context, course *domain.Course) error {
	exec := GetExecutor(ctx, a.db)

	now := time.Now()
	if course.ID == "" {
		course.ID = util.NewULID()
	}
	course.CreatedAt = now
	course.UpdatedAt = now

	query := `INSERT INTO courses (
		id, title, description, price, is_free, instructor_id, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`

	_, err := exec.ExecContext(ctx, query,
		course.ID,
		course.Title,
		util.StringToNullString(course.Description),
		course.Price,
		models.BoolToInt(course.IsFree),
		util.StringToNullString(course.InstructorID),
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}
	return nil
}

// GetCourseByID implements domain.CourseRepository.
func (a *CourseDatabaseAdapter) GetCourseByID(ctx context.Context, id string) (*domain.Course, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Course
	query := `SELECT ` + courseColumns + `
	FROM courses
	WHERE id = :1
	AND deleted_at IS NULL`

	err := exec.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course by ID %s: %w", id, err)
	}
	return toDomainCourse(&m), nil
}

// GetAllCourses implements domain.CourseRepository. Newest first.
func (a *CourseDatabaseAdapter) GetAllCourses(ctx context.Context) ([]*domain.Course, error) {
	exec := GetExecutor(ctx, a.db)

	var modelCourses []models.Course
	query := `SELECT ` + courseColumns + `
	FROM courses
	WHERE deleted_at IS NULL
	ORDER BY created_at DESC`

	if err := exec.SelectContext(ctx, &modelCourses, query); err != nil {
		return nil, fmt.Errorf("failed to get all courses: %w", err)
	}

	courses := make([]*domain.Course, 0, len(modelCourses))
	for i := range modelCourses {
		courses = append(courses, toDomainCourse(&modelCourses[i]))
	}
	return courses, nil
}

// CountCourses implements domain.CourseRepository.
func (a *CourseDatabaseAdapter) CountCourses(ctx context.Context) (int, int, error) {
	exec := GetExecutor(ctx, a.db)

	var row struct {
		Total int `db:"total"`
		Free  int `db:"free"`
	}
	query := `SELECT
		COUNT(*) "total",
		COALESCE(SUM(is_free), 0) "free"
	FROM courses
	WHERE deleted_at IS NULL`

	if err := exec.GetContext(ctx, &row, query); err != nil {
		return 0, 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return row.Total, row.Free, nil
}

func toDomainCourse(m *models.Course) *domain.Course {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.Course{
		ID:           m.ID,
		Title:        m.Title,
		Description:  util.NullStringToString(m.Description),
		Price:        m.Price,
		IsFree:       m.IsFree == 1,
		InstructorID: util.NullStringToString(m.InstructorID),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}
