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

// CertificateDatabaseAdapter implements domain.CertificateRepository using sqlx.DB.
type CertificateDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCertificateDatabaseAdapter creates a new instance of CertificateDatabaseAdapter.
func NewCertificateDatabaseAdapter(db *sqlx.DB) domain.CertificateRepository {
	return &CertificateDatabaseAdapter{db: db}
}

const certificateColumns = `
	id "id",
	user_id "user_id",
	course_id "course_id",
	certificate_number "certificate_number",
	final_score "final_score",
	quiz_score "quiz_score",
	status "status",
	metadata "metadata",
	completion_date "completion_date",
	issued_at "issued_at",
	created_at "created_at",
	updated_at "updated_at"`

// CreateCertificate implements domain.CertificateRepository. The unique
// constraints on certificate_number and (user_id, course_id) back up the
// service-level duplicate check; a violation maps to CodeCertificateAlreadyExists.
func (a *CertificateDatabaseAdapter) CreateCertificate(ctx context.Context, cert *domain.Certificate) error {
	exec := GetExecutor(ctx, a.db)

	now := time.Now()
	if cert.ID == "" {
		cert.ID = util.NewULID()
	}
	cert.CreatedAt = now
	cert.UpdatedAt = now

	query := `INSERT INTO certificates (
		id, user_id, course_id, certificate_number, final_score, quiz_score,
		status, metadata, completion_date, issued_at, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12
	)`

	_, err := exec.ExecContext(ctx, query,
		cert.ID,
		cert.UserID,
		cert.CourseID,
		cert.CertificateNumber,
		cert.FinalScore,
		cert.QuizScore,
		string(cert.Status),
		util.StringToNullString(cert.Metadata),
		cert.CompletionDate,
		cert.IssuedAt,
		cert.CreatedAt,
		cert.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewCertificateAlreadyExistsError(cert.UserID, cert.CourseID)
		}
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

// GetCertificateByID implements domain.CertificateRepository.
func (a *CertificateDatabaseAdapter) GetCertificateByID(ctx context.Context, id string) (*domain.Certificate, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Certificate
	query := `SELECT ` + certificateColumns + `
	FROM certificates
	WHERE id = :1`

	err := exec.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get certificate by ID %s: %w", id, err)
	}
	return toDomainCertificate(&m), nil
}

// GetCertificateByNumber implements domain.CertificateRepository.
func (a *CertificateDatabaseAdapter) GetCertificateByNumber(ctx context.Context, number string) (*domain.Certificate, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Certificate
	query := `SELECT ` + certificateColumns + `
	FROM certificates
	WHERE certificate_number = :1`

	err := exec.GetContext(ctx, &m, query, number)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get certificate by number %s: %w", number, err)
	}
	return toDomainCertificate(&m), nil
}

// GetCertificateByUserAndCourse implements domain.CertificateRepository.
func (a *CertificateDatabaseAdapter) GetCertificateByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Certificate, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Certificate
	query := `SELECT ` + certificateColumns + `
	FROM certificates
	WHERE user_id = :1 AND course_id = :2`

	err := exec.GetContext(ctx, &m, query, userID, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get certificate for user %s course %s: %w", userID, courseID, err)
	}
	return toDomainCertificate(&m), nil
}

// UpdateCertificate implements domain.CertificateRepository. Only status and
// metadata are mutable after issuance.
func (a *CertificateDatabaseAdapter) UpdateCertificate(ctx context.Context, cert *domain.Certificate) error {
	exec := GetExecutor(ctx, a.db)

	cert.UpdatedAt = time.Now()

	query := `UPDATE certificates
	SET status = :1, metadata = :2, updated_at = :3
	WHERE id = :4`

	result, err := exec.ExecContext(ctx, query,
		string(cert.Status),
		util.StringToNullString(cert.Metadata),
		cert.UpdatedAt,
		cert.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update certificate %s: %w", cert.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("certificate not found: %s", cert.ID))
	}
	return nil
}

func toDomainCertificate(m *models.Certificate) *domain.Certificate {
	if m == nil {
		return nil
	}
	return &domain.Certificate{
		ID:                m.ID,
		UserID:            m.UserID,
		CourseID:          m.CourseID,
		CertificateNumber: m.CertificateNumber,
		FinalScore:        m.FinalScore,
		QuizScore:         m.QuizScore,
		Status:            domain.CertificateStatus(m.Status),
		Metadata:          util.NullStringToString(m.Metadata),
		CompletionDate:    m.CompletionDate,
		IssuedAt:          m.IssuedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
