package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"learnhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var certificateTestColumns = []string{
	"id", "user_id", "course_id", "certificate_number", "final_score", "quiz_score",
	"status", "metadata", "completion_date", "issued_at", "created_at", "updated_at",
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("ORA-00001: unique constraint (LEARNHUB.UQ_CERTIFICATES_NUMBER) violated")))
	assert.True(t, isUniqueViolation(fmt.Errorf("UNIQUE constraint failed: certificates.certificate_number")))
	assert.False(t, isUniqueViolation(fmt.Errorf("ORA-12541: TNS no listener")))
	assert.False(t, isUniqueViolation(nil))
}

func TestCertificateAdapter_CreateCertificate_UniqueViolation(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCertificateDatabaseAdapter(db)
	defer db.Close()

	cert := &domain.Certificate{
		UserID:            "user-1",
		CourseID:          "course-1",
		CertificateNumber: "CERT-course-1-user-1-123",
		FinalScore:        85,
		Status:            domain.CertificateStatusActive,
		CompletionDate:    time.Now(),
		IssuedAt:          time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO certificates`)).
		WillReturnError(fmt.Errorf("ORA-00001: unique constraint (LEARNHUB.UQ_CERTIFICATES_USER_COURSE) violated"))

	err := repo.CreateCertificate(context.Background(), cert)

	var domainErr *domain.DomainError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeCertificateAlreadyExists, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateAdapter_GetCertificateByNumber(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCertificateDatabaseAdapter(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(certificateTestColumns).
		AddRow("cert-1", "user-1", "course-1", "CERT-course-1-user-1-123", 85.0, 85.0,
			string(domain.CertificateStatusActive), nil, now, now, now, now)

	mock.ExpectQuery(`SELECT(.|\n)+FROM certificates(.|\n)+WHERE certificate_number = :1`).
		WithArgs("CERT-course-1-user-1-123").
		WillReturnRows(rows)

	cert, err := repo.GetCertificateByNumber(context.Background(), "CERT-course-1-user-1-123")

	assert.NoError(t, err)
	assert.NotNil(t, cert)
	assert.Equal(t, "cert-1", cert.ID)
	assert.Equal(t, domain.CertificateStatusActive, cert.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateAdapter_GetCertificateByNumber_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCertificateDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\n)+FROM certificates(.|\n)+WHERE certificate_number = :1`).
		WithArgs("CERT-unknown").
		WillReturnError(sql.ErrNoRows)

	cert, err := repo.GetCertificateByNumber(context.Background(), "CERT-unknown")

	assert.NoError(t, err)
	assert.Nil(t, cert)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateAdapter_UpdateCertificate_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCertificateDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE certificates`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCertificate(context.Background(), &domain.Certificate{
		ID:     "missing",
		Status: domain.CertificateStatusRevoked,
	})

	var domainErr *domain.DomainError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
