package domain

import (
	"fmt"
	"time"
)

// CertificateStatus is the lifecycle state of an issued certificate.
type CertificateStatus string

const (
	CertificateStatusActive  CertificateStatus = "ACTIVE"
	CertificateStatusRevoked CertificateStatus = "REVOKED"
	CertificateStatusExpired CertificateStatus = "EXPIRED"
)

// Certificate is a proof-of-completion record unique per (user, course).
type Certificate struct {
	ID                string
	UserID            string
	CourseID          string
	CertificateNumber string
	FinalScore        float64
	QuizScore         float64
	Status            CertificateStatus
	Metadata          string // free-text audit trail (revocation reasons)
	CompletionDate    time.Time
	IssuedAt          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewCertificate creates an ACTIVE certificate for the given user and course.
func NewCertificate(userID, courseID string, finalScore, quizScore float64) *Certificate {
	now := time.Now()
	return &Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: GenerateCertificateNumber(courseID, userID, now),
		FinalScore:        finalScore,
		QuizScore:         quizScore,
		Status:            CertificateStatusActive,
		CompletionDate:    now,
		IssuedAt:          now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// GenerateCertificateNumber derives a certificate number from the course id,
// user id, and the last six digits of the epoch-millisecond timestamp. The
// scheme is not collision-proof; the unique constraints on certificates are
// the real safety net.
func GenerateCertificateNumber(courseID, userID string, at time.Time) string {
	suffix := at.UnixMilli() % 1_000_000
	return fmt.Sprintf("CERT-%s-%s-%06d", courseID, userID, suffix)
}

// IsValid reports whether the certificate verifies as genuine. Only an
// ACTIVE certificate is valid; revoked and expired ones are not
// distinguishable from this signal.
func (c *Certificate) IsValid() bool {
	return c.Status == CertificateStatusActive
}

// Revoke marks the certificate revoked and appends a timestamped reason to
// the metadata audit trail. There is no un-revoke.
func (c *Certificate) Revoke(reason string, at time.Time) {
	c.Status = CertificateStatusRevoked
	entry := fmt.Sprintf("[%s] revoked: %s", at.Format(time.RFC3339), reason)
	if c.Metadata != "" {
		c.Metadata += "\n"
	}
	c.Metadata += entry
	c.UpdatedAt = at
}
