package dto

import "time"

// GenerateCertificateRequest is the manual issuance request.
type GenerateCertificateRequest struct {
	UserID     string  `json:"userId"`
	CourseID   string  `json:"courseId"`
	FinalScore float64 `json:"finalScore"`
	QuizScore  float64 `json:"quizScore"`
}

// RevokeCertificateRequest carries the audit reason for a revocation.
type RevokeCertificateRequest struct {
	Reason string `json:"reason"`
}

// CertificateResponse mirrors an issued certificate.
type CertificateResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	CourseID          string    `json:"course_id"`
	CertificateNumber string    `json:"certificate_number"`
	FinalScore        float64   `json:"final_score"`
	QuizScore         float64   `json:"quiz_score"`
	Status            string    `json:"status"`
	CompletionDate    time.Time `json:"completion_date"`
	IssuedAt          time.Time `json:"issued_at"`
}

// VerifyCertificateResponse reports whether a certificate number verifies.
// A missing and a revoked certificate are deliberately indistinguishable.
type VerifyCertificateResponse struct {
	Valid       bool                 `json:"valid"`
	Certificate *CertificateResponse `json:"certificate,omitempty"`
}

// RevokeCertificateResponse acknowledges a revocation.
type RevokeCertificateResponse struct {
	Success bool `json:"success"`
}
