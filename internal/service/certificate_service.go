package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/domain"
	"learnhub/internal/dto"
	"learnhub/internal/logger"

	"go.uber.org/zap"
)

// CertificateService issues, verifies, and revokes course certificates.
type CertificateService interface {
	// Issue creates an ACTIVE certificate for the user and course. At most
	// one certificate per (user, course) ever exists.
	Issue(ctx context.Context, req *dto.GenerateCertificateRequest) (*dto.CertificateResponse, error)

	// Verify reports whether a certificate number belongs to a valid
	// certificate. Missing and revoked numbers are indistinguishable.
	Verify(ctx context.Context, certificateNumber string) (*dto.VerifyCertificateResponse, error)

	// Revoke marks a certificate revoked with an audit reason.
	Revoke(ctx context.Context, certificateID string, req *dto.RevokeCertificateRequest) (*dto.RevokeCertificateResponse, error)

	// GetByUserAndCourse returns the user's certificate for a course, or nil.
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*dto.CertificateResponse, error)
}

type certificateService struct {
	certRepo  domain.CertificateRepository
	cacheAdpt domain.Cache
	cacheTTL  time.Duration
}

// NewCertificateService creates a new CertificateService.
func NewCertificateService(certRepo domain.CertificateRepository, cacheAdpt domain.Cache, cacheTTL time.Duration) CertificateService {
	return &certificateService{
		certRepo:  certRepo,
		cacheAdpt: cacheAdpt,
		cacheTTL:  cacheTTL,
	}
}

func verifyCacheKey(certificateNumber string) string {
	return cache.GenerateCacheKey("certificate", "verify", certificateNumber)
}

func (s *certificateService) Issue(ctx context.Context, req *dto.GenerateCertificateRequest) (*dto.CertificateResponse, error) {
	var errs domain.ValidationErrors
	if req.UserID == "" {
		errs = append(errs, domain.NewMissingFieldError("userId"))
	}
	if req.CourseID == "" {
		errs = append(errs, domain.NewMissingFieldError("courseId"))
	}
	if req.FinalScore < 0 || req.FinalScore > 100 {
		errs = append(errs, domain.NewOutOfRangeError("finalScore", int(req.FinalScore), 0, 100))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.certRepo.GetCertificateByUserAndCourse(ctx, req.UserID, req.CourseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check existing certificate", err)
	}
	if existing != nil {
		return nil, domain.NewCertificateAlreadyExistsError(req.UserID, req.CourseID)
	}

	cert := domain.NewCertificate(req.UserID, req.CourseID, req.FinalScore, req.QuizScore)
	if err := s.certRepo.CreateCertificate(ctx, cert); err != nil {
		// The unique constraint catches races the pre-check misses.
		return nil, err
	}

	logger.Get().Info("certificate issued",
		zap.String("certificate_number", cert.CertificateNumber),
		zap.String("user_id", cert.UserID),
		zap.String("course_id", cert.CourseID))

	return toCertificateResponse(cert), nil
}

func (s *certificateService) Verify(ctx context.Context, certificateNumber string) (*dto.VerifyCertificateResponse, error) {
	if certificateNumber == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("certificate_number")}
	}

	key := verifyCacheKey(certificateNumber)
	if cached, err := s.cacheAdpt.Get(ctx, key); err == nil {
		var resp dto.VerifyCertificateResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("certificate cache read failed", zap.Error(err))
	}

	cert, err := s.certRepo.GetCertificateByNumber(ctx, certificateNumber)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up certificate", err)
	}

	resp := &dto.VerifyCertificateResponse{}
	if cert != nil && cert.IsValid() {
		resp.Valid = true
		resp.Certificate = toCertificateResponse(cert)
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := s.cacheAdpt.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
			logger.Get().Warn("certificate cache write failed", zap.Error(err))
		}
	}

	return resp, nil
}

func (s *certificateService) Revoke(ctx context.Context, certificateID string, req *dto.RevokeCertificateRequest) (*dto.RevokeCertificateResponse, error) {
	if req.Reason == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("reason")}
	}

	cert, err := s.certRepo.GetCertificateByID(ctx, certificateID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load certificate", err)
	}
	if cert == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("certificate not found: %s", certificateID))
	}

	cert.Revoke(req.Reason, time.Now())
	if err := s.certRepo.UpdateCertificate(ctx, cert); err != nil {
		return nil, domain.NewInternalError("failed to revoke certificate", err)
	}

	// Invalidate the verification cache so the revocation is visible at once.
	if err := s.cacheAdpt.Delete(ctx, verifyCacheKey(cert.CertificateNumber)); err != nil {
		logger.Get().Warn("certificate cache invalidation failed", zap.Error(err))
	}

	logger.Get().Info("certificate revoked",
		zap.String("certificate_number", cert.CertificateNumber),
		zap.String("reason", req.Reason))

	return &dto.RevokeCertificateResponse{Success: true}, nil
}

func (s *certificateService) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*dto.CertificateResponse, error) {
	cert, err := s.certRepo.GetCertificateByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load certificate", err)
	}
	if cert == nil {
		return nil, domain.NewNotFoundError("no certificate for this user and course")
	}
	return toCertificateResponse(cert), nil
}

func toCertificateResponse(cert *domain.Certificate) *dto.CertificateResponse {
	return &dto.CertificateResponse{
		ID:                cert.ID,
		UserID:            cert.UserID,
		CourseID:          cert.CourseID,
		CertificateNumber: cert.CertificateNumber,
		FinalScore:        cert.FinalScore,
		QuizScore:         cert.QuizScore,
		Status:            string(cert.Status),
		CompletionDate:    cert.CompletionDate,
		IssuedAt:          cert.IssuedAt,
	}
}
