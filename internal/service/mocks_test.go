package service

import (
	"context"
	"time"

	"learnhub/internal/domain"
	"learnhub/internal/dto"

	"github.com/stretchr/testify/mock"
)

// Hand-written testify mocks for the domain ports used by the services.

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuizzesByCourse(ctx context.Context, courseID string) ([]*domain.Quiz, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CountAttempts(ctx context.Context, userID, quizID string) (int, error) {
	args := m.Called(ctx, userID, quizID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) UpsertAnswer(ctx context.Context, answer *domain.QuizAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAttemptRepository) FinalizeAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetAttemptsByUserAndQuiz(ctx context.Context, userID, quizID string) ([]*domain.QuizAttempt, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizAttempt), args.Error(1)
}

type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) CreateCertificate(ctx context.Context, cert *domain.Certificate) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

func (m *MockCertificateRepository) GetCertificateByID(ctx context.Context, id string) (*domain.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) GetCertificateByNumber(ctx context.Context, number string) (*domain.Certificate, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) GetCertificateByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Certificate, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) UpdateCertificate(ctx context.Context, cert *domain.Certificate) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) SaveCourse(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetCourseByID(ctx context.Context, id string) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) GetAllCourses(ctx context.Context) ([]*domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) CountCourses(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) CreateEnrollment(ctx context.Context, enrollment *domain.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetEnrollmentByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetEnrollmentsByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetAllEnrollments(ctx context.Context) ([]*domain.Enrollment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTransactionManager runs the function directly, without a transaction.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

type MockCertificateService struct {
	mock.Mock
}

func (m *MockCertificateService) Issue(ctx context.Context, req *dto.GenerateCertificateRequest) (*dto.CertificateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CertificateResponse), args.Error(1)
}

func (m *MockCertificateService) Verify(ctx context.Context, certificateNumber string) (*dto.VerifyCertificateResponse, error) {
	args := m.Called(ctx, certificateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VerifyCertificateResponse), args.Error(1)
}

func (m *MockCertificateService) Revoke(ctx context.Context, certificateID string, req *dto.RevokeCertificateRequest) (*dto.RevokeCertificateResponse, error) {
	args := m.Called(ctx, certificateID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RevokeCertificateResponse), args.Error(1)
}

func (m *MockCertificateService) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*dto.CertificateResponse, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CertificateResponse), args.Error(1)
}
