package service

import (
	"context"
	"fmt"

	"learnhub/internal/domain"
	"learnhub/internal/dto"
	"learnhub/internal/logger"

	"go.uber.org/zap"
)

// CourseService owns the course catalog and enrollment workflow.
type CourseService interface {
	CreateCourse(ctx context.Context, instructorID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context) ([]*dto.CourseResponse, error)

	// Enroll enrolls the user into a course. Paid courses are flagged paid;
	// payment capture itself is outside this service.
	Enroll(ctx context.Context, userID, courseID string) (*dto.EnrollmentResponse, error)
	ListEnrollments(ctx context.Context, userID string) ([]*dto.EnrollmentResponse, error)
}

type courseService struct {
	courseRepo domain.CourseRepository
	enrollRepo domain.EnrollmentRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo domain.CourseRepository, enrollRepo domain.EnrollmentRepository) CourseService {
	return &courseService{courseRepo: courseRepo, enrollRepo: enrollRepo}
}

func (s *courseService) CreateCourse(ctx context.Context, instructorID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := domain.NewCourse(req.Title, req.Description, req.Price, req.IsFree, instructorID)
	if err := course.Validate(); err != nil {
		return nil, err
	}

	if err := s.courseRepo.SaveCourse(ctx, course); err != nil {
		return nil, domain.NewInternalError("failed to save course", err)
	}

	logger.Get().Info("course created",
		zap.String("course_id", course.ID),
		zap.String("title", course.Title))

	return toCourseResponse(course), nil
}

func (s *courseService) GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load course", err)
	}
	if course == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("course not found: %s", id))
	}
	return toCourseResponse(course), nil
}

func (s *courseService) ListCourses(ctx context.Context) ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list courses", err)
	}

	responses := make([]*dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, toCourseResponse(course))
	}
	return responses, nil
}

func (s *courseService) Enroll(ctx context.Context, userID, courseID string) (*dto.EnrollmentResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load course", err)
	}
	if course == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("course not found: %s", courseID))
	}

	existing, err := s.enrollRepo.GetEnrollmentByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check enrollment", err)
	}
	if existing != nil {
		return nil, domain.NewAlreadyEnrolledError(userID, courseID)
	}

	enrollment := domain.NewEnrollment(userID, courseID, !course.IsFree)
	if err := s.enrollRepo.CreateEnrollment(ctx, enrollment); err != nil {
		// The unique constraint catches races the pre-check misses.
		return nil, err
	}

	logger.Get().Info("user enrolled",
		zap.String("user_id", userID),
		zap.String("course_id", courseID))

	return toEnrollmentResponse(enrollment), nil
}

func (s *courseService) ListEnrollments(ctx context.Context, userID string) ([]*dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollRepo.GetEnrollmentsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list enrollments", err)
	}

	responses := make([]*dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, toEnrollmentResponse(enrollment))
	}
	return responses, nil
}

func toCourseResponse(course *domain.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:           course.ID,
		Title:        course.Title,
		Description:  course.Description,
		Price:        course.Price,
		IsFree:       course.IsFree,
		InstructorID: course.InstructorID,
		CreatedAt:    course.CreatedAt,
	}
}

func toEnrollmentResponse(enrollment *domain.Enrollment) *dto.EnrollmentResponse {
	return &dto.EnrollmentResponse{
		ID:         enrollment.ID,
		UserID:     enrollment.UserID,
		CourseID:   enrollment.CourseID,
		Paid:       enrollment.Paid,
		Progress:   enrollment.Progress,
		Status:     enrollment.Status,
		EnrolledAt: enrollment.EnrolledAt,
	}
}
