package service

import (
	"context"
	"testing"

	"learnhub/internal/domain"
	"learnhub/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCourseServiceForTest() (CourseService, *MockCourseRepository, *MockEnrollmentRepository) {
	courseRepo := new(MockCourseRepository)
	enrollRepo := new(MockEnrollmentRepository)
	svc := NewCourseService(courseRepo, enrollRepo)
	return svc, courseRepo, enrollRepo
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a valid course", func(t *testing.T) {
		svc, courseRepo, _ := newCourseServiceForTest()
		courseRepo.On("SaveCourse", ctx, mock.AnythingOfType("*domain.Course")).Return(nil)

		resp, err := svc.CreateCourse(ctx, "instructor-1", &dto.CreateCourseRequest{
			Title:  "Practical Go",
			Price:  49.99,
			IsFree: false,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Practical Go", resp.Title)
		assert.Equal(t, "instructor-1", resp.InstructorID)
	})

	t.Run("paid course with zero price is rejected", func(t *testing.T) {
		svc, courseRepo, _ := newCourseServiceForTest()

		_, err := svc.CreateCourse(ctx, "instructor-1", &dto.CreateCourseRequest{
			Title: "Broken pricing",
			Price: 0,
		})
		var errs domain.ValidationErrors
		assert.ErrorAs(t, err, &errs)
		courseRepo.AssertNotCalled(t, "SaveCourse", mock.Anything, mock.Anything)
	})
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()

	t.Run("enrolls into a free course unpaid", func(t *testing.T) {
		svc, courseRepo, enrollRepo := newCourseServiceForTest()
		courseRepo.On("GetCourseByID", ctx, "course-1").Return(&domain.Course{
			ID: "course-1", Title: "Intro", IsFree: true,
		}, nil)
		enrollRepo.On("GetEnrollmentByUserAndCourse", ctx, "user-1", "course-1").Return(nil, nil)
		enrollRepo.On("CreateEnrollment", ctx, mock.MatchedBy(func(e *domain.Enrollment) bool {
			return !e.Paid && e.Status == domain.EnrollmentStatusEnrolled
		})).Return(nil)

		resp, err := svc.Enroll(ctx, "user-1", "course-1")
		assert.NoError(t, err)
		assert.False(t, resp.Paid)
		assert.Equal(t, domain.EnrollmentStatusEnrolled, resp.Status)
	})

	t.Run("duplicate enrollment is rejected", func(t *testing.T) {
		svc, courseRepo, enrollRepo := newCourseServiceForTest()
		courseRepo.On("GetCourseByID", ctx, "course-1").Return(&domain.Course{ID: "course-1", IsFree: true}, nil)
		enrollRepo.On("GetEnrollmentByUserAndCourse", ctx, "user-1", "course-1").
			Return(&domain.Enrollment{ID: "enr-1"}, nil)

		_, err := svc.Enroll(ctx, "user-1", "course-1")
		var domainErr *domain.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeAlreadyEnrolled, domainErr.Code)
	})

	t.Run("unknown course is not found", func(t *testing.T) {
		svc, courseRepo, _ := newCourseServiceForTest()
		courseRepo.On("GetCourseByID", ctx, "missing").Return(nil, nil)

		_, err := svc.Enroll(ctx, "user-1", "missing")
		var domainErr *domain.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	})
}

func TestQuizServiceCreateAndView(t *testing.T) {
	ctx := context.Background()

	newQuizServiceForTest := func() (QuizService, *MockQuizRepository, *MockCourseRepository, *MockTransactionManager) {
		quizRepo := new(MockQuizRepository)
		courseRepo := new(MockCourseRepository)
		txManager := new(MockTransactionManager)
		return NewQuizService(quizRepo, courseRepo, txManager), quizRepo, courseRepo, txManager
	}

	t.Run("creates quiz tree inside a transaction", func(t *testing.T) {
		svc, quizRepo, courseRepo, txManager := newQuizServiceForTest()
		courseRepo.On("GetCourseByID", ctx, "course-1").Return(&domain.Course{ID: "course-1"}, nil)
		txManager.On("WithTransaction", ctx).Return(nil)
		quizRepo.On("SaveQuiz", ctx, mock.AnythingOfType("*domain.Quiz")).Return(nil)

		resp, err := svc.CreateQuiz(ctx, &dto.CreateQuizRequest{
			CourseID:     "course-1",
			Title:        "Final exam",
			PassingScore: 80,
			Questions: []dto.CreateQuestionRequest{
				{
					Text:   "2+2?",
					Type:   string(domain.QuestionTypeSingleChoice),
					Points: 1,
					Options: []dto.CreateOptionRequest{
						{Text: "4", IsCorrect: true},
						{Text: "5"},
					},
				},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, 80.0, resp.PassingScore)
		assert.Len(t, resp.Questions, 1)
	})

	t.Run("learner view strips correctness flags", func(t *testing.T) {
		svc, quizRepo, _, _ := newQuizServiceForTest()
		quizRepo.On("GetQuizByID", ctx, "quiz-1").Return(buildQuizFixture(), nil)

		resp, err := svc.GetQuiz(ctx, "quiz-1", false)
		assert.NoError(t, err)
		for _, q := range resp.Questions {
			for _, o := range q.Options {
				assert.Nil(t, o.IsCorrect)
			}
		}
	})

	t.Run("admin view carries correctness flags", func(t *testing.T) {
		svc, quizRepo, _, _ := newQuizServiceForTest()
		quizRepo.On("GetQuizByID", ctx, "quiz-1").Return(buildQuizFixture(), nil)

		resp, err := svc.GetQuiz(ctx, "quiz-1", true)
		assert.NoError(t, err)
		assert.NotNil(t, resp.Questions[0].Options[0].IsCorrect)
		assert.True(t, *resp.Questions[0].Options[0].IsCorrect)
	})
}
