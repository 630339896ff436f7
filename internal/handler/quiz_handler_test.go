package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"learnhub/internal/domain"
	"learnhub/internal/dto"
	"learnhub/internal/handler"
	"learnhub/internal/middleware"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAttemptService struct {
	mock.Mock
}

var _ service.AttemptService = (*MockAttemptService)(nil)

func (m *MockAttemptService) StartAttempt(ctx context.Context, userID, quizID string) (*dto.AttemptResponse, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AttemptResponse), args.Error(1)
}

func (m *MockAttemptService) SubmitAnswer(ctx context.Context, userID, attemptID string, req *dto.SubmitAnswerRequest) (*dto.AttemptResponse, error) {
	args := m.Called(ctx, userID, attemptID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AttemptResponse), args.Error(1)
}

func (m *MockAttemptService) CompleteAttempt(ctx context.Context, userID, attemptID string) (*dto.CompleteAttemptResponse, error) {
	args := m.Called(ctx, userID, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CompleteAttemptResponse), args.Error(1)
}

func (m *MockAttemptService) ListAttempts(ctx context.Context, userID, quizID string) ([]*dto.AttemptResponse, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.AttemptResponse), args.Error(1)
}

type MockQuizService struct {
	mock.Mock
}

var _ service.QuizService = (*MockQuizService)(nil)

func (m *MockQuizService) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetQuiz(ctx context.Context, id string, includeAnswers bool) (*dto.QuizResponse, error) {
	args := m.Called(ctx, id, includeAnswers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) ListQuizzesByCourse(ctx context.Context, courseID string) ([]*dto.QuizResponse, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.QuizResponse), args.Error(1)
}

func newTestApp(quizSvc service.QuizService, attemptSvc service.AttemptService, userID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	// Stand-in for the auth middleware.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, userID)
		return c.Next()
	})

	h := handler.NewQuizHandler(quizSvc, attemptSvc)
	app.Post("/api/quizzes/:id/attempts", h.StartAttempt)
	app.Post("/api/attempts/:id/answers", h.SubmitAnswer)
	app.Post("/api/attempts/:id/complete", h.CompleteAttempt)
	app.Get("/api/quizzes/:id", h.GetQuiz)
	return app
}

func TestStartAttemptHandler(t *testing.T) {
	t.Run("returns 201 with envelope", func(t *testing.T) {
		quizSvc := new(MockQuizService)
		attemptSvc := new(MockAttemptService)
		attemptSvc.On("StartAttempt", mock.Anything, "user-1", "quiz-1").
			Return(&dto.AttemptResponse{ID: "attempt-1", AttemptNumber: 1}, nil)

		app := newTestApp(quizSvc, attemptSvc, "user-1")
		req := httptest.NewRequest("POST", "/api/quizzes/quiz-1/attempts", nil)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var envelope dto.Response
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.True(t, envelope.Success)
	})

	t.Run("attempt limit maps to 422", func(t *testing.T) {
		quizSvc := new(MockQuizService)
		attemptSvc := new(MockAttemptService)
		attemptSvc.On("StartAttempt", mock.Anything, "user-1", "quiz-1").
			Return(nil, domain.NewAttemptLimitExceededError("quiz-1", 3))

		app := newTestApp(quizSvc, attemptSvc, "user-1")
		req := httptest.NewRequest("POST", "/api/quizzes/quiz-1/attempts", nil)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

		var errResp middleware.ErrorResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, string(domain.CodeAttemptLimitExceeded), errResp.Code)
	})
}

func TestSubmitAnswerHandler(t *testing.T) {
	t.Run("completed attempt maps to 409", func(t *testing.T) {
		quizSvc := new(MockQuizService)
		attemptSvc := new(MockAttemptService)
		attemptSvc.On("SubmitAnswer", mock.Anything, "user-1", "attempt-1", mock.Anything).
			Return(nil, domain.NewAttemptAlreadyCompletedError("attempt-1"))

		app := newTestApp(quizSvc, attemptSvc, "user-1")
		body, _ := json.Marshal(dto.SubmitAnswerRequest{QuestionID: "q1", SelectedOptionID: "o1"})
		req := httptest.NewRequest("POST", "/api/attempts/attempt-1/answers", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("validation errors map to 400 with field list", func(t *testing.T) {
		quizSvc := new(MockQuizService)
		attemptSvc := new(MockAttemptService)
		attemptSvc.On("SubmitAnswer", mock.Anything, "user-1", "attempt-1", mock.Anything).
			Return(nil, domain.ValidationErrors{domain.NewMissingFieldError("questionId")})

		app := newTestApp(quizSvc, attemptSvc, "user-1")
		req := httptest.NewRequest("POST", "/api/attempts/attempt-1/answers", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp middleware.ValidationErrorResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, "questionId", errResp.Errors[0].Field)
	})
}

func TestGetQuizHandlerStripsAnswersForLearners(t *testing.T) {
	quizSvc := new(MockQuizService)
	attemptSvc := new(MockAttemptService)
	quizSvc.On("GetQuiz", mock.Anything, "quiz-1", false).
		Return(&dto.QuizResponse{ID: "quiz-1"}, nil)

	app := newTestApp(quizSvc, attemptSvc, "user-1")
	req := httptest.NewRequest("GET", "/api/quizzes/quiz-1", nil)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	quizSvc.AssertCalled(t, "GetQuiz", mock.Anything, "quiz-1", false)
}
