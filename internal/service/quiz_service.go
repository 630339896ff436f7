package service

import (
	"context"
	"fmt"

	"learnhub/internal/domain"
	"learnhub/internal/dto"
	"learnhub/internal/logger"

	"go.uber.org/zap"
)

// QuizService owns quiz authoring and the learner-facing quiz views.
type QuizService interface {
	// CreateQuiz persists a quiz with its full question tree in one
	// transaction.
	CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)

	// GetQuiz returns a quiz with questions and options. Correctness flags
	// are stripped unless includeAnswers is set (admin view).
	GetQuiz(ctx context.Context, id string, includeAnswers bool) (*dto.QuizResponse, error)

	// ListQuizzesByCourse lists a course's quizzes without question trees.
	ListQuizzesByCourse(ctx context.Context, courseID string) ([]*dto.QuizResponse, error)
}

type quizService struct {
	quizRepo   domain.QuizRepository
	courseRepo domain.CourseRepository
	txManager  domain.TransactionManager
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizRepo domain.QuizRepository, courseRepo domain.CourseRepository, txManager domain.TransactionManager) QuizService {
	return &quizService{quizRepo: quizRepo, courseRepo: courseRepo, txManager: txManager}
}

func (s *quizService) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load course", err)
	}
	if course == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("course not found: %s", req.CourseID))
	}

	quiz := domain.NewQuiz(req.CourseID, req.Title, req.PassingScore)
	quiz.TimeLimitMinutes = req.TimeLimitMinutes
	quiz.MaxAttempts = req.MaxAttempts
	for _, q := range req.Questions {
		question := &domain.Question{
			Text:       q.Text,
			Type:       domain.QuestionType(q.Type),
			OrderIndex: q.OrderIndex,
			Points:     q.Points,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, &domain.Option{
				Text:       o.Text,
				IsCorrect:  o.IsCorrect,
				OrderIndex: o.OrderIndex,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	for _, question := range quiz.Questions {
		if err := question.Validate(); err != nil {
			return nil, err
		}
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.quizRepo.SaveQuiz(txCtx, quiz)
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}

	logger.Get().Info("quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("course_id", quiz.CourseID),
		zap.Int("questions", len(quiz.Questions)))

	return toQuizResponse(quiz, true), nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string, includeAnswers bool) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("quiz not found: %s", id))
	}
	return toQuizResponse(quiz, includeAnswers), nil
}

func (s *quizService) ListQuizzesByCourse(ctx context.Context, courseID string) ([]*dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.GetQuizzesByCourse(ctx, courseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}

	responses := make([]*dto.QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, toQuizResponse(quiz, false))
	}
	return responses, nil
}

func toQuizResponse(quiz *domain.Quiz, includeAnswers bool) *dto.QuizResponse {
	resp := &dto.QuizResponse{
		ID:               quiz.ID,
		CourseID:         quiz.CourseID,
		Title:            quiz.Title,
		PassingScore:     quiz.PassingScore,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		MaxAttempts:      quiz.MaxAttempts,
		Questions:        make([]dto.QuestionResponse, 0, len(quiz.Questions)),
	}
	for _, question := range quiz.Questions {
		qr := dto.QuestionResponse{
			ID:         question.ID,
			Text:       question.Text,
			Type:       string(question.Type),
			OrderIndex: question.OrderIndex,
			Points:     question.Points,
			Options:    make([]dto.OptionResponse, 0, len(question.Options)),
		}
		for _, option := range question.Options {
			or := dto.OptionResponse{
				ID:         option.ID,
				Text:       option.Text,
				OrderIndex: option.OrderIndex,
			}
			if includeAnswers {
				isCorrect := option.IsCorrect
				or.IsCorrect = &isCorrect
			}
			qr.Options = append(qr.Options, or)
		}
		resp.Questions = append(resp.Questions, qr)
	}
	return resp
}
