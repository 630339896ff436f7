package service

import (
	"context"
	"fmt"
	"time"

	"learnhub/internal/domain"
	"learnhub/internal/dto"
	"learnhub/internal/logger"

	"go.uber.org/zap"
)

// AttemptService owns the quiz-attempt lifecycle: start, answer, complete.
type AttemptService interface {
	// StartAttempt opens a new attempt for the user, enforcing the quiz's
	// max-attempts policy. Abandoned attempts still count.
	StartAttempt(ctx context.Context, userID, quizID string) (*dto.AttemptResponse, error)

	// SubmitAnswer records the selected option for one question of an open
	// attempt. Resubmitting a question replaces the earlier answer.
	SubmitAnswer(ctx context.Context, userID, attemptID string, req *dto.SubmitAnswerRequest) (*dto.AttemptResponse, error)

	// CompleteAttempt finalizes an open attempt, scores it against the
	// question snapshot, and issues a certificate when the pass also
	// completes the course.
	CompleteAttempt(ctx context.Context, userID, attemptID string) (*dto.CompleteAttemptResponse, error)

	// ListAttempts returns the user's attempts for a quiz, newest first.
	ListAttempts(ctx context.Context, userID, quizID string) ([]*dto.AttemptResponse, error)
}

type attemptService struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	enrollRepo  domain.EnrollmentRepository
	certService CertificateService
	txManager   domain.TransactionManager
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	quizRepo domain.QuizRepository,
	attemptRepo domain.AttemptRepository,
	enrollRepo domain.EnrollmentRepository,
	certService CertificateService,
	txManager domain.TransactionManager,
) AttemptService {
	return &attemptService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		enrollRepo:  enrollRepo,
		certService: certService,
		txManager:   txManager,
	}
}

func (s *attemptService) StartAttempt(ctx context.Context, userID, quizID string) (*dto.AttemptResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("quiz not found: %s", quizID))
	}

	enrollment, err := s.enrollRepo.GetEnrollmentByUserAndCourse(ctx, userID, quiz.CourseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check enrollment", err)
	}
	if enrollment == nil {
		return nil, domain.NewForbiddenError("user is not enrolled in this course")
	}

	count, err := s.attemptRepo.CountAttempts(ctx, userID, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to count attempts", err)
	}
	if quiz.MaxAttempts != nil && count >= *quiz.MaxAttempts {
		return nil, domain.NewAttemptLimitExceededError(quizID, *quiz.MaxAttempts)
	}

	attempt := domain.NewQuizAttempt(userID, quizID, count+1, len(quiz.Questions))
	if err := s.attemptRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, domain.NewInternalError("failed to create attempt", err)
	}

	logger.Get().Info("quiz attempt started",
		zap.String("attempt_id", attempt.ID),
		zap.String("quiz_id", quizID),
		zap.Int("attempt_number", attempt.AttemptNumber))

	return toAttemptResponse(attempt), nil
}

func (s *attemptService) SubmitAnswer(ctx context.Context, userID, attemptID string, req *dto.SubmitAnswerRequest) (*dto.AttemptResponse, error) {
	if req.QuestionID == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("questionId")}
	}
	if req.SelectedOptionID == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("selectedOptionId")}
	}

	attempt, err := s.loadOwnedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed {
		return nil, domain.NewAttemptAlreadyCompletedError(attemptID)
	}

	quiz, err := s.quizRepo.GetQuizByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("quiz not found: %s", attempt.QuizID))
	}

	question := quiz.QuestionByID(req.QuestionID)
	if question == nil {
		return nil, domain.NewQuestionNotInQuizError(req.QuestionID)
	}

	option := question.OptionByID(req.SelectedOptionID)
	if option == nil {
		return nil, domain.NewOptionNotFoundError(req.QuestionID, req.SelectedOptionID)
	}

	// Correctness is graded at submission time from the option flag.
	answer := &domain.QuizAnswer{
		AttemptID:        attemptID,
		QuestionID:       req.QuestionID,
		SelectedOptionID: req.SelectedOptionID,
		IsCorrect:        option.IsCorrect,
		AnsweredAt:       time.Now(),
	}
	if err := s.attemptRepo.UpsertAnswer(ctx, answer); err != nil {
		return nil, domain.NewInternalError("failed to save answer", err)
	}

	// Reload so the answered count reflects the upsert.
	attempt, err = s.attemptRepo.GetAttemptByID(ctx, attemptID)
	if err != nil || attempt == nil {
		return nil, domain.NewInternalError("failed to reload attempt", err)
	}
	return toAttemptResponse(attempt), nil
}

func (s *attemptService) CompleteAttempt(ctx context.Context, userID, attemptID string) (*dto.CompleteAttemptResponse, error) {
	var completed *domain.QuizAttempt
	var quiz *domain.Quiz

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		attempt, err := s.loadOwnedAttempt(txCtx, userID, attemptID)
		if err != nil {
			return err
		}
		if attempt.Completed {
			return domain.NewAttemptAlreadyCompletedError(attemptID)
		}

		quiz, err = s.quizRepo.GetQuizByID(txCtx, attempt.QuizID)
		if err != nil {
			return domain.NewInternalError("failed to load quiz", err)
		}
		if quiz == nil {
			return domain.NewNotFoundError(fmt.Sprintf("quiz not found: %s", attempt.QuizID))
		}

		correct, percentage := attempt.Score()
		attempt.Finalize(correct, percentage, quiz.IsPassing(percentage), time.Now())

		if err := s.attemptRepo.FinalizeAttempt(txCtx, attempt); err != nil {
			return domain.NewInternalError("failed to finalize attempt", err)
		}
		completed = attempt
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.CompleteAttemptResponse{
		Attempt: *toAttemptResponse(completed),
		Passed:  completed.Passed,
		Score:   completed.ScorePercentage,
	}

	// Certificate issuance rides on a pass but never fails the completion;
	// an admin can re-issue manually.
	if completed.Passed {
		resp.CertificateGenerated = s.issueCertificate(ctx, completed, quiz)
	}

	logger.Get().Info("quiz attempt completed",
		zap.String("attempt_id", completed.ID),
		zap.Float64("score", completed.ScorePercentage),
		zap.Bool("passed", completed.Passed))

	return resp, nil
}

func (s *attemptService) issueCertificate(ctx context.Context, attempt *domain.QuizAttempt, quiz *domain.Quiz) bool {
	req := &dto.GenerateCertificateRequest{
		UserID:     attempt.UserID,
		CourseID:   quiz.CourseID,
		FinalScore: attempt.ScorePercentage,
		QuizScore:  attempt.ScorePercentage,
	}
	if _, err := s.certService.Issue(ctx, req); err != nil {
		logger.Get().Warn("certificate_issuance_failed",
			zap.String("user_id", attempt.UserID),
			zap.String("course_id", quiz.CourseID),
			zap.String("attempt_id", attempt.ID),
			zap.Error(err))
		return false
	}
	return true
}

func (s *attemptService) ListAttempts(ctx context.Context, userID, quizID string) ([]*dto.AttemptResponse, error) {
	attempts, err := s.attemptRepo.GetAttemptsByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}

	responses := make([]*dto.AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		responses = append(responses, toAttemptResponse(attempt))
	}
	return responses, nil
}

func (s *attemptService) loadOwnedAttempt(ctx context.Context, userID, attemptID string) (*domain.QuizAttempt, error) {
	attempt, err := s.attemptRepo.GetAttemptByID(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("attempt not found: %s", attemptID))
	}
	if attempt.UserID != userID {
		return nil, domain.NewForbiddenError("attempt belongs to another user")
	}
	return attempt, nil
}

func toAttemptResponse(attempt *domain.QuizAttempt) *dto.AttemptResponse {
	return &dto.AttemptResponse{
		ID:               attempt.ID,
		UserID:           attempt.UserID,
		QuizID:           attempt.QuizID,
		AttemptNumber:    attempt.AttemptNumber,
		TotalQuestions:   attempt.TotalQuestions,
		CorrectAnswers:   attempt.CorrectAnswers,
		ScorePercentage:  attempt.ScorePercentage,
		Completed:        attempt.Completed,
		Passed:           attempt.Passed,
		StartedAt:        attempt.StartedAt,
		CompletedAt:      attempt.CompletedAt,
		TimeTakenMinutes: attempt.TimeTakenMinutes,
		AnsweredCount:    len(attempt.Answers),
	}
}
