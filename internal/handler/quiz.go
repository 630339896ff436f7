package handler

import (
	"learnhub/internal/domain"
	"learnhub/internal/dto"
	"learnhub/internal/middleware"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz and quiz-attempt HTTP requests
type QuizHandler struct {
	quizService    service.QuizService
	attemptService service.AttemptService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, attemptService service.AttemptService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		attemptService: attemptService,
	}
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	return userID
}

func isAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals(middleware.UserRoleKey).(string)
	return role == domain.RoleAdmin
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Creates a quiz with its questions and options (admin only)
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz definition"
// @Success 201 {object} dto.Response
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	quiz, err := h.quizService.CreateQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse("quiz created", quiz))
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns a quiz with its questions; correctness flags only for admins
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.GetQuiz(c.Context(), c.Params("id"), isAdmin(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("quiz", quiz))
}

// ListQuizzesByCourse godoc
// @Summary List a course's quizzes
// @Tags quiz
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.Response
// @Router /courses/{id}/quizzes [get]
func (h *QuizHandler) ListQuizzesByCourse(c *fiber.Ctx) error {
	quizzes, err := h.quizService.ListQuizzesByCourse(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("quizzes", quizzes))
}

// StartAttempt godoc
// @Summary Start a quiz attempt
// @Description Opens a new attempt; enrollment and the max-attempts policy are enforced
// @Tags attempt
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 201 {object} dto.Response
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/attempts [post]
func (h *QuizHandler) StartAttempt(c *fiber.Ctx) error {
	attempt, err := h.attemptService.StartAttempt(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse("attempt started", attempt))
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Records the selected option for one question; resubmission replaces the earlier answer
// @Tags attempt
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.Response
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /attempts/{id}/answers [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	attempt, err := h.attemptService.SubmitAnswer(c.Context(), currentUserID(c), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("answer recorded", attempt))
}

// CompleteAttempt godoc
// @Summary Complete a quiz attempt
// @Description Finalizes and scores the attempt; a passing score on course completion issues a certificate
// @Tags attempt
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.Response
// @Failure 409 {object} middleware.ErrorResponse
// @Router /attempts/{id}/complete [post]
func (h *QuizHandler) CompleteAttempt(c *fiber.Ctx) error {
	result, err := h.attemptService.CompleteAttempt(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("attempt completed", result))
}

// ListAttempts godoc
// @Summary List my attempts for a quiz
// @Tags attempt
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.Response
// @Router /quizzes/{id}/attempts [get]
func (h *QuizHandler) ListAttempts(c *fiber.Ctx) error {
	attempts, err := h.attemptService.ListAttempts(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("attempts", attempts))
}
