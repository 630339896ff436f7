package handler

import (
	"learnhub/internal/dto"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course and enrollment HTTP requests
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new CourseHandler instance
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates a catalog course (admin only)
// @Tags course
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course definition"
// @Success 201 {object} dto.Response
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.courseService.CreateCourse(c.Context(), currentUserID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse("course created", course))
}

// GetCourse godoc
// @Summary Get a course
// @Tags course
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	course, err := h.courseService.GetCourse(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("course", course))
}

// ListCourses godoc
// @Summary List courses
// @Tags course
// @Produce json
// @Success 200 {object} dto.Response
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.courseService.ListCourses(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("courses", courses))
}

// Enroll godoc
// @Summary Enroll into a course
// @Tags enrollment
// @Produce json
// @Param id path string true "Course ID"
// @Success 201 {object} dto.Response
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /courses/{id}/enroll [post]
func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	enrollment, err := h.courseService.Enroll(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse("enrolled", enrollment))
}

// ListMyEnrollments godoc
// @Summary List my enrollments
// @Tags enrollment
// @Produce json
// @Success 200 {object} dto.Response
// @Router /enrollments [get]
func (h *CourseHandler) ListMyEnrollments(c *fiber.Ctx) error {
	enrollments, err := h.courseService.ListEnrollments(c.Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("enrollments", enrollments))
}
