package handler

import (
	"learnhub/internal/dto"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin dashboard HTTP requests
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Overview godoc
// @Summary Admin dashboard overview
// @Description Returns platform totals, recent enrollments, revenue, and recent courses
// @Tags admin
// @Produce json
// @Success 200 {object} dto.Response
// @Router /admin/overview [get]
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.adminService.Overview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("overview", overview))
}

// EnrollmentsTrend godoc
// @Summary Enrollment trend
// @Description Day-bucketed enrollment counts for a 7d, 30d or 90d window
// @Tags admin
// @Produce json
// @Param range query string false "Range (7d, 30d, 90d); anything else means 30d" default(30d)
// @Success 200 {object} dto.Response
// @Router /admin/trends/enrollments [get]
func (h *AdminHandler) EnrollmentsTrend(c *fiber.Ctx) error {
	rangeKey, _ := c.Locals("validated_range").(string)
	trend, err := h.adminService.EnrollmentsTrend(c.Context(), rangeKey)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("enrollment trend", trend))
}

// TopCourses godoc
// @Summary Top courses
// @Description Courses ranked by student count, then revenue
// @Tags admin
// @Produce json
// @Param limit query int false "Row limit" default(10)
// @Success 200 {object} dto.Response
// @Router /admin/top-courses [get]
func (h *AdminHandler) TopCourses(c *fiber.Ctx) error {
	limit, _ := c.Locals("validated_limit").(int)
	rows, err := h.adminService.TopCourses(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("top courses", rows))
}

// RecentActivity godoc
// @Summary Recent activity feed
// @Description Merged enrollment and course creation events, newest first
// @Tags admin
// @Produce json
// @Param limit query int false "Row limit" default(20)
// @Success 200 {object} dto.Response
// @Router /admin/activity [get]
func (h *AdminHandler) RecentActivity(c *fiber.Ctx) error {
	limit, _ := c.Locals("validated_limit").(int)
	events, err := h.adminService.RecentActivity(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("recent activity", events))
}
