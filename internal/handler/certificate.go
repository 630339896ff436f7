package handler

import (
	"learnhub/internal/dto"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CertificateHandler handles certificate HTTP requests
type CertificateHandler struct {
	certService service.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler instance
func NewCertificateHandler(certService service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certService: certService}
}

// Issue godoc
// @Summary Issue a certificate
// @Description Manually issues a certificate for a user and course (admin only)
// @Tags certificate
// @Accept json
// @Produce json
// @Param request body dto.GenerateCertificateRequest true "Issuance request"
// @Success 201 {object} dto.Response
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /certificates [post]
func (h *CertificateHandler) Issue(c *fiber.Ctx) error {
	var req dto.GenerateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	cert, err := h.certService.Issue(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse("certificate issued", cert))
}

// Verify godoc
// @Summary Verify a certificate number
// @Description Public check; revoked and unknown numbers both verify false
// @Tags certificate
// @Produce json
// @Param number path string true "Certificate number"
// @Success 200 {object} dto.Response
// @Router /certificates/verify/{number} [get]
func (h *CertificateHandler) Verify(c *fiber.Ctx) error {
	result, err := h.certService.Verify(c.Context(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("verification result", result))
}

// Revoke godoc
// @Summary Revoke a certificate
// @Description Marks a certificate revoked with an audit reason (admin only)
// @Tags certificate
// @Accept json
// @Produce json
// @Param id path string true "Certificate ID"
// @Param request body dto.RevokeCertificateRequest true "Revocation reason"
// @Success 200 {object} dto.Response
// @Failure 404 {object} middleware.ErrorResponse
// @Router /certificates/{id}/revoke [post]
func (h *CertificateHandler) Revoke(c *fiber.Ctx) error {
	var req dto.RevokeCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.certService.Revoke(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("certificate revoked", result))
}

// GetMine godoc
// @Summary Get my certificate for a course
// @Tags certificate
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/{id}/certificate [get]
func (h *CertificateHandler) GetMine(c *fiber.Ctx) error {
	cert, err := h.certService.GetByUserAndCourse(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("certificate", cert))
}
