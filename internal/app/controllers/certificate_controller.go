package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/auth"
	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/middleware"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

// CertificateController handles certificate issuance, revocation and the
// public QR verification endpoint.
type CertificateController struct {
	certificateService *services.CertificateService
	authzService       *auth.AuthorizationService
	logger             zerolog.Logger
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService *services.CertificateService, authzService *auth.AuthorizationService, logger zerolog.Logger) *CertificateController {
	return &CertificateController{
		certificateService: certificateService,
		authzService:       authzService,
		logger:             logger,
	}
}

// Issue issues a certificate for a completed course
// @Summary Issue certificate
// @Description The student must hold a completed enrollment for the course and no valid certificate. The PDF is generated in the background.
// @Tags certificates
// @Accept json
// @Produce json
// @Param request body dto.IssueCertificateRequest true "Student and course"
// @Success 201 {object} dto.APIResponse{data=models.Certificate} "Certificate issued"
// @Failure 404 {object} dto.APIResponse "Student or course not found"
// @Failure 409 {object} dto.APIResponse "Course not completed or certificate already exists"
// @Security BearerAuth
// @Router /certificates [post]
func (c *CertificateController) Issue(ctx *gin.Context) {
	var req dto.IssueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	certificate, err := c.certificateService.Issue(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentID", req.StudentID).Int64("courseID", req.CourseID).Msg("Failed to issue certificate")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("certificateNo", certificate.CertificateNo).Msg("Certificate issued")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(certificate))
}

// Get returns one certificate
// @Summary Get certificate
// @Tags certificates
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=models.Certificate} "Certificate"
// @Failure 404 {object} dto.APIResponse "Certificate not found"
// @Security BearerAuth
// @Router /certificates/{id} [get]
func (c *CertificateController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	certificate, err := c.certificateService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificate))
}

// List lists certificates with filters
// @Summary List certificates
// @Tags certificates
// @Produce json
// @Param studentId query int false "Filter by student"
// @Param courseId query int false "Filter by course"
// @Param revoked query bool false "Filter by revocation state"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Certificates"
// @Security BearerAuth
// @Router /certificates [get]
func (c *CertificateController) List(ctx *gin.Context) {
	var filter dto.CertificateFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	certificates, pagination, err := c.certificateService.List(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      certificates,
		Pagination: pagination,
	}))
}

// Mine lists the calling student's certificates
// @Summary My certificates
// @Description Lists the caller's non-revoked certificates. Student accounts only.
// @Tags certificates
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Certificate} "Certificates"
// @Failure 404 {object} dto.APIResponse "No student record for this account"
// @Security BearerAuth
// @Router /certificates/mine [get]
func (c *CertificateController) Mine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	certificates, err := c.certificateService.Mine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificates))
}

// Revoke withdraws a certificate
// @Summary Revoke certificate
// @Description A revoked certificate stops verifying through its QR code.
// @Tags certificates
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=models.Certificate} "Revoked certificate"
// @Failure 404 {object} dto.APIResponse "Certificate not found"
// @Failure 409 {object} dto.APIResponse "Already revoked"
// @Security BearerAuth
// @Router /certificates/{id}/revoke [post]
func (c *CertificateController) Revoke(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	certificate, err := c.certificateService.Revoke(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("certificateNo", certificate.CertificateNo).Msg("Certificate revoked")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificate))
}

// Reinstate restores a revoked certificate
// @Summary Reinstate certificate
// @Tags certificates
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=models.Certificate} "Reinstated certificate"
// @Failure 404 {object} dto.APIResponse "Certificate not found"
// @Security BearerAuth
// @Router /certificates/{id}/reinstate [post]
func (c *CertificateController) Reinstate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	certificate, err := c.certificateService.Reinstate(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificate))
}

// DownloadPDF serves a certificate's PDF
// @Summary Download certificate PDF
// @Description Staff may download any certificate; a student only their own.
// @Tags certificates
// @Produce application/pdf
// @Param id path int true "Certificate ID"
// @Success 200 {file} binary "Certificate PDF"
// @Failure 403 {object} dto.APIResponse "Not your certificate"
// @Failure 404 {object} dto.APIResponse "Certificate not found or PDF not ready"
// @Security BearerAuth
// @Router /certificates/{id}/pdf [get]
func (c *CertificateController) DownloadPDF(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	role := currentRole(ctx)
	if !role.IsStaff() && role != models.RoleStudent {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("Only staff or the certificate's student can download it")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}
	if !role.IsStaff() {
		certificate, err := c.certificateService.Get(ctx.Request.Context(), id)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		if err := c.authzService.ValidateStudentAccess(ctx.Request.Context(), certificate.StudentID, userID); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	path, err := c.certificateService.PDFPath(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.FileAttachment(path, "certificate.pdf")
}

// Verify is the public QR verification endpoint
// @Summary Verify certificate
// @Description Public endpoint behind the QR code on printed certificates. Revoked certificates verify as not found.
// @Tags certificates
// @Produce json
// @Param qrHash path string true "QR hash"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateVerificationResponse} "Certificate is valid"
// @Failure 404 {object} dto.CertificateVerificationResponse "No valid certificate for this code"
// @Router /verify/certificates/{qrHash} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	qrHash := ctx.Param("qrHash")
	if qrHash == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing QR hash")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	verification, err := c.certificateService.VerifyByQRHash(ctx.Request.Context(), qrHash)
	if err != nil {
		// QR scanner pages parse the valid flag, so the not-found path
		// answers with the same body shape instead of the error envelope.
		if errors.Is(err, apperrors.ErrCertificateNotFound) {
			respondVerificationNotFound(ctx)
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(verification))
}

// respondVerificationNotFound writes the 404 body for unknown or revoked
// QR hashes.
func respondVerificationNotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, dto.CertificateVerificationResponse{Valid: false})
}
