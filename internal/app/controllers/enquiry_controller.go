package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/middleware"
)

// EnquiryController handles the admission funnel before a student exists
type EnquiryController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewEnquiryController creates a new EnquiryController
func NewEnquiryController(studentService *services.StudentService, logger zerolog.Logger) *EnquiryController {
	return &EnquiryController{
		studentService: studentService,
		logger:         logger,
	}
}

// CreateEnquiry records a walk-in, phone or website enquiry. Public so
// the website contact form can post without an account.
// @Summary Create enquiry
// @Tags enquiries
// @Accept json
// @Produce json
// @Param request body dto.CreateEnquiryRequest true "Enquiry details"
// @Success 201 {object} dto.APIResponse{data=models.Enquiry} "Enquiry created"
// @Failure 400 {object} dto.APIResponse "Invalid request format"
// @Router /enquiries [post]
func (c *EnquiryController) CreateEnquiry(ctx *gin.Context) {
	var req dto.CreateEnquiryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enquiry, err := c.studentService.CreateEnquiry(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(enquiry))
}

// GetEnquiry returns one enquiry
// @Summary Get enquiry
// @Tags enquiries
// @Produce json
// @Param id path int true "Enquiry ID"
// @Success 200 {object} dto.APIResponse{data=models.Enquiry} "Enquiry"
// @Failure 404 {object} dto.APIResponse "Enquiry not found"
// @Security BearerAuth
// @Router /enquiries/{id} [get]
func (c *EnquiryController) GetEnquiry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enquiry, err := c.studentService.GetEnquiry(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enquiry))
}

// UpdateEnquiry updates an enquiry's details or follow-up status
// @Summary Update enquiry
// @Description Converted enquiries are immutable. Setting status to converted directly is rejected; use the convert operation.
// @Tags enquiries
// @Accept json
// @Produce json
// @Param id path int true "Enquiry ID"
// @Param request body dto.UpdateEnquiryRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Enquiry} "Updated enquiry"
// @Failure 404 {object} dto.APIResponse "Enquiry not found"
// @Failure 409 {object} dto.APIResponse "Enquiry already converted"
// @Security BearerAuth
// @Router /enquiries/{id} [put]
func (c *EnquiryController) UpdateEnquiry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEnquiryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enquiry, err := c.studentService.UpdateEnquiry(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enquiry))
}

// DeleteEnquiry removes an enquiry
// @Summary Delete enquiry
// @Tags enquiries
// @Produce json
// @Param id path int true "Enquiry ID"
// @Success 200 {object} dto.APIResponse "Enquiry deleted"
// @Failure 404 {object} dto.APIResponse "Enquiry not found"
// @Security BearerAuth
// @Router /enquiries/{id} [delete]
func (c *EnquiryController) DeleteEnquiry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteEnquiry(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Enquiry deleted"}))
}

// ListEnquiries lists enquiries with filters
// @Summary List enquiries
// @Tags enquiries
// @Produce json
// @Param status query string false "Filter by status" Enums(new, follow_up, converted, closed)
// @Param search query string false "Search in name and phone"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Enquiries"
// @Security BearerAuth
// @Router /enquiries [get]
func (c *EnquiryController) ListEnquiries(ctx *gin.Context) {
	var filter dto.EnquiryFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enquiries, pagination, err := c.studentService.ListEnquiries(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      enquiries,
		Pagination: pagination,
	}))
}

// ConvertEnquiry admits an enquiry as a student
// @Summary Convert enquiry to student
// @Description Creates the student and their user account from the enquiry, then marks the enquiry converted. Optionally enrolls into a batch.
// @Tags enquiries
// @Accept json
// @Produce json
// @Param id path int true "Enquiry ID"
// @Param request body dto.ConvertEnquiryRequest true "Admission details"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student admitted"
// @Failure 404 {object} dto.APIResponse "Enquiry not found"
// @Failure 409 {object} dto.APIResponse "Enquiry already converted or username taken"
// @Security BearerAuth
// @Router /enquiries/{id}/convert [post]
func (c *EnquiryController) ConvertEnquiry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ConvertEnquiryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.ConvertEnquiry(ctx.Request.Context(), id, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("enquiryID", id).Msg("Failed to convert enquiry")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("enquiryID", id).Str("regNo", student.RegNo).Msg("Enquiry converted to student")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewStudentResponse(student)))
}
