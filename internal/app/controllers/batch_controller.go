package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/middleware"
)

// BatchController handles batches and their enrollments
type BatchController struct {
	batchService *services.BatchService
	logger       zerolog.Logger
}

// NewBatchController creates a new BatchController
func NewBatchController(batchService *services.BatchService, logger zerolog.Logger) *BatchController {
	return &BatchController{
		batchService: batchService,
		logger:       logger,
	}
}

// CreateBatch schedules a new batch of a course
// @Summary Create batch
// @Description Schedules a batch. When endDate is omitted it is derived from the course duration.
// @Tags batches
// @Accept json
// @Produce json
// @Param request body dto.CreateBatchRequest true "Batch details"
// @Success 201 {object} dto.APIResponse{data=dto.BatchResponse} "Batch created"
// @Failure 404 {object} dto.APIResponse "Course or trainer not found"
// @Failure 409 {object} dto.APIResponse "Batch code already exists"
// @Security BearerAuth
// @Router /batches [post]
func (c *BatchController) CreateBatch(ctx *gin.Context) {
	var req dto.CreateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	batch, err := c.batchService.CreateBatch(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("code", req.Code).Msg("Failed to create batch")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("code", batch.Code).Msg("Batch created")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(batch))
}

// GetBatch returns one batch with occupancy info
// @Summary Get batch
// @Tags batches
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResponse} "Batch"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /batches/{id} [get]
func (c *BatchController) GetBatch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	batch, err := c.batchService.GetBatch(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(batch))
}

// UpdateBatch updates a batch's schedule, trainer or capacity
// @Summary Update batch
// @Tags batches
// @Accept json
// @Produce json
// @Param id path int true "Batch ID"
// @Param request body dto.UpdateBatchRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResponse} "Updated batch"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /batches/{id} [put]
func (c *BatchController) UpdateBatch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	batch, err := c.batchService.UpdateBatch(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(batch))
}

// DeleteBatch removes a batch
// @Summary Delete batch
// @Tags batches
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse "Batch deleted"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /batches/{id} [delete]
func (c *BatchController) DeleteBatch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.batchService.DeleteBatch(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Batch deleted"}))
}

// ListBatches lists batches with filters
// @Summary List batches
// @Tags batches
// @Produce json
// @Param courseId query int false "Filter by course"
// @Param trainerId query int false "Filter by trainer"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Batches"
// @Security BearerAuth
// @Router /batches [get]
func (c *BatchController) ListBatches(ctx *gin.Context) {
	var filter dto.BatchFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	batches, pagination, err := c.batchService.ListBatches(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      batches,
		Pagination: pagination,
	}))
}

// EnrollStudent enrolls a student into a batch
// @Summary Enroll student
// @Description Fails when the batch is at capacity or the student is already enrolled.
// @Tags batches
// @Accept json
// @Produce json
// @Param id path int true "Batch ID"
// @Param request body dto.EnrollStudentRequest true "Student to enroll"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Enrollment created"
// @Failure 404 {object} dto.APIResponse "Batch or student not found"
// @Failure 409 {object} dto.APIResponse "Batch full or already enrolled"
// @Security BearerAuth
// @Router /batches/{id}/enroll [post]
func (c *BatchController) EnrollStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.EnrollStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollment, err := c.batchService.EnrollStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("batchID", id).Int64("studentID", req.StudentID).Msg("Enrollment failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(enrollment))
}

// UpdateEnrollment changes an enrollment's status
// @Summary Update enrollment status
// @Description Re-activating a dropped enrollment re-checks the batch capacity.
// @Tags batches
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body dto.UpdateEnrollmentRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Updated enrollment"
// @Failure 404 {object} dto.APIResponse "Enrollment not found"
// @Failure 409 {object} dto.APIResponse "Batch full"
// @Security BearerAuth
// @Router /enrollments/{id} [put]
func (c *BatchController) UpdateEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollment, err := c.batchService.UpdateEnrollment(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollment))
}

// ListEnrollments returns a batch's enrollments
// @Summary List batch enrollments
// @Tags batches
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /batches/{id}/enrollments [get]
func (c *BatchController) ListEnrollments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollments, err := c.batchService.ListBatchEnrollments(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}
