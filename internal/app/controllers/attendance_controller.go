package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/auth"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AttendanceController handles daily attendance sheets and their summaries
type AttendanceController struct {
	attendanceService *services.AttendanceService
	authzService      *auth.AuthorizationService
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(
	attendanceService *services.AttendanceService,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		authzService:      authzService,
		logger:            logger,
	}
}

// RecordAttendance records a batch's sheet for one date
// @Summary Record attendance
// @Description Records one sheet per batch per date. Staff may record any batch, trainers only their own. Completing the required present days auto-completes the enrollment.
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path int true "Batch ID"
// @Param request body dto.RecordAttendanceRequest true "Date and per-student marks"
// @Success 201 {object} dto.APIResponse{data=models.Attendance} "Sheet recorded"
// @Failure 400 {object} dto.APIResponse "Student not in batch or duplicate entry"
// @Failure 403 {object} dto.APIResponse "Not the batch trainer"
// @Failure 409 {object} dto.APIResponse "Sheet already exists for this date"
// @Security BearerAuth
// @Router /batches/{id}/attendance [post]
func (c *AttendanceController) RecordAttendance(ctx *gin.Context) {
	batchID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.authzService.ValidateBatchAccess(ctx.Request.Context(), batchID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	sheet, err := c.attendanceService.RecordAttendance(ctx.Request.Context(), batchID, userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("batchID", batchID).Msg("Failed to record attendance")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(sheet))
}

// GetSheet returns one attendance sheet with its entries
// @Summary Get attendance sheet
// @Tags attendance
// @Produce json
// @Param id path int true "Sheet ID"
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Sheet"
// @Failure 404 {object} dto.APIResponse "Sheet not found"
// @Security BearerAuth
// @Router /attendance/{id} [get]
func (c *AttendanceController) GetSheet(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sheet, err := c.attendanceService.GetSheet(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sheet))
}

// UpdateSheet replaces the entries of an existing sheet
// @Summary Update attendance sheet
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path int true "Sheet ID"
// @Param request body dto.UpdateAttendanceRequest true "Replacement entries"
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Updated sheet"
// @Failure 403 {object} dto.APIResponse "Not the batch trainer"
// @Failure 404 {object} dto.APIResponse "Sheet not found"
// @Security BearerAuth
// @Router /attendance/{id} [put]
func (c *AttendanceController) UpdateSheet(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	sheet, err := c.attendanceService.GetSheet(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.authzService.ValidateBatchAccess(ctx.Request.Context(), sheet.BatchID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	updated, err := c.attendanceService.UpdateAttendance(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// DeleteSheet removes an attendance sheet
// @Summary Delete attendance sheet
// @Tags attendance
// @Produce json
// @Param id path int true "Sheet ID"
// @Success 200 {object} dto.APIResponse "Sheet deleted"
// @Failure 404 {object} dto.APIResponse "Sheet not found"
// @Security BearerAuth
// @Router /attendance/{id} [delete]
func (c *AttendanceController) DeleteSheet(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.attendanceService.DeleteSheet(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Attendance sheet deleted"}))
}

// ListBatchAttendance lists a batch's sheets in a date window
// @Summary List batch attendance
// @Tags attendance
// @Produce json
// @Param id path int true "Batch ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Sheets"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /batches/{id}/attendance [get]
func (c *AttendanceController) ListBatchAttendance(ctx *gin.Context) {
	batchID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var filter dto.AttendanceFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	sheets, err := c.attendanceService.ListBatchAttendance(ctx.Request.Context(), batchID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sheets))
}

// BatchSummary returns a batch's per-student attendance aggregates
// @Summary Batch attendance summary
// @Tags attendance
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.BatchAttendanceSummaryResponse} "Summary"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /batches/{id}/attendance/summary [get]
func (c *AttendanceController) BatchSummary(ctx *gin.Context) {
	batchID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.attendanceService.BatchSummary(ctx.Request.Context(), batchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// BatchTimeline returns the per-day present percentage for a batch
// @Summary Batch attendance timeline
// @Tags attendance
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.BatchAttendanceTimelineResponse} "Timeline"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /batches/{id}/attendance/timeline [get]
func (c *AttendanceController) BatchTimeline(ctx *gin.Context) {
	batchID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	timeline, err := c.attendanceService.BatchTimeline(ctx.Request.Context(), batchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(timeline))
}

// StudentSummary returns one student's attendance aggregate for a batch
// @Summary Student attendance summary
// @Tags attendance
// @Produce json
// @Param id path int true "Student ID"
// @Param batchId query int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentAttendanceSummary} "Summary"
// @Failure 403 {object} dto.APIResponse "Not your record"
// @Failure 404 {object} dto.APIResponse "Student or batch not found"
// @Security BearerAuth
// @Router /students/{id}/attendance [get]
func (c *AttendanceController) StudentSummary(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.authzService.ValidateStudentAccess(ctx.Request.Context(), studentID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var query struct {
		BatchID int64 `form:"batchId" binding:"required"`
	}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	summary, err := c.attendanceService.StudentSummary(ctx.Request.Context(), studentID, query.BatchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// ExportBatchAttendance downloads a batch's attendance register as XLSX
// @Summary Export batch attendance
// @Tags attendance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Batch ID"
// @Success 200 {file} binary "Attendance workbook"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /batches/{id}/attendance/export [get]
func (c *AttendanceController) ExportBatchAttendance(ctx *gin.Context) {
	batchID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	buffer, filename, err := c.attendanceService.ExportBatchAttendance(ctx.Request.Context(), batchID)
	if err != nil {
		c.logger.Error().Err(err).Int64("batchID", batchID).Msg("Failed to export attendance")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}
