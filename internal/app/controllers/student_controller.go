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

// StudentController handles student records, their profile self-service,
// measurements and enrollments.
type StudentController struct {
	studentService *services.StudentService
	batchService   *services.BatchService
	authzService   *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService *services.StudentService,
	batchService *services.BatchService,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		studentService: studentService,
		batchService:   batchService,
		authzService:   authzService,
		logger:         logger,
	}
}

// CreateStudent admits a student directly, without an enquiry
// @Summary Create student
// @Description Creates the student and their user account, assigning the next registration number. Optionally enrolls into a batch.
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Admission details"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student admitted"
// @Failure 400 {object} dto.APIResponse "Invalid request format or weak password"
// @Failure 409 {object} dto.APIResponse "Username or email already exists"
// @Security BearerAuth
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Failed to admit student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("regNo", student.RegNo).Msg("Student admitted")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewStudentResponse(student)))
}

// GetStudent returns one student record
// @Summary Get student
// @Description Staff see any student; a student account only its own record.
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student"
// @Failure 403 {object} dto.APIResponse "Not your record"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.authzService.ValidateStudentAccess(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student)))
}

// UpdateStudent updates a student record
// @Summary Update student
// @Description Applies the non-nil fields to the student and its linked user account.
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Updated student"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student)))
}

// ListStudents lists student records with filters
// @Summary List students
// @Tags students
// @Produce json
// @Param batchId query int false "Filter by batch"
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Search in name and registration number"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Students"
// @Security BearerAuth
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var filter dto.StudentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.studentService.ListStudents(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetMyProfile returns the student record behind the current account
// @Summary Current student profile
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Own student record"
// @Failure 404 {object} dto.APIResponse "No student record for this account"
// @Security BearerAuth
// @Router /students/me [get]
func (c *StudentController) GetMyProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student)))
}

// UpdateMyProfile lets a student update their own contact details
// @Summary Update current student profile
// @Description Students may only change phone, address and email.
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.UpdateStudentProfileRequest true "Contact details"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Updated record"
// @Failure 404 {object} dto.APIResponse "No student record for this account"
// @Security BearerAuth
// @Router /students/me [put]
func (c *StudentController) UpdateMyProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.UpdateStudentProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student)))
}

// UploadPhoto stores a student's photo
// @Summary Upload student photo
// @Description Replaces any previously stored photo for the student.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID"
// @Param photo formData file true "Photo file"
// @Success 200 {object} dto.APIResponse "Photo stored"
// @Failure 400 {object} dto.APIResponse "No file in request"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id}/photo [post]
func (c *StudentController) UploadPhoto(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Photo file missing")
		errorDetail = errorDetail.WithDetails("Attach the image as the 'photo' form field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	photoURL, err := c.studentService.UploadStudentPhoto(ctx.Request.Context(), id, fileHeader)
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentID", id).Msg("Failed to store student photo")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"photoUrl": photoURL}))
}

// AddMeasurement records a measurement set for a student
// @Summary Add measurement set
// @Description Records a dated set of body measurements in centimetres. History is kept; nothing is overwritten.
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body dto.MeasurementRequest true "Measurements"
// @Success 201 {object} dto.APIResponse{data=models.StudentMeasurement} "Measurement recorded"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id}/measurements [post]
func (c *StudentController) AddMeasurement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MeasurementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	measurement, err := c.studentService.AddMeasurement(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(measurement))
}

// ListMeasurements returns a student's measurement history, newest first
// @Summary List measurement history
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentMeasurement} "Measurement history"
// @Failure 403 {object} dto.APIResponse "Not your record"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id}/measurements [get]
func (c *StudentController) ListMeasurements(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.authzService.ValidateStudentAccess(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	measurements, err := c.studentService.ListMeasurements(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(measurements))
}

// DeleteStudent removes a student and their login account
// @Summary Delete student
// @Description Students with posted fee receipts cannot be deleted.
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student deleted"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 409 {object} dto.APIResponse "Student has posted receipts"
// @Security BearerAuth
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Student deleted"}))
}

// GetMeasurement returns one measurement record
// @Summary Get measurement
// @Tags students
// @Produce json
// @Param id path int true "Measurement ID"
// @Success 200 {object} dto.APIResponse{data=models.StudentMeasurement} "Measurement"
// @Failure 404 {object} dto.APIResponse "Measurement not found"
// @Security BearerAuth
// @Router /measurements/{id} [get]
func (c *StudentController) GetMeasurement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	measurement, err := c.studentService.GetMeasurement(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(measurement))
}

// UpdateMeasurement corrects a recorded measurement set
// @Summary Update measurement
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Measurement ID"
// @Param request body dto.UpdateMeasurementRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.StudentMeasurement} "Updated measurement"
// @Failure 404 {object} dto.APIResponse "Measurement not found"
// @Security BearerAuth
// @Router /measurements/{id} [put]
func (c *StudentController) UpdateMeasurement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMeasurementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	measurement, err := c.studentService.UpdateMeasurement(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(measurement))
}

// DeleteMeasurement removes a measurement record
// @Summary Delete measurement
// @Tags students
// @Produce json
// @Param id path int true "Measurement ID"
// @Success 200 {object} dto.APIResponse "Measurement deleted"
// @Failure 404 {object} dto.APIResponse "Measurement not found"
// @Security BearerAuth
// @Router /measurements/{id} [delete]
func (c *StudentController) DeleteMeasurement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteMeasurement(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Measurement deleted"}))
}

// ListEnrollments returns a student's batch enrollments
// @Summary List student enrollments
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments"
// @Failure 403 {object} dto.APIResponse "Not your record"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id}/enrollments [get]
func (c *StudentController) ListEnrollments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.authzService.ValidateStudentAccess(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	enrollments, err := c.batchService.ListStudentEnrollments(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}
