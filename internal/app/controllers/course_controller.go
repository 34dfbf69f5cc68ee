package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/middleware"
)

// CourseController handles the course catalog and trainer records
type CourseController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// CreateCourse adds a course to the catalog
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 409 {object} dto.APIResponse "Course code already exists"
// @Security BearerAuth
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("code", course.Code).Msg("Course created")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourse returns one course
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// UpdateCourse updates a course. The course code is immutable.
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Updated course"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteCourse removes a course
// @Summary Delete course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Course deleted"}))
}

// ListCourses lists the course catalog
// @Summary List courses
// @Tags courses
// @Produce json
// @Param activeOnly query bool false "Only active courses"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Security BearerAuth
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	activeOnly := ctx.Query("activeOnly") == "true"

	courses, err := c.courseService.ListCourses(ctx.Request.Context(), activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CreateTrainer creates a trainer together with their user account
// @Summary Create trainer
// @Tags trainers
// @Accept json
// @Produce json
// @Param request body dto.CreateTrainerRequest true "Trainer details"
// @Success 201 {object} dto.APIResponse{data=models.Trainer} "Trainer created"
// @Failure 409 {object} dto.APIResponse "Username, email or employee number already exists"
// @Security BearerAuth
// @Router /trainers [post]
func (c *CourseController) CreateTrainer(ctx *gin.Context) {
	var req dto.CreateTrainerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	trainer, err := c.courseService.CreateTrainer(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("empNo", req.EmpNo).Msg("Failed to create trainer")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("empNo", trainer.EmpNo).Msg("Trainer created")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(trainer))
}

// GetTrainer returns one trainer
// @Summary Get trainer
// @Tags trainers
// @Produce json
// @Param id path int true "Trainer ID"
// @Success 200 {object} dto.APIResponse{data=models.Trainer} "Trainer"
// @Failure 404 {object} dto.APIResponse "Trainer not found"
// @Security BearerAuth
// @Router /trainers/{id} [get]
func (c *CourseController) GetTrainer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	trainer, err := c.courseService.GetTrainer(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(trainer))
}

// UpdateTrainer updates a trainer and its linked user account
// @Summary Update trainer
// @Description Deactivating a trainer also deactivates their user account.
// @Tags trainers
// @Accept json
// @Produce json
// @Param id path int true "Trainer ID"
// @Param request body dto.UpdateTrainerRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Trainer} "Updated trainer"
// @Failure 404 {object} dto.APIResponse "Trainer not found"
// @Security BearerAuth
// @Router /trainers/{id} [put]
func (c *CourseController) UpdateTrainer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTrainerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	trainer, err := c.courseService.UpdateTrainer(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(trainer))
}

// ListTrainers lists trainers
// @Summary List trainers
// @Tags trainers
// @Produce json
// @Param activeOnly query bool false "Only active trainers"
// @Success 200 {object} dto.APIResponse{data=[]models.Trainer} "Trainers"
// @Security BearerAuth
// @Router /trainers [get]
func (c *CourseController) ListTrainers(ctx *gin.Context) {
	activeOnly := ctx.Query("activeOnly") == "true"

	trainers, err := c.courseService.ListTrainers(ctx.Request.Context(), activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(trainers))
}
