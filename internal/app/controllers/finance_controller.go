package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/auth"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/middleware"
)

// FinanceController handles receipts, expenses, payroll, reminders and
// the finance analytics.
type FinanceController struct {
	financeService *services.FinanceService
	authzService   *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewFinanceController creates a new FinanceController
func NewFinanceController(
	financeService *services.FinanceService,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) *FinanceController {
	return &FinanceController{
		financeService: financeService,
		authzService:   authzService,
		logger:         logger,
	}
}

// parseDateWindow reads the optional from/to query parameters. The window
// defaults to everything up to now.
func parseDateWindow(ctx *gin.Context) (time.Time, time.Time, bool) {
	from := time.Time{}
	to := time.Now()

	if raw := ctx.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid from parameter")
			errorDetail = errorDetail.WithDetails("Use the YYYY-MM-DD format")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return from, to, false
		}
		from = parsed
	}
	if raw := ctx.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid to parameter")
			errorDetail = errorDetail.WithDetails("Use the YYYY-MM-DD format")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return from, to, false
		}
		// Include the whole end day
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}
	return from, to, true
}

// CreateReceipt records a fee payment
// @Summary Create fees receipt
// @Description Records a payment and assigns the next receipt number. The receipt PDF is generated in the background.
// @Tags finance
// @Accept json
// @Produce json
// @Param request body dto.CreateReceiptRequest true "Payment details"
// @Success 201 {object} dto.APIResponse{data=models.FeesReceipt} "Receipt created"
// @Failure 404 {object} dto.APIResponse "Student, course or batch not found"
// @Security BearerAuth
// @Router /receipts [post]
func (c *FinanceController) CreateReceipt(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	receipt, err := c.financeService.CreateReceipt(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentID", req.StudentID).Msg("Failed to create receipt")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("receiptNo", receipt.ReceiptNo).Float64("amount", receipt.Amount).Msg("Receipt created")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(receipt))
}

// GetReceipt returns one receipt
// @Summary Get fees receipt
// @Tags finance
// @Produce json
// @Param id path int true "Receipt ID"
// @Success 200 {object} dto.APIResponse{data=models.FeesReceipt} "Receipt"
// @Failure 404 {object} dto.APIResponse "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{id} [get]
func (c *FinanceController) GetReceipt(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	receipt, err := c.financeService.GetReceipt(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(receipt))
}

// UpdateReceipt corrects an unlocked receipt
// @Summary Update fees receipt
// @Description Locked receipts reject any change.
// @Tags finance
// @Accept json
// @Produce json
// @Param id path int true "Receipt ID"
// @Param request body dto.UpdateReceiptRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.FeesReceipt} "Updated receipt"
// @Failure 404 {object} dto.APIResponse "Receipt not found"
// @Failure 409 {object} dto.APIResponse "Receipt is locked"
// @Security BearerAuth
// @Router /receipts/{id} [put]
func (c *FinanceController) UpdateReceipt(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	receipt, err := c.financeService.UpdateReceipt(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(receipt))
}

// DeleteReceipt removes an unlocked receipt
// @Summary Delete fees receipt
// @Tags finance
// @Produce json
// @Param id path int true "Receipt ID"
// @Success 200 {object} dto.APIResponse "Receipt deleted"
// @Failure 404 {object} dto.APIResponse "Receipt not found"
// @Failure 409 {object} dto.APIResponse "Receipt is locked"
// @Security BearerAuth
// @Router /receipts/{id} [delete]
func (c *FinanceController) DeleteReceipt(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.financeService.DeleteReceipt(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Receipt deleted"}))
}

// SetReceiptLock locks or unlocks a receipt
// @Summary Lock or unlock receipt
// @Description Locked receipts cannot be edited or deleted.
// @Tags finance
// @Accept json
// @Produce json
// @Param id path int true "Receipt ID"
// @Param request body object{locked=bool} true "Lock state"
// @Success 200 {object} dto.APIResponse{data=models.FeesReceipt} "Receipt"
// @Failure 404 {object} dto.APIResponse "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{id}/lock [put]
func (c *FinanceController) SetReceiptLock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Locked *bool `json:"locked" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	receipt, err := c.financeService.SetReceiptLock(ctx.Request.Context(), id, *req.Locked)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(receipt))
}

// ListReceipts lists receipts with filters
// @Summary List fees receipts
// @Tags finance
// @Produce json
// @Param studentId query int false "Filter by student"
// @Param batchId query int false "Filter by batch"
// @Param mode query string false "Filter by payment mode" Enums(cash, upi, bank, card)
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Receipts"
// @Security BearerAuth
// @Router /receipts [get]
func (c *FinanceController) ListReceipts(ctx *gin.Context) {
	var filter dto.ReceiptFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	receipts, pagination, err := c.financeService.ListReceipts(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      receipts,
		Pagination: pagination,
	}))
}

// StudentOutstanding returns a student's fee position
// @Summary Student outstanding fees
// @Description Sums the fees of the student's enrolled courses against their receipts.
// @Tags finance
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentOutstandingResponse} "Fee position"
// @Failure 403 {object} dto.APIResponse "Not your record"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id}/outstanding [get]
func (c *FinanceController) StudentOutstanding(ctx *gin.Context) {
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

	outstanding, err := c.financeService.StudentOutstanding(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(outstanding))
}

// BatchOutstanding returns the fee position of a batch
// @Summary Batch outstanding fees
// @Tags finance
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.OutstandingResponse} "Fee position"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /finance/outstanding/batch/{id} [get]
func (c *FinanceController) BatchOutstanding(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	outstanding, err := c.financeService.BatchOutstanding(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(outstanding))
}

// CourseOutstanding returns the fee position of a course
// @Summary Course outstanding fees
// @Tags finance
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.OutstandingResponse} "Fee position"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Security BearerAuth
// @Router /finance/outstanding/course/{id} [get]
func (c *FinanceController) CourseOutstanding(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	outstanding, err := c.financeService.CourseOutstanding(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(outstanding))
}

// OverallOutstanding returns the institute-wide fee position
// @Summary Overall outstanding fees
// @Tags finance
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.OutstandingResponse} "Fee position"
// @Security BearerAuth
// @Router /finance/outstanding/overall [get]
func (c *FinanceController) OverallOutstanding(ctx *gin.Context) {
	outstanding, err := c.financeService.OverallOutstanding(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(outstanding))
}

// CourseRevenue sums the receipts posted against a course
// @Summary Course revenue
// @Tags finance
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseRevenueResponse} "Revenue"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Security BearerAuth
// @Router /finance/revenue/course/{id} [get]
func (c *FinanceController) CourseRevenue(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	revenue, err := c.financeService.CourseRevenue(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(revenue))
}

// CreateExpense records an operating expense
// @Summary Create expense
// @Tags finance
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.APIResponse{data=models.Expense} "Expense created"
// @Security BearerAuth
// @Router /expenses [post]
func (c *FinanceController) CreateExpense(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	expense, err := c.financeService.CreateExpense(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(expense))
}

// UpdateExpense corrects an expense
// @Summary Update expense
// @Tags finance
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Expense} "Updated expense"
// @Failure 404 {object} dto.APIResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (c *FinanceController) UpdateExpense(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	expense, err := c.financeService.UpdateExpense(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(expense))
}

// DeleteExpense removes an expense
// @Summary Delete expense
// @Tags finance
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} dto.APIResponse "Expense deleted"
// @Failure 404 {object} dto.APIResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (c *FinanceController) DeleteExpense(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.financeService.DeleteExpense(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Expense deleted"}))
}

// ListExpenses lists expenses with filters
// @Summary List expenses
// @Tags finance
// @Produce json
// @Param category query string false "Filter by category" Enums(material, maintenance, salary, other)
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (c *FinanceController) ListExpenses(ctx *gin.Context) {
	var filter dto.ExpenseFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	expenses, pagination, err := c.financeService.ListExpenses(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      expenses,
		Pagination: pagination,
	}))
}

// CreatePayroll opens a trainer's payroll for a month
// @Summary Create payroll
// @Description One payroll per trainer per YYYY-MM month. Earnings default to the trainer's base salary.
// @Tags finance
// @Accept json
// @Produce json
// @Param request body dto.CreatePayrollRequest true "Payroll details"
// @Success 201 {object} dto.APIResponse{data=models.Payroll} "Payroll created"
// @Failure 404 {object} dto.APIResponse "Trainer not found"
// @Failure 409 {object} dto.APIResponse "Payroll already exists for this month"
// @Security BearerAuth
// @Router /payrolls [post]
func (c *FinanceController) CreatePayroll(ctx *gin.Context) {
	var req dto.CreatePayrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	payroll, err := c.financeService.CreatePayroll(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(payroll))
}

// GetPayroll returns one payroll
// @Summary Get payroll
// @Tags finance
// @Produce json
// @Param id path int true "Payroll ID"
// @Success 200 {object} dto.APIResponse{data=models.Payroll} "Payroll"
// @Failure 404 {object} dto.APIResponse "Payroll not found"
// @Security BearerAuth
// @Router /payrolls/{id} [get]
func (c *FinanceController) GetPayroll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	payroll, err := c.financeService.GetPayroll(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payroll))
}

// UpdatePayroll adjusts earnings, deductions or marks a payroll paid
// @Summary Update payroll
// @Tags finance
// @Accept json
// @Produce json
// @Param id path int true "Payroll ID"
// @Param request body dto.UpdatePayrollRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Payroll} "Updated payroll"
// @Failure 404 {object} dto.APIResponse "Payroll not found"
// @Security BearerAuth
// @Router /payrolls/{id} [put]
func (c *FinanceController) UpdatePayroll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePayrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	payroll, err := c.financeService.UpdatePayroll(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payroll))
}

// ListPayrolls lists payrolls with filters
// @Summary List payrolls
// @Tags finance
// @Produce json
// @Param trainerId query int false "Filter by trainer"
// @Param month query string false "Filter by month (YYYY-MM)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Payrolls"
// @Security BearerAuth
// @Router /payrolls [get]
func (c *FinanceController) ListPayrolls(ctx *gin.Context) {
	var query struct {
		TrainerID *int64 `form:"trainerId"`
		Month     string `form:"month"`
		Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
		PageSize  int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
	}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	payrolls, pagination, err := c.financeService.ListPayrolls(ctx.Request.Context(), query.TrainerID, query.Month, query.Page, query.PageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      payrolls,
		Pagination: pagination,
	}))
}

// SendReminder sends a fee reminder to a student
// @Summary Send fee reminder
// @Description Queues a reminder email. A student reminded within the last 7 days is not reminded again.
// @Tags finance
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body dto.SendReminderRequest true "Reminder message"
// @Success 201 {object} dto.APIResponse{data=models.Reminder} "Reminder queued"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 409 {object} dto.APIResponse "Student reminded recently"
// @Security BearerAuth
// @Router /students/{id}/reminders [post]
func (c *FinanceController) SendReminder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendReminderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	reminder, err := c.financeService.SendReminder(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentID", id).Msg("Failed to send reminder")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(reminder))
}

// ListStudentReminders lists a student's reminders, newest first
// @Summary List student reminders
// @Tags finance
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Reminder} "Reminders"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id}/reminders [get]
func (c *FinanceController) ListStudentReminders(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	reminders, err := c.financeService.ListStudentReminders(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reminders))
}

// Summary returns income, expense and outstanding analytics
// @Summary Finance summary
// @Tags finance
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.FinanceSummaryResponse} "Summary"
// @Security BearerAuth
// @Router /finance/summary [get]
func (c *FinanceController) Summary(ctx *gin.Context) {
	from, to, ok := parseDateWindow(ctx)
	if !ok {
		return
	}

	summary, err := c.financeService.Summary(ctx.Request.Context(), from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// Export downloads income and expenses as XLSX
// @Summary Export finance records
// @Tags finance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {file} binary "Finance workbook"
// @Security BearerAuth
// @Router /finance/export [get]
func (c *FinanceController) Export(ctx *gin.Context) {
	from, to, ok := parseDateWindow(ctx)
	if !ok {
		return
	}

	buffer, filename, err := c.financeService.ExportFinance(ctx.Request.Context(), from, to)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to export finance records")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}
