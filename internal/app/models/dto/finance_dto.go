package dto

import "time"

// CreateReceiptRequest is the body for POST /receipts
type CreateReceiptRequest struct {
	StudentID int64      `json:"studentId" binding:"required"`
	CourseID  *int64     `json:"courseId,omitempty"`
	BatchID   *int64     `json:"batchId,omitempty"`
	Amount    float64    `json:"amount" binding:"required,gt=0" example:"2500"`
	Mode      string     `json:"mode" binding:"required,oneof=cash upi bank card" example:"cash"`
	TxnID     string     `json:"txnId,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
}

// UpdateReceiptRequest is the body for PUT /receipts/:id. Locked receipts
// reject any update.
type UpdateReceiptRequest struct {
	Amount *float64   `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Mode   *string    `json:"mode,omitempty" binding:"omitempty,oneof=cash upi bank card"`
	TxnID  *string    `json:"txnId,omitempty"`
	Date   *time.Time `json:"date,omitempty"`
}

// ReceiptFilterRequest holds the query parameters for GET /receipts
type ReceiptFilterRequest struct {
	StudentID *int64     `form:"studentId"`
	BatchID   *int64     `form:"batchId"`
	Mode      string     `form:"mode" binding:"omitempty,oneof=cash upi bank card"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Page      int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int        `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// StudentOutstandingResponse is the body for GET /students/:id/outstanding
type StudentOutstandingResponse struct {
	StudentID   int64   `json:"studentId"`
	RegNo       string  `json:"regNo"`
	TotalFees   float64 `json:"totalFees"`
	TotalPaid   float64 `json:"totalPaid"`
	Outstanding float64 `json:"outstanding"`
}

// OutstandingResponse is the fee position of a batch, a course or the
// whole institute.
type OutstandingResponse struct {
	Scope       string  `json:"scope" example:"batch"`
	ScopeID     *int64  `json:"scopeId,omitempty"`
	TotalFees   float64 `json:"totalFees"`
	TotalPaid   float64 `json:"totalPaid"`
	Outstanding float64 `json:"outstanding"`
}

// CourseRevenueResponse is the body for GET /finance/revenue/course/:id
type CourseRevenueResponse struct {
	CourseID int64   `json:"courseId"`
	Code     string  `json:"code"`
	Title    string  `json:"title"`
	Revenue  float64 `json:"revenue"`
}

// CreateExpenseRequest is the body for POST /expenses
type CreateExpenseRequest struct {
	Date        *time.Time `json:"date,omitempty"`
	Description string     `json:"description" binding:"required"`
	Category    string     `json:"category" binding:"required,oneof=material maintenance salary other"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
}

// UpdateExpenseRequest is the body for PUT /expenses/:id
type UpdateExpenseRequest struct {
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty" binding:"omitempty,oneof=material maintenance salary other"`
	Amount      *float64   `json:"amount,omitempty" binding:"omitempty,gt=0"`
}

// ExpenseFilterRequest holds the query parameters for GET /expenses
type ExpenseFilterRequest struct {
	Category string     `form:"category" binding:"omitempty,oneof=material maintenance salary other"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int        `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// CreatePayrollRequest is the body for POST /payrolls. Month uses the
// YYYY-MM format and is unique per trainer.
type CreatePayrollRequest struct {
	TrainerID  int64              `json:"trainerId" binding:"required"`
	Month      string             `json:"month" binding:"required" example:"2025-07"`
	Earnings   map[string]float64 `json:"earnings,omitempty"`
	Deductions map[string]float64 `json:"deductions,omitempty"`
}

// UpdatePayrollRequest is the body for PUT /payrolls/:id
type UpdatePayrollRequest struct {
	Earnings   map[string]float64 `json:"earnings,omitempty"`
	Deductions map[string]float64 `json:"deductions,omitempty"`
	Status     *string            `json:"status,omitempty" binding:"omitempty,oneof=Pending Paid"`
}

// SendReminderRequest is the body for POST /students/:id/reminders
type SendReminderRequest struct {
	CourseID *int64 `json:"courseId,omitempty"`
	BatchID  *int64 `json:"batchId,omitempty"`
	Message  string `json:"message" binding:"required"`
}

// MonthlyFinanceSummary is one month's totals in the finance analytics response
type MonthlyFinanceSummary struct {
	Month    string  `json:"month" example:"2025-07"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// FinanceSummaryResponse is the body for GET /finance/summary
type FinanceSummaryResponse struct {
	TotalIncome      float64                 `json:"totalIncome"`
	TotalExpenses    float64                 `json:"totalExpenses"`
	TotalOutstanding float64                 `json:"totalOutstanding"`
	Monthly          []MonthlyFinanceSummary `json:"monthly"`
}
