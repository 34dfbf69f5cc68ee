package models

import (
	"fmt"
	"time"
)

// FeesReceipt records a single fee payment received from a student
type FeesReceipt struct {
	ID         int64       `json:"id" db:"id"`
	ReceiptNo  string      `json:"receiptNo" db:"receipt_no" example:"RCP-2025-00042"`
	StudentID  int64       `json:"studentId" db:"student_id"`
	CourseID   *int64      `json:"courseId,omitempty" db:"course_id"`
	BatchID    *int64      `json:"batchId,omitempty" db:"batch_id"`
	Amount     float64     `json:"amount" db:"amount"`
	Mode       PaymentMode `json:"mode" db:"mode"`
	TxnID      string      `json:"txnId,omitempty" db:"txn_id"`
	Date       time.Time   `json:"date" db:"date"`
	PostedByID *int64      `json:"postedById,omitempty" db:"posted_by"`
	Locked     bool        `json:"locked" db:"locked"`
	PDFPath    *string     `json:"pdfPath,omitempty" db:"pdf_path"`
	Student    *Student    `json:"student,omitempty"` // Relation, no db tag
	Course     *Course     `json:"course,omitempty"`  // Relation, no db tag
}

// IsEditable reports whether the receipt may still be changed or deleted.
func (r *FeesReceipt) IsEditable() bool {
	return !r.Locked
}

// FormatReceiptNo builds the receipt number for the given year and
// per-year sequence, e.g. RCP-2025-00042.
func FormatReceiptNo(year, seq int) string {
	return fmt.Sprintf("RCP-%d-%05d", year, seq)
}

// Expense records an operational expense for the institute
type Expense struct {
	ID          int64           `json:"id" db:"id"`
	Date        time.Time       `json:"date" db:"date"`
	Description string          `json:"description" db:"description"`
	Category    ExpenseCategory `json:"category" db:"category"`
	Amount      float64         `json:"amount" db:"amount"`
	AddedByID   *int64          `json:"addedById,omitempty" db:"added_by"`
}

// Payroll is a salary payment record for a trainer for one month.
// Unique per (trainer, month); month is a "YYYY-MM" string.
type Payroll struct {
	ID         int64              `json:"id" db:"id"`
	Month      string             `json:"month" db:"month" example:"2025-07"`
	TrainerID  int64              `json:"trainerId" db:"trainer_id"`
	Earnings   map[string]float64 `json:"earnings" db:"earnings"`
	Deductions map[string]float64 `json:"deductions" db:"deductions"`
	NetPay     float64            `json:"netPay" db:"net_pay"`
	Status     PayrollStatus      `json:"status" db:"status"`
	CreatedAt  time.Time          `json:"createdAt" db:"created_at"`
	Trainer    *Trainer           `json:"trainer,omitempty"` // Relation, no db tag
}

// Reminder logs a fee reminder sent (or queued) to a student
type Reminder struct {
	ID        int64          `json:"id" db:"id"`
	StudentID int64          `json:"studentId" db:"student_id"`
	CourseID  *int64         `json:"courseId,omitempty" db:"course_id"`
	BatchID   *int64         `json:"batchId,omitempty" db:"batch_id"`
	Message   string         `json:"message" db:"message"`
	SentAt    time.Time      `json:"sentAt" db:"sent_at"`
	SentByID  *int64         `json:"sentById,omitempty" db:"sent_by"`
	Status    ReminderStatus `json:"status" db:"status"`
	Student   *Student       `json:"student,omitempty"` // Relation, no db tag
}

// StockItem is an inventory item such as fabric, thread or buttons
type StockItem struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	Description    string  `json:"description,omitempty" db:"description"`
	UnitOfMeasure  string  `json:"unitOfMeasure" db:"unit_of_measure" example:"meters"`
	QuantityOnHand float64 `json:"quantityOnHand" db:"quantity_on_hand"`
	ReorderLevel   float64 `json:"reorderLevel" db:"reorder_level"`
}

// NeedsReorder reports whether the on-hand quantity has dropped to or
// below the reorder level.
func (s *StockItem) NeedsReorder() bool {
	return s.QuantityOnHand <= s.ReorderLevel
}

// StockTransaction logs one change to a stock item's quantity.
// Positive quantities add stock (purchase), negative remove (usage/wastage).
type StockTransaction struct {
	ID              int64     `json:"id" db:"id"`
	ItemID          int64     `json:"itemId" db:"item_id"`
	Date            time.Time `json:"date" db:"date"`
	QuantityChanged float64   `json:"quantityChanged" db:"quantity_changed"`
	Reason          string    `json:"reason,omitempty" db:"reason"`
	UserID          *int64    `json:"userId,omitempty" db:"user_id"`
}
