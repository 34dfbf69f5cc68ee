package dto

import "time"

// AttendanceEntryRequest is one student's mark within a sheet
type AttendanceEntryRequest struct {
	StudentID int64  `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=P A L"`
}

// RecordAttendanceRequest is the body for POST /batches/:id/attendance.
// One sheet per batch per date; submitting again for the same date fails.
type RecordAttendanceRequest struct {
	Date    time.Time                `json:"date" binding:"required"`
	Remarks string                   `json:"remarks,omitempty"`
	Entries []AttendanceEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// UpdateAttendanceRequest replaces the entries of an existing sheet
type UpdateAttendanceRequest struct {
	Entries []AttendanceEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// AttendanceFilterRequest holds the query parameters for attendance listings
type AttendanceFilterRequest struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int        `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// StudentAttendanceSummary is the per-student aggregate for a batch
type StudentAttendanceSummary struct {
	StudentID    int64   `json:"studentId"`
	RegNo        string  `json:"regNo"`
	StudentName  string  `json:"studentName"`
	PresentDays  int     `json:"presentDays"`
	AbsentDays   int     `json:"absentDays"`
	LeaveDays    int     `json:"leaveDays"`
	TotalDays    int     `json:"totalDays"`
	Percentage   float64 `json:"percentage"`
	RequiredDays int     `json:"requiredDays"`
}

// BatchAttendanceSummaryResponse is the body for GET /batches/:id/attendance/summary
type BatchAttendanceSummaryResponse struct {
	BatchID    int64                      `json:"batchId"`
	BatchCode  string                     `json:"batchCode"`
	SheetCount int                        `json:"sheetCount"`
	Students   []StudentAttendanceSummary `json:"students"`
}

// AttendanceDayPoint is one day on a batch attendance timeline
type AttendanceDayPoint struct {
	Date       time.Time `json:"date"`
	Present    int       `json:"present"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
}

// BatchAttendanceTimelineResponse is the body for GET /batches/:id/attendance/timeline
type BatchAttendanceTimelineResponse struct {
	BatchID   int64                `json:"batchId"`
	BatchCode string               `json:"batchCode"`
	Days      []AttendanceDayPoint `json:"days"`
}
