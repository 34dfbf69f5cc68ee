package models

import (
	"time"
)

// Attendance is the attendance record for a batch on a specific date.
// Unique per (batch, date); individual marks live in AttendanceEntry.
type Attendance struct {
	ID        int64              `json:"id" db:"id"`
	BatchID   int64              `json:"batchId" db:"batch_id"`
	Date      time.Time          `json:"date" db:"date"`
	TakenByID *int64             `json:"takenById,omitempty" db:"taken_by"`
	Remarks   string             `json:"remarks,omitempty" db:"remarks"`
	Entries   []*AttendanceEntry `json:"entries,omitempty"` // Relation, no db tag
	Batch     *Batch             `json:"batch,omitempty"`   // Relation, no db tag
}

// Summary returns a breakdown of the loaded entries by status.
func (a *Attendance) Summary() map[AttendanceStatus]int {
	counts := make(map[AttendanceStatus]int, 3)
	for _, e := range a.Entries {
		counts[e.Status]++
	}
	return counts
}

// AttendanceEntry is the mark of a single student for one attendance day
type AttendanceEntry struct {
	ID           int64            `json:"id" db:"id"`
	AttendanceID int64            `json:"attendanceId" db:"attendance_id"`
	StudentID    int64            `json:"studentId" db:"student_id"`
	Status       AttendanceStatus `json:"status" db:"status"`
	Student      *Student         `json:"student,omitempty"` // Relation, no db tag
}
