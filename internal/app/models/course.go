package models

import (
	"time"
)

// Course represents a course offered at the institute
type Course struct {
	ID                     int64   `json:"id" db:"id"`
	Code                   string  `json:"code" db:"code" example:"TAIL-101"`
	Title                  string  `json:"title" db:"title" example:"Basic Tailoring"`
	DurationWeeks          int     `json:"durationWeeks" db:"duration_weeks"`
	TotalFees              float64 `json:"totalFees" db:"total_fees"`
	RequiredAttendanceDays int     `json:"requiredAttendanceDays" db:"required_attendance_days"`
	Syllabus               string  `json:"syllabus,omitempty" db:"syllabus"`
	Active                 bool    `json:"active" db:"active"`
}

// Trainer is a staff-level user with employment details
type Trainer struct {
	ID       int64     `json:"id" db:"id"`
	UserID   int64     `json:"userId" db:"user_id"`
	EmpNo    string    `json:"empNo" db:"emp_no" example:"EMP-007"`
	JoinDate time.Time `json:"joinDate" db:"join_date"`
	Salary   float64   `json:"salary" db:"salary"`
	IsActive bool      `json:"isActive" db:"is_active"`
	User     *User     `json:"user,omitempty"` // Relation, no db tag
}

// Batch is a scheduled offering of a course with an assigned trainer
type Batch struct {
	ID        int64             `json:"id" db:"id"`
	CourseID  int64             `json:"courseId" db:"course_id"`
	TrainerID *int64            `json:"trainerId,omitempty" db:"trainer_id"`
	Code      string            `json:"code" db:"code" example:"BT-2025-03"`
	StartDate time.Time         `json:"startDate" db:"start_date"`
	EndDate   time.Time         `json:"endDate" db:"end_date"`
	Capacity  int               `json:"capacity" db:"capacity"`
	Schedule  map[string]string `json:"schedule,omitempty" db:"schedule"` // e.g. {"Mon": "9-11", "Wed": "1-3"}
	Course    *Course           `json:"course,omitempty"`                 // Relation, no db tag
	Trainer   *Trainer          `json:"trainer,omitempty"`                // Relation, no db tag
}

// Enrollment links a student to a batch; unique per (student, batch)
type Enrollment struct {
	ID         int64            `json:"id" db:"id"`
	StudentID  int64            `json:"studentId" db:"student_id"`
	BatchID    int64            `json:"batchId" db:"batch_id"`
	EnrolledOn time.Time        `json:"enrolledOn" db:"enrolled_on"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	Student    *Student         `json:"student,omitempty"` // Relation, no db tag
	Batch      *Batch           `json:"batch,omitempty"`   // Relation, no db tag
}
