package models

import (
	"fmt"
	"time"
)

// Enquiry represents a prospective-student intake record preceding enrollment
type Enquiry struct {
	ID             int64         `json:"id" db:"id"`
	Name           string        `json:"name" db:"name" binding:"required"`
	Phone          string        `json:"phone" db:"phone" binding:"required"`
	Email          string        `json:"email,omitempty" db:"email"`
	CourseInterest string        `json:"courseInterest" db:"course_interest" binding:"required"`
	Source         string        `json:"source,omitempty" db:"source"`
	Status         EnquiryStatus `json:"status" db:"status"`
	Notes          string        `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
}

// Student defines a registered student linked one-to-one with a user account
type Student struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	RegNo         string    `json:"regNo" db:"reg_no" example:"STU2025-014"`
	GuardianName  string    `json:"guardianName" db:"guardian_name"`
	GuardianPhone string    `json:"guardianPhone" db:"guardian_phone"`
	AdmissionDate time.Time `json:"admissionDate" db:"admission_date"`
	Address       string    `json:"address,omitempty" db:"address"`
	PhotoURL      *string   `json:"photoUrl,omitempty" db:"photo_url"`
	Active        bool      `json:"active" db:"active"`
	User          *User     `json:"user,omitempty"` // Relation, no db tag
}

// FormatRegNo builds the registration number for the given admission year
// and per-year sequence, e.g. STU2025-014.
func FormatRegNo(year, seq int) string {
	return fmt.Sprintf("STU%d-%03d", year, seq)
}

// StudentMeasurement stores dated body measurements for a student.
// A student accumulates measurement records over time; all fields in
// centimetres and nullable since a fitting rarely records every one.
type StudentMeasurement struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	DateTaken    time.Time `json:"dateTaken" db:"date_taken"`
	Neck         *float64  `json:"neck,omitempty" db:"neck"`
	Chest        *float64  `json:"chest,omitempty" db:"chest"`
	Waist        *float64  `json:"waist,omitempty" db:"waist"`
	Hips         *float64  `json:"hips,omitempty" db:"hips"`
	SleeveLength *float64  `json:"sleeveLength,omitempty" db:"sleeve_length"`
	Inseam       *float64  `json:"inseam,omitempty" db:"inseam"`
	Notes        string    `json:"notes,omitempty" db:"notes"`
}
