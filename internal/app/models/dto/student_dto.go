package dto

import (
	"time"

	"github.com/tailorwise/tailorwise/internal/app/models"
)

// CreateEnquiryRequest is the body for POST /enquiries
type CreateEnquiryRequest struct {
	Name           string `json:"name" binding:"required" example:"Ayşe Yılmaz"`
	Phone          string `json:"phone" binding:"required" example:"+905551234567"`
	Email          string `json:"email,omitempty" binding:"omitempty,email"`
	CourseInterest string `json:"courseInterest" binding:"required" example:"Basic Tailoring"`
	Source         string `json:"source,omitempty" example:"walk-in"`
	Notes          string `json:"notes,omitempty"`
}

// UpdateEnquiryRequest is the body for PUT /enquiries/:id
type UpdateEnquiryRequest struct {
	Name           *string `json:"name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	CourseInterest *string `json:"courseInterest,omitempty"`
	Source         *string `json:"source,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Status         *string `json:"status,omitempty" binding:"omitempty,oneof=new follow_up converted closed"`
}

// EnquiryFilterRequest holds the query parameters for GET /enquiries
type EnquiryFilterRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=new follow_up converted closed"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// ConvertEnquiryRequest is the body for POST /enquiries/:id/convert.
// Admission data not present on the enquiry must be supplied here.
type ConvertEnquiryRequest struct {
	Username      string     `json:"username" binding:"required,min=3,max=50"`
	Password      string     `json:"password" binding:"required,min=8"`
	Email         string     `json:"email,omitempty" binding:"omitempty,email"`
	FirstName     string     `json:"firstName" binding:"required"`
	LastName      string     `json:"lastName,omitempty"`
	GuardianName  string     `json:"guardianName,omitempty"`
	GuardianPhone string     `json:"guardianPhone,omitempty"`
	Address       string     `json:"address,omitempty"`
	AdmissionDate *time.Time `json:"admissionDate,omitempty"`
	BatchID       *int64     `json:"batchId,omitempty"`
}

// CreateStudentRequest is the body for POST /students (direct admission)
type CreateStudentRequest struct {
	Username      string     `json:"username" binding:"required,min=3,max=50"`
	Password      string     `json:"password" binding:"required,min=8"`
	Email         string     `json:"email" binding:"required,email"`
	FirstName     string     `json:"firstName" binding:"required"`
	LastName      string     `json:"lastName" binding:"required"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	GuardianName  string     `json:"guardianName,omitempty"`
	GuardianPhone string     `json:"guardianPhone,omitempty"`
	AdmissionDate *time.Time `json:"admissionDate,omitempty"`
	BatchID       *int64     `json:"batchId,omitempty"`
}

// UpdateStudentRequest is the staff body for PUT /students/:id
type UpdateStudentRequest struct {
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	GuardianName  *string `json:"guardianName,omitempty"`
	GuardianPhone *string `json:"guardianPhone,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// UpdateStudentProfileRequest is the restricted self-service body for
// PUT /students/me. Students may only touch their contact details.
type UpdateStudentProfileRequest struct {
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
}

// StudentFilterRequest holds the query parameters for GET /students
type StudentFilterRequest struct {
	BatchID  *int64 `form:"batchId"`
	Active   *bool  `form:"active"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// StudentResponse is the API representation of a student with its account
type StudentResponse struct {
	ID            int64        `json:"id"`
	RegNo         string       `json:"regNo" example:"STU2025-014"`
	User          UserResponse `json:"user"`
	GuardianName  string       `json:"guardianName,omitempty"`
	GuardianPhone string       `json:"guardianPhone,omitempty"`
	AdmissionDate time.Time    `json:"admissionDate"`
	Address       string       `json:"address,omitempty"`
	PhotoURL      *string      `json:"photoUrl,omitempty"`
	Active        bool         `json:"active"`
}

// NewStudentResponse maps a student model (with its user relation loaded)
// to the API representation.
func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:            s.ID,
		RegNo:         s.RegNo,
		GuardianName:  s.GuardianName,
		GuardianPhone: s.GuardianPhone,
		AdmissionDate: s.AdmissionDate,
		Address:       s.Address,
		PhotoURL:      s.PhotoURL,
		Active:        s.Active,
	}
	if s.User != nil {
		resp.User = NewUserResponse(s.User)
	}
	return resp
}

// StudentListResponse is the paginated body for GET /students
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// MeasurementRequest is the body for POST /students/:id/measurements.
// All measurements are centimetres; omitted fields are simply not recorded.
type MeasurementRequest struct {
	DateTaken    *time.Time `json:"dateTaken,omitempty"`
	Neck         *float64   `json:"neck,omitempty" binding:"omitempty,gt=0"`
	Chest        *float64   `json:"chest,omitempty" binding:"omitempty,gt=0"`
	Waist        *float64   `json:"waist,omitempty" binding:"omitempty,gt=0"`
	Hips         *float64   `json:"hips,omitempty" binding:"omitempty,gt=0"`
	SleeveLength *float64   `json:"sleeveLength,omitempty" binding:"omitempty,gt=0"`
	Inseam       *float64   `json:"inseam,omitempty" binding:"omitempty,gt=0"`
	Notes        string     `json:"notes,omitempty"`
}

// UpdateMeasurementRequest is the body for PUT /measurements/:id. Only the
// provided fields change; a measurement cannot move between students.
type UpdateMeasurementRequest struct {
	DateTaken    *time.Time `json:"dateTaken,omitempty"`
	Neck         *float64   `json:"neck,omitempty" binding:"omitempty,gt=0"`
	Chest        *float64   `json:"chest,omitempty" binding:"omitempty,gt=0"`
	Waist        *float64   `json:"waist,omitempty" binding:"omitempty,gt=0"`
	Hips         *float64   `json:"hips,omitempty" binding:"omitempty,gt=0"`
	SleeveLength *float64   `json:"sleeveLength,omitempty" binding:"omitempty,gt=0"`
	Inseam       *float64   `json:"inseam,omitempty" binding:"omitempty,gt=0"`
	Notes        *string    `json:"notes,omitempty"`
}
