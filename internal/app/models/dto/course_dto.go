package dto

import "time"

// CreateCourseRequest is the body for POST /courses
type CreateCourseRequest struct {
	Code                   string  `json:"code" binding:"required,max=20" example:"TAIL-101"`
	Title                  string  `json:"title" binding:"required" example:"Basic Tailoring"`
	DurationWeeks          int     `json:"durationWeeks" binding:"required,min=1" example:"12"`
	TotalFees              float64 `json:"totalFees" binding:"required,gte=0" example:"15000"`
	RequiredAttendanceDays int     `json:"requiredAttendanceDays" binding:"required,min=1" example:"60"`
	Syllabus               string  `json:"syllabus,omitempty"`
}

// UpdateCourseRequest is the body for PUT /courses/:id
type UpdateCourseRequest struct {
	Title                  *string  `json:"title,omitempty"`
	DurationWeeks          *int     `json:"durationWeeks,omitempty" binding:"omitempty,min=1"`
	TotalFees              *float64 `json:"totalFees,omitempty" binding:"omitempty,gte=0"`
	RequiredAttendanceDays *int     `json:"requiredAttendanceDays,omitempty" binding:"omitempty,min=1"`
	Syllabus               *string  `json:"syllabus,omitempty"`
	Active                 *bool    `json:"active,omitempty"`
}

// CreateTrainerRequest is the body for POST /trainers. It creates the
// trainer's user account together with the trainer record.
type CreateTrainerRequest struct {
	Username  string     `json:"username" binding:"required,min=3,max=50"`
	Password  string     `json:"password" binding:"required,min=8"`
	Email     string     `json:"email" binding:"required,email"`
	FirstName string     `json:"firstName" binding:"required"`
	LastName  string     `json:"lastName" binding:"required"`
	Phone     string     `json:"phone,omitempty"`
	EmpNo     string     `json:"empNo" binding:"required,max=20" example:"EMP-007"`
	JoinDate  *time.Time `json:"joinDate,omitempty"`
	Salary    float64    `json:"salary" binding:"required,gte=0"`
}

// UpdateTrainerRequest is the body for PUT /trainers/:id
type UpdateTrainerRequest struct {
	Email     *string  `json:"email,omitempty" binding:"omitempty,email"`
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Salary    *float64 `json:"salary,omitempty" binding:"omitempty,gte=0"`
	IsActive  *bool    `json:"isActive,omitempty"`
}

// CreateBatchRequest is the body for POST /batches. When endDate is
// omitted it is derived from the course duration.
type CreateBatchRequest struct {
	Code      string            `json:"code" binding:"required,max=30" example:"BT-2025-03"`
	CourseID  int64             `json:"courseId" binding:"required"`
	TrainerID *int64            `json:"trainerId,omitempty"`
	StartDate time.Time         `json:"startDate" binding:"required"`
	EndDate   *time.Time        `json:"endDate,omitempty"`
	Capacity  int               `json:"capacity" binding:"required,min=1" example:"20"`
	Schedule  map[string]string `json:"schedule,omitempty"`
}

// UpdateBatchRequest is the body for PUT /batches/:id
type UpdateBatchRequest struct {
	TrainerID *int64            `json:"trainerId,omitempty"`
	StartDate *time.Time        `json:"startDate,omitempty"`
	EndDate   *time.Time        `json:"endDate,omitempty"`
	Capacity  *int              `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Schedule  map[string]string `json:"schedule,omitempty"`
}

// BatchFilterRequest holds the query parameters for GET /batches
type BatchFilterRequest struct {
	CourseID  *int64 `form:"courseId"`
	TrainerID *int64 `form:"trainerId"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// EnrollStudentRequest is the body for POST /batches/:id/enroll
type EnrollStudentRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
}

// UpdateEnrollmentRequest is the body for PUT /enrollments/:id
type UpdateEnrollmentRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed dropped"`
}

// BatchResponse is the API representation of a batch with occupancy info
type BatchResponse struct {
	ID            int64             `json:"id"`
	Code          string            `json:"code"`
	CourseID      int64             `json:"courseId"`
	CourseTitle   string            `json:"courseTitle,omitempty"`
	TrainerID     *int64            `json:"trainerId,omitempty"`
	TrainerName   string            `json:"trainerName,omitempty"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       time.Time         `json:"endDate"`
	Capacity      int               `json:"capacity"`
	EnrolledCount int               `json:"enrolledCount"`
	IsFull        bool              `json:"isFull"`
	Schedule      map[string]string `json:"schedule,omitempty"`
}
