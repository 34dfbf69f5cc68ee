package dto

import "time"

// IssueCertificateRequest is the body for POST /certificates. The student
// must hold a completed enrollment for the course and no valid certificate.
type IssueCertificateRequest struct {
	StudentID int64      `json:"studentId" binding:"required"`
	CourseID  int64      `json:"courseId" binding:"required"`
	IssueDate *time.Time `json:"issueDate,omitempty"`
	Remarks   string     `json:"remarks,omitempty"`
}

// CertificateVerificationResponse is the public body for
// GET /verify/certificates/:qrHash. Revoked certificates are not returned.
type CertificateVerificationResponse struct {
	CertificateNo string    `json:"certificateNo" example:"CERT-20250815-0003"`
	StudentName   string    `json:"studentName"`
	RegNo         string    `json:"regNo"`
	CourseName    string    `json:"courseName"`
	IssueDate     time.Time `json:"issueDate"`
	Valid         bool      `json:"valid" example:"true"`
}

// CertificateFilterRequest holds the query parameters for GET /certificates
type CertificateFilterRequest struct {
	StudentID *int64 `form:"studentId"`
	CourseID  *int64 `form:"courseId"`
	Revoked   *bool  `form:"revoked"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}
