package models

import (
	"fmt"
	"time"
)

// Certificate is a certificate of completion issued to a student for a
// course. The qr_hash is an opaque UUID embedded in the certificate's QR
// code and used by the public verification endpoint.
type Certificate struct {
	ID            int64     `json:"id" db:"id"`
	CertificateNo string    `json:"certificateNo" db:"certificate_no" example:"CERT-20250815-0003"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	CourseID      *int64    `json:"courseId,omitempty" db:"course_id"`
	IssueDate     time.Time `json:"issueDate" db:"issue_date"`
	QRHash        string    `json:"qrHash" db:"qr_hash"`
	Remarks       string    `json:"remarks,omitempty" db:"remarks"`
	Revoked       bool      `json:"revoked" db:"revoked"`
	PDFPath       *string   `json:"pdfPath,omitempty" db:"pdf_path"`
	Student       *Student  `json:"student,omitempty"` // Relation, no db tag
	Course        *Course   `json:"course,omitempty"`  // Relation, no db tag
}

// FormatCertificateNo builds the certificate number for the given issue
// date and per-day sequence, e.g. CERT-20250815-0003.
func FormatCertificateNo(issueDate time.Time, seq int) string {
	return fmt.Sprintf("CERT-%s-%04d", issueDate.Format("20060102"), seq)
}
