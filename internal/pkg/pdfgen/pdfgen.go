package pdfgen

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// CertificateData carries everything printed on a certificate PDF
type CertificateData struct {
	CertificateNo string
	StudentName   string
	RegNo         string
	CourseName    string
	IssueDate     time.Time
	Remarks       string
	VerifyURL     string // Encoded in the QR code
	InstituteName string
}

// ReceiptData carries everything printed on a fee receipt PDF
type ReceiptData struct {
	ReceiptNo     string
	StudentName   string
	RegNo         string
	CourseName    string
	BatchCode     string
	Amount        float64
	Mode          string
	TxnID         string
	Date          time.Time
	Outstanding   float64
	InstituteName string
}

// Certificate renders a completion certificate as a single landscape A4
// page with a verification QR code in the lower right corner.
func Certificate(data CertificateData) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Certificate %s", data.CertificateNo), false)
	pdf.AddPage()

	// Border
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(120, 90, 40)
	pdf.Rect(8, 8, 281, 194, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(11, 11, 275, 188, "D")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(60, 45, 20)
	pdf.SetY(30)
	pdf.CellFormat(0, 14, data.InstituteName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
	pdf.CellFormat(0, 8, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, data.StudentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Registration No: %s", data.RegNo), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, data.CourseName, "", 1, "C", false, 0, "")

	if data.Remarks != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 7, data.Remarks, "", 1, "C", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Issued on %s", data.IssueDate.Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Certificate No: %s", data.CertificateNo), "", 1, "C", false, 0, "")

	// Verification QR code
	if data.VerifyURL != "" {
		png, err := qrcode.Encode(data.VerifyURL, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to encode QR code: %w", err)
		}
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("verify-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("verify-qr", 248, 158, 32, 32, false, opts, 0, "")

		pdf.SetFont("Helvetica", "", 7)
		pdf.SetXY(244, 190)
		pdf.CellFormat(40, 4, "Scan to verify", "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Receipt renders a fee receipt as a portrait A5 page.
func Receipt(data ReceiptData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetTitle(fmt.Sprintf("Receipt %s", data.ReceiptNo), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, data.InstituteName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Fee Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	row("Receipt No:", data.ReceiptNo)
	row("Date:", data.Date.Format("2 January 2006"))
	row("Student:", data.StudentName)
	row("Registration No:", data.RegNo)
	if data.CourseName != "" {
		row("Course:", data.CourseName)
	}
	if data.BatchCode != "" {
		row("Batch:", data.BatchCode)
	}
	row("Payment Mode:", data.Mode)
	if data.TxnID != "" {
		row("Transaction ID:", data.TxnID)
	}

	pdf.Ln(4)
	pdf.SetLineWidth(0.4)
	pdf.Line(12, pdf.GetY(), 136, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(45, 9, "Amount Paid:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, fmt.Sprintf("%.2f", data.Amount), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(45, 7, "Balance Due:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("%.2f", data.Outstanding), "", 1, "L", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "This is a computer generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt PDF: %w", err)
	}
	return buf.Bytes(), nil
}
