package pdfgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificate(t *testing.T) {
	data := CertificateData{
		CertificateNo: "CERT-20250815-0003",
		StudentName:   "Ayesha Siddiqui",
		RegNo:         "STU2025-014",
		CourseName:    "Advanced Tailoring",
		IssueDate:     time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		Remarks:       "Completed with distinction",
		VerifyURL:     "http://localhost:8080/api/v1/verify/certificates/abc123",
		InstituteName: "TailorWise Training Institute",
	}

	pdf, err := Certificate(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestCertificateWithoutQR(t *testing.T) {
	data := CertificateData{
		CertificateNo: "CERT-20250815-0004",
		StudentName:   "Ravi Kumar",
		RegNo:         "STU2025-015",
		CourseName:    "Basic Tailoring",
		IssueDate:     time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		InstituteName: "TailorWise Training Institute",
	}

	pdf, err := Certificate(data)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestReceipt(t *testing.T) {
	data := ReceiptData{
		ReceiptNo:     "RCP-2025-00042",
		StudentName:   "Ayesha Siddiqui",
		RegNo:         "STU2025-014",
		CourseName:    "Advanced Tailoring",
		BatchCode:     "ADV-2025-A",
		Amount:        2500,
		Mode:          "upi",
		TxnID:         "UPI-998877",
		Date:          time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Outstanding:   3500,
		InstituteName: "TailorWise Training Institute",
	}

	pdf, err := Receipt(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestReceiptMinimalFields(t *testing.T) {
	data := ReceiptData{
		ReceiptNo:     "RCP-2025-00001",
		StudentName:   "Ravi Kumar",
		RegNo:         "STU2025-015",
		Amount:        500,
		Mode:          "cash",
		Date:          time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		InstituteName: "TailorWise Training Institute",
	}

	pdf, err := Receipt(data)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
