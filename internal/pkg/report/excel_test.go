package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBatchAttendanceWorkbook(t *testing.T) {
	rows := []AttendanceRow{
		{RegNo: "STU2025-014", StudentName: "Ayesha Siddiqui", PresentDays: 18, AbsentDays: 1, LeaveDays: 1, TotalDays: 20, Percentage: 90},
		{RegNo: "STU2025-015", StudentName: "Ravi Kumar", PresentDays: 20, AbsentDays: 0, LeaveDays: 0, TotalDays: 20, Percentage: 100},
	}

	buf, err := BatchAttendanceWorkbook("ADV-2025-A", rows)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Reg No", header)

	regNo, err := f.GetCellValue("Attendance", "A2")
	require.NoError(t, err)
	assert.Equal(t, "STU2025-014", regNo)

	percentage, err := f.GetCellValue("Attendance", "G3")
	require.NoError(t, err)
	assert.Equal(t, "100.0%", percentage)
}

func TestBatchAttendanceWorkbookEmpty(t *testing.T) {
	buf, err := BatchAttendanceWorkbook("ADV-2025-A", nil)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestFinanceWorkbook(t *testing.T) {
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	rows := []FinanceRow{
		{Date: from, Kind: "income", Reference: "RCP-2025-00042", Description: "Course fee", Amount: 2500},
		{Date: from.AddDate(0, 0, 3), Kind: "income", Reference: "RCP-2025-00043", Description: "Course fee", Amount: 1500},
		{Date: from.AddDate(0, 0, 5), Kind: "expense", Reference: "supplies", Description: "Fabric restock", Amount: 800},
	}

	buf, err := FinanceWorkbook(from, to, rows)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Finance", "E1")
	require.NoError(t, err)
	assert.Equal(t, "Amount", header)

	// Totals block starts at len(rows)+3
	label, err := f.GetCellValue("Finance", "D6")
	require.NoError(t, err)
	assert.Equal(t, "Total Income", label)

	income, err := f.GetCellValue("Finance", "E6")
	require.NoError(t, err)
	assert.Equal(t, "4000", income)

	expenses, err := f.GetCellValue("Finance", "E7")
	require.NoError(t, err)
	assert.Equal(t, "800", expenses)

	net, err := f.GetCellValue("Finance", "E8")
	require.NoError(t, err)
	assert.Equal(t, "3200", net)
}
