package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// AttendanceRow is one student line in a batch attendance export
type AttendanceRow struct {
	RegNo       string
	StudentName string
	PresentDays int
	AbsentDays  int
	LeaveDays   int
	TotalDays   int
	Percentage  float64
}

// FinanceRow is one line in a finance export, either an income receipt
// or an expense.
type FinanceRow struct {
	Date        time.Time
	Kind        string // "income" or "expense"
	Reference   string // receipt number or expense category
	Description string
	Amount      float64
}

// BatchAttendanceWorkbook builds an XLSX workbook summarizing attendance
// for a batch.
func BatchAttendanceWorkbook(batchCode string, rows []AttendanceRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Reg No", "Student", "Present", "Absent", "Leave", "Total Days", "Percentage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to apply header style: %w", err)
	}

	for i, row := range rows {
		r := i + 2
		values := []interface{}{
			row.RegNo,
			row.StudentName,
			row.PresentDays,
			row.AbsentDays,
			row.LeaveDays,
			row.TotalDays,
			fmt.Sprintf("%.1f%%", row.Percentage),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", r, err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "B", 22); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", len(rows)+3), fmt.Sprintf("Batch: %s", batchCode))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", len(rows)+4), fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

// FinanceWorkbook builds an XLSX workbook listing income and expense rows
// for a period, with running totals at the bottom.
func FinanceWorkbook(from, to time.Time, rows []FinanceRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Finance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Type", "Reference", "Description", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E2EFDA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to apply header style: %w", err)
	}

	var income, expenses float64
	for i, row := range rows {
		r := i + 2
		if row.Kind == "income" {
			income += row.Amount
		} else {
			expenses += row.Amount
		}
		values := []interface{}{
			row.Date.Format("2006-01-02"),
			row.Kind,
			row.Reference,
			row.Description,
			row.Amount,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", r, err)
			}
		}
	}

	totalsRow := len(rows) + 3
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalsRow), "Total Income")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalsRow), income)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalsRow+1), "Total Expenses")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalsRow+1), expenses)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalsRow+2), "Net")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalsRow+2), income-expenses)

	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalsRow+4),
		fmt.Sprintf("Period: %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")))

	if err := f.SetColWidth(sheet, "C", "D", 28); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}
