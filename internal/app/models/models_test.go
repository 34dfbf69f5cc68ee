package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRegNo(t *testing.T) {
	assert.Equal(t, "STU2025-014", FormatRegNo(2025, 14))
	assert.Equal(t, "STU2025-001", FormatRegNo(2025, 1))
	assert.Equal(t, "STU2026-123", FormatRegNo(2026, 123))
	assert.Equal(t, "STU2025-1000", FormatRegNo(2025, 1000))
}

func TestFormatReceiptNo(t *testing.T) {
	assert.Equal(t, "RCP-2025-00042", FormatReceiptNo(2025, 42))
	assert.Equal(t, "RCP-2025-00001", FormatReceiptNo(2025, 1))
	assert.Equal(t, "RCP-2026-12345", FormatReceiptNo(2026, 12345))
}

func TestFormatCertificateNo(t *testing.T) {
	issueDate := time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "CERT-20250815-0003", FormatCertificateNo(issueDate, 3))

	newYear := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "CERT-20260101-0001", FormatCertificateNo(newYear, 1))
}

func TestRoleTypeIsStaff(t *testing.T) {
	tests := []struct {
		role    RoleType
		isStaff bool
	}{
		{RoleAdmin, true},
		{RoleStaff, true},
		{RoleTrainer, false},
		{RoleStudent, false},
		{RoleType("UNKNOWN"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.isStaff, tt.role.IsStaff(), "role %s", tt.role)
	}
}

func TestUserFullName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{"both names", User{FirstName: "Ayesha", LastName: "Siddiqui"}, "Ayesha Siddiqui"},
		{"first only", User{FirstName: "Ayesha"}, "Ayesha"},
		{"last only", User{LastName: "Siddiqui"}, "Siddiqui"},
		{"empty", User{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.FullName())
		})
	}
}

func TestStockItemNeedsReorder(t *testing.T) {
	tests := []struct {
		name     string
		item     StockItem
		expected bool
	}{
		{"above level", StockItem{QuantityOnHand: 50, ReorderLevel: 10}, false},
		{"at level", StockItem{QuantityOnHand: 10, ReorderLevel: 10}, true},
		{"below level", StockItem{QuantityOnHand: 3.5, ReorderLevel: 10}, true},
		{"zero on hand", StockItem{QuantityOnHand: 0, ReorderLevel: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.NeedsReorder())
		})
	}
}

func TestFeesReceiptIsEditable(t *testing.T) {
	unlocked := FeesReceipt{Locked: false}
	locked := FeesReceipt{Locked: true}

	assert.True(t, unlocked.IsEditable())
	assert.False(t, locked.IsEditable())
}

func TestAttendanceSummary(t *testing.T) {
	a := Attendance{
		Entries: []*AttendanceEntry{
			{StudentID: 1, Status: AttendancePresent},
			{StudentID: 2, Status: AttendancePresent},
			{StudentID: 3, Status: AttendanceAbsent},
			{StudentID: 4, Status: AttendanceLeave},
			{StudentID: 5, Status: AttendancePresent},
		},
	}

	summary := a.Summary()
	assert.Equal(t, 3, summary[AttendancePresent])
	assert.Equal(t, 1, summary[AttendanceAbsent])
	assert.Equal(t, 1, summary[AttendanceLeave])
}

func TestAttendanceSummaryEmpty(t *testing.T) {
	a := Attendance{}
	summary := a.Summary()
	assert.Empty(t, summary)
}
