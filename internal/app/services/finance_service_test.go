package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorwise/tailorwise/internal/app/repositories"
)

func TestComputeNetPay(t *testing.T) {
	tests := []struct {
		name       string
		earnings   map[string]float64
		deductions map[string]float64
		want       float64
	}{
		{
			name:     "earnings only",
			earnings: map[string]float64{"basic": 20000, "allowance": 3000},
			want:     23000,
		},
		{
			name:       "earnings and deductions",
			earnings:   map[string]float64{"basic": 20000, "allowance": 3000},
			deductions: map[string]float64{"pf": 1800, "advance": 2000},
			want:       19200,
		},
		{
			name:       "deductions exceed earnings",
			earnings:   map[string]float64{"basic": 1000},
			deductions: map[string]float64{"advance": 2500},
			want:       -1500,
		},
		{
			name: "empty maps",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, computeNetPay(tt.earnings, tt.deductions), 0.001)
		})
	}
}

func TestMergeMonthlyFinance(t *testing.T) {
	income := []repositories.MonthlyTotal{
		{Month: "2025-06", Total: 50000},
		{Month: "2025-07", Total: 42000},
	}
	expenses := []repositories.MonthlyTotal{
		{Month: "2025-07", Total: 8000},
		{Month: "2025-08", Total: 1500},
	}
	payrolls := []repositories.MonthlyTotal{
		{Month: "2025-06", Total: 20000},
		{Month: "2025-07", Total: 20000},
	}

	monthly := mergeMonthlyFinance(income, expenses, payrolls)
	require.Len(t, monthly, 3)

	// Sorted by month, months missing from a source default to zero
	assert.Equal(t, "2025-06", monthly[0].Month)
	assert.InDelta(t, 50000, monthly[0].Income, 0.001)
	assert.InDelta(t, 20000, monthly[0].Expenses, 0.001)
	assert.InDelta(t, 30000, monthly[0].Net, 0.001)

	// Payroll counts as expense: net = income - (expense + payroll)
	assert.Equal(t, "2025-07", monthly[1].Month)
	assert.InDelta(t, 28000, monthly[1].Expenses, 0.001)
	assert.InDelta(t, 14000, monthly[1].Net, 0.001)

	// Expense-only month still shows up with negative net
	assert.Equal(t, "2025-08", monthly[2].Month)
	assert.InDelta(t, 0, monthly[2].Income, 0.001)
	assert.InDelta(t, -1500, monthly[2].Net, 0.001)
}

func TestMergeMonthlyFinanceEmpty(t *testing.T) {
	assert.Empty(t, mergeMonthlyFinance(nil, nil, nil))
}

func TestNewOutstanding(t *testing.T) {
	batchID := int64(4)

	resp := newOutstanding("batch", &batchID, 60000, 45000)
	assert.Equal(t, "batch", resp.Scope)
	require.NotNil(t, resp.ScopeID)
	assert.Equal(t, batchID, *resp.ScopeID)
	assert.InDelta(t, 15000, resp.Outstanding, 0.001)

	// Overpaid scopes report a negative balance
	overall := newOutstanding("overall", nil, 1000, 1200)
	assert.Nil(t, overall.ScopeID)
	assert.InDelta(t, -200, overall.Outstanding, 0.001)
}

func TestReminderRecentlySent(t *testing.T) {
	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last time.Time
		want bool
	}{
		{name: "never reminded", last: time.Time{}, want: false},
		{name: "an hour ago", last: now.Add(-time.Hour), want: true},
		{name: "six days ago", last: now.AddDate(0, 0, -6), want: true},
		{name: "exactly seven days ago", last: now.AddDate(0, 0, -7), want: false},
		{name: "eight days ago", last: now.AddDate(0, 0, -8), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reminderRecentlySent(tt.last, now))
		})
	}
}
