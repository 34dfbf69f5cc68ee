package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendancePercentage(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		want    float64
	}{
		{name: "full attendance", present: 20, total: 20, want: 100},
		{name: "three quarters", present: 15, total: 20, want: 75},
		{name: "one of three days", present: 1, total: 3, want: 33.333},
		{name: "never present", present: 0, total: 12, want: 0},
		{name: "no recorded days", present: 0, total: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, attendancePercentage(tt.present, tt.total), 0.001)
		})
	}
}

func TestMeetsAttendanceRequirement(t *testing.T) {
	tests := []struct {
		name     string
		present  int
		required int
		want     bool
	}{
		{name: "one day short", present: 29, required: 30, want: false},
		{name: "exactly at threshold", present: 30, required: 30, want: true},
		{name: "over threshold", present: 31, required: 30, want: true},
		{name: "nothing recorded yet", present: 0, required: 30, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, meetsAttendanceRequirement(tt.present, tt.required))
		})
	}
}
