package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page default size", 1, 20, 0, 20},
		{"second page", 2, 20, 20, 20},
		{"custom size", 3, 10, 20, 10},
		{"zero size falls back to default", 1, 0, 0, DefaultPageSize},
		{"negative size falls back to default", 1, -5, 0, DefaultPageSize},
		{"oversize falls back to default", 2, MaxPageSize + 1, 20, DefaultPageSize},
		{"max size allowed", 1, MaxPageSize, 0, MaxPageSize},
		{"page below one treated as first", 0, 10, 0, 10},
		{"negative page treated as first", -3, 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Run("full pages", func(t *testing.T) {
		info := NewPaginationInfo(97, 1, 20)
		assert.Equal(t, 1, info.CurrentPage)
		assert.Equal(t, 5, info.TotalPages)
		assert.Equal(t, 20, info.PageSize)
		assert.Equal(t, int64(97), info.TotalItems)
	})

	t.Run("exact division", func(t *testing.T) {
		info := NewPaginationInfo(100, 2, 20)
		assert.Equal(t, 5, info.TotalPages)
		assert.Equal(t, 2, info.CurrentPage)
	})

	t.Run("empty set still has one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 20)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, 1, info.CurrentPage)
	})

	t.Run("current page capped at total pages", func(t *testing.T) {
		info := NewPaginationInfo(15, 9, 20)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, 1, info.CurrentPage)
	})

	t.Run("invalid size and page normalized", func(t *testing.T) {
		info := NewPaginationInfo(40, 0, 0)
		assert.Equal(t, DefaultPageSize, info.PageSize)
		assert.Equal(t, 1, info.CurrentPage)
		assert.Equal(t, 2, info.TotalPages)
	})
}
