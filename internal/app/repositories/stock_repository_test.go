package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

func TestApplyStockDelta(t *testing.T) {
	tests := []struct {
		name   string
		onHand float64
		change float64
		want   float64
	}{
		{name: "stock in", onHand: 10, change: 25, want: 35},
		{name: "stock out", onHand: 10, change: -4, want: 6},
		{name: "draw down to zero", onHand: 7.5, change: -7.5, want: 0},
		{name: "first delivery", onHand: 0, change: 100, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyStockDelta(tt.onHand, tt.change)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestApplyStockDeltaRejectsOverdraw(t *testing.T) {
	_, err := applyStockDelta(3, -3.5)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	_, err = applyStockDelta(0, -1)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
}
