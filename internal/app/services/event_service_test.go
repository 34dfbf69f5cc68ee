package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEventEnd(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("omitted end defaults to start", func(t *testing.T) {
		end, err := resolveEventEnd(start, nil)
		require.NoError(t, err)
		assert.True(t, end.Equal(start))
	})

	t.Run("explicit later end is kept", func(t *testing.T) {
		later := start.AddDate(0, 0, 3)
		end, err := resolveEventEnd(start, &later)
		require.NoError(t, err)
		assert.True(t, end.Equal(later))
	})

	t.Run("end equal to start is a single-day event", func(t *testing.T) {
		sameDay := start
		end, err := resolveEventEnd(start, &sameDay)
		require.NoError(t, err)
		assert.True(t, end.Equal(start))
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		earlier := start.AddDate(0, 0, -1)
		_, err := resolveEventEnd(start, &earlier)
		assert.Error(t, err)
	})
}
