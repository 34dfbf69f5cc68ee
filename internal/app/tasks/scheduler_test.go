package tasks

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNextRun(t *testing.T) {
	s := NewScheduler(nil, nil, 6, zerolog.Nop())

	t.Run("before run hour schedules same day", func(t *testing.T) {
		now := time.Date(2025, 8, 15, 3, 30, 0, 0, time.UTC)
		next := s.nextRun(now)
		assert.Equal(t, time.Date(2025, 8, 15, 6, 0, 0, 0, time.UTC), next)
	})

	t.Run("after run hour schedules next day", func(t *testing.T) {
		now := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
		next := s.nextRun(now)
		assert.Equal(t, time.Date(2025, 8, 16, 6, 0, 0, 0, time.UTC), next)
	})

	t.Run("exactly at run hour schedules next day", func(t *testing.T) {
		now := time.Date(2025, 8, 15, 6, 0, 0, 0, time.UTC)
		next := s.nextRun(now)
		assert.Equal(t, time.Date(2025, 8, 16, 6, 0, 0, 0, time.UTC), next)
	})

	t.Run("month boundary", func(t *testing.T) {
		now := time.Date(2025, 8, 31, 23, 0, 0, 0, time.UTC)
		next := s.nextRun(now)
		assert.Equal(t, time.Date(2025, 9, 1, 6, 0, 0, 0, time.UTC), next)
	})
}

func TestNewSchedulerClampsRunHour(t *testing.T) {
	now := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	s := NewScheduler(nil, nil, -1, zerolog.Nop())
	assert.Equal(t, 6, s.nextRun(now).Hour())

	s = NewScheduler(nil, nil, 24, zerolog.Nop())
	assert.Equal(t, 6, s.nextRun(now).Hour())

	s = NewScheduler(nil, nil, 0, zerolog.Nop())
	assert.Equal(t, time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC), s.nextRun(now))
}
