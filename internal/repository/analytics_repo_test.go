package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestTenderFilterDateRange(t *testing.T) {
	t.Run("no year means no constraint", func(t *testing.T) {
		_, _, ok := TenderFilter{}.dateRange()
		assert.False(t, ok)
	})

	t.Run("month alone means no constraint", func(t *testing.T) {
		_, _, ok := TenderFilter{Month: intPtr(5)}.dateRange()
		assert.False(t, ok)
	})

	t.Run("year alone spans the whole year", func(t *testing.T) {
		from, to, ok := TenderFilter{Year: intPtr(2024)}.dateRange()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("year and month narrow to the month", func(t *testing.T) {
		from, to, ok := TenderFilter{Year: intPtr(2024), Month: intPtr(2)}.dateRange()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("december rolls into the next year", func(t *testing.T) {
		from, to, ok := TenderFilter{Year: intPtr(2024), Month: intPtr(12)}.dateRange()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to)
	})
}
