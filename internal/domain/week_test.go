package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStart_MondayIsIdentity(t *testing.T) {
	monday := date(2025, time.June, 2)
	require.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, monday, WeekStart(monday))
}

func TestWeekStart_MidweekMapsBack(t *testing.T) {
	wednesday := date(2025, time.June, 4)
	assert.Equal(t, date(2025, time.June, 2), WeekStart(wednesday))
}

func TestWeekStart_SundayMapsSixDaysBack(t *testing.T) {
	sunday := date(2025, time.June, 8)
	require.Equal(t, time.Sunday, sunday.Weekday())
	// Sunday belongs to the week that started the prior Monday.
	assert.Equal(t, date(2025, time.June, 2), WeekStart(sunday))
}

func TestWeekStart_StripsTimeOfDay(t *testing.T) {
	late := time.Date(2025, time.June, 4, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, date(2025, time.June, 2), WeekStart(late))
}

func TestWeekStart_AllDaysOfWeekAgree(t *testing.T) {
	monday := date(2025, time.June, 2)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		assert.Equal(t, monday, WeekStart(d), "day %s", d.Weekday())
	}
}

func TestWeekEnd(t *testing.T) {
	assert.Equal(t, date(2025, time.June, 8), WeekEnd(date(2025, time.June, 4)))
	assert.Equal(t, date(2025, time.June, 8), WeekEnd(date(2025, time.June, 8)))
}

func TestWeeksBetween(t *testing.T) {
	weeks := WeeksBetween(date(2025, time.June, 4), date(2025, time.June, 20))
	require.Len(t, weeks, 3)
	assert.Equal(t, date(2025, time.June, 2), weeks[0])
	assert.Equal(t, date(2025, time.June, 9), weeks[1])
	assert.Equal(t, date(2025, time.June, 16), weeks[2])
}

func TestWeeksBetween_SingleWeek(t *testing.T) {
	weeks := WeeksBetween(date(2025, time.June, 3), date(2025, time.June, 7))
	require.Len(t, weeks, 1)
	assert.Equal(t, date(2025, time.June, 2), weeks[0])
}

func TestWeekCount(t *testing.T) {
	assert.Equal(t, 1, WeekCount(date(2025, time.June, 2), date(2025, time.June, 8)))
	assert.Equal(t, 3, WeekCount(date(2025, time.June, 4), date(2025, time.June, 20)))
	assert.Equal(t, 0, WeekCount(date(2025, time.June, 20), date(2025, time.June, 4)))
}

func TestSameWeek(t *testing.T) {
	assert.True(t, SameWeek(date(2025, time.June, 2), date(2025, time.June, 8)))
	assert.False(t, SameWeek(date(2025, time.June, 8), date(2025, time.June, 9)))
}
