package habit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/habitual/internal/habit"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "2024-06-10", habit.Key(date(2024, 6, 10)))
	assert.Equal(t, "0999-01-05", habit.Key(date(999, 1, 5)))

	// time of day never changes the key
	morning := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	night := time.Date(2024, 6, 10, 23, 59, 59, 999, time.Local)
	assert.Equal(t, habit.Key(morning), habit.Key(night))

	// no timezone conversion: the date is taken in its own location
	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, "2024-06-11", habit.Key(time.Date(2024, 6, 11, 1, 0, 0, 0, tokyo)))
}

func TestKeyDistinctDays(t *testing.T) {
	seen := map[string]bool{}
	for d := date(2023, 12, 25); d.Before(date(2024, 3, 5)); d = d.AddDate(0, 0, 1) {
		k := habit.Key(d)
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

func TestParseKey(t *testing.T) {
	got, err := habit.ParseKey("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), got)

	for _, bad := range []string{"", "2024-2-9", "2023-02-29", "10/06/2024", "2024-06-10T00:00:00Z"} {
		_, err := habit.ParseKey(bad)
		assert.ErrorIs(t, err, habit.ErrInvalidDate, bad)
	}
}

func TestParseKeyInMidnightDSTStart(t *testing.T) {
	loc := zone(t, "America/Santiago")
	got, err := habit.ParseKeyIn("2024-09-08", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-09-08", habit.Key(got))
	assert.Equal(t, loc, got.Location())

	// midnight of that day does not exist
	assert.Equal(t, "2024-09-08", habit.Key(habit.Day(time.Date(2024, 9, 8, 15, 0, 0, 0, loc))))
}

func TestParseMonth(t *testing.T) {
	got, err := habit.ParseMonth("2024-09")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 9, 1), got)

	for _, bad := range []string{"", "2024-13", "2024-9", "2024-09-01"} {
		_, err := habit.ParseMonth(bad)
		assert.ErrorIs(t, err, habit.ErrInvalidDate, bad)
	}
}

func TestDayAndSameDay(t *testing.T) {
	ts := time.Date(2024, 6, 10, 18, 45, 3, 0, time.Local)
	assert.Equal(t, date(2024, 6, 10), habit.Day(ts))
	assert.True(t, habit.SameDay(ts, date(2024, 6, 10)))
	assert.False(t, habit.SameDay(ts, date(2024, 6, 11)))
}
