package habit_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/habitual/internal/habit"
)

func TestMonth(t *testing.T) {
	snap := snapshotSource{
		"2024-02-01": {done("a"), pending("bb")},
		"2024-02-14": {done("a"), done("bb")},
		"2024-02-20": {pending("a")},
	}
	cells := habit.Month(snap, 2024, time.February, date(2024, 2, 20))

	require.Len(t, cells, 29)
	assert.Equal(t, "2024-02-01", cells[0].Key)
	assert.Equal(t, habit.Incomplete, cells[0].Category)
	assert.Equal(t, 2, cells[0].Total)
	assert.Equal(t, 1, cells[0].Done)
	assert.Equal(t, habit.Complete, cells[13].Category)
	assert.Equal(t, habit.TodayPending, cells[19].Category)
	assert.Equal(t, habit.Locked, cells[20].Category)
	assert.Equal(t, "2024-02-29", cells[28].Key)
	assert.Equal(t, habit.Empty, cells[1].Category)
}

func TestMonthAcrossMidnightDSTStart(t *testing.T) {
	tests := []struct {
		zone  string
		year  int
		month time.Month
		days  int
		gap   string
	}{
		{"America/Santiago", 2024, time.September, 30, "2024-09-08"},
		{"America/Sao_Paulo", 2018, time.November, 30, "2018-11-04"},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			loc := zone(t, tt.zone)
			today := time.Date(tt.year, tt.month, 20, 9, 0, 0, 0, loc)
			cells := habit.Month(snapshotSource(habit.Snapshot{}), tt.year, tt.month, today)

			require.Len(t, cells, tt.days)
			seen := map[string]bool{}
			for i, c := range cells {
				assert.Equal(t, i+1, c.Date.Day())
				assert.False(t, seen[c.Key], "duplicate key %s", c.Key)
				seen[c.Key] = true
			}
			assert.True(t, seen[tt.gap])
		})
	}
}

func TestDayCellJSON(t *testing.T) {
	cell := habit.DayCell{Key: "2024-06-10", Category: habit.TodayPending, Total: 2, Done: 1}
	data, err := json.Marshal(cell)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-10","category":"today-pending","total":2,"done":1}`, string(data))
}

func TestLeading(t *testing.T) {
	// June 1st 2024 was a Saturday
	assert.Equal(t, 6, habit.Leading(2024, time.June, time.Sunday))
	assert.Equal(t, 5, habit.Leading(2024, time.June, time.Monday))
	// September 1st 2024 was a Sunday
	assert.Equal(t, 0, habit.Leading(2024, time.September, time.Sunday))
	assert.Equal(t, 6, habit.Leading(2024, time.September, time.Monday))
}
