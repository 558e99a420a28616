package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MihkelHunter/habitual/internal/habit"
)

// Legend explains the calendar markers.
const Legend = "+ complete  ~ today pending  x incomplete  # locked"

// FormatDay prints the task list of one day.
// Format: "[x] {ID}  {TEXT}" per task, under a "Tasks for ..." header.
func FormatDay(w io.Writer, date time.Time, tasks []habit.Task) {
	fmt.Fprintf(w, "Tasks for %s\n", date.Format("January 2, 2006"))
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks for this day. Time to relax!")
		return
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s %d  %s\n", box, t.ID, normalizeText(t.Text))
	}
}

// FormatCalendar prints a Sunday-first month grid. Each day is its number
// followed by a category marker.
func FormatCalendar(w io.Writer, month time.Time, cells []habit.DayCell, streak int) {
	fmt.Fprintf(w, "%s  streak %d\n", month.Format("January 2006"), streak)
	fmt.Fprintln(w, "Su  Mo  Tu  We  Th  Fr  Sa")

	lead := habit.Leading(month.Year(), month.Month(), time.Sunday)
	row := make([]string, 0, 7)
	for i := 0; i < lead; i++ {
		row = append(row, "   ")
	}
	for _, c := range cells {
		row = append(row, fmt.Sprintf("%2d%c", c.Date.Day(), marker(c.Category)))
		if len(row) == 7 {
			fmt.Fprintln(w, strings.TrimRight(strings.Join(row, " "), " "))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		fmt.Fprintln(w, strings.TrimRight(strings.Join(row, " "), " "))
	}
	fmt.Fprintln(w, Legend)
}

func marker(c habit.Category) rune {
	switch c {
	case habit.Complete:
		return '+'
	case habit.TodayPending:
		return '~'
	case habit.Incomplete:
		return 'x'
	case habit.Locked:
		return '#'
	default:
		return ' '
	}
}

// normalizeText replaces newlines with spaces for single-line display.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
