package habit

import "time"

// Streak counts consecutive fully completed days ending yesterday. Today is
// skipped so an unfinished today neither breaks nor extends the streak. A day
// with no tasks ends the streak like a day with an incomplete task.
func Streak(src TaskSource, today time.Time) int {
	y, m, d := today.Date()
	n := 0
	for allCompleted(src.Tasks(Key(noon(y, m, d-n-1, today.Location())))) {
		n++
	}
	return n
}
