package habit

import "time"

// DayCell is one day of a month view.
type DayCell struct {
	Date     time.Time `json:"-"`
	Key      string    `json:"date"`
	Category Category  `json:"category"`
	Total    int       `json:"total"`
	Done     int       `json:"done"`
}

// Month returns a cell for every day of the given month, in the location of
// today, classified relative to today.
func Month(src TaskSource, year int, month time.Month, today time.Time) []DayCell {
	var cells []DayCell
	for i := 1; ; i++ {
		d := noon(year, month, i, today.Location())
		if d.Month() != month {
			break
		}
		tasks := src.Tasks(Key(d))
		cells = append(cells, DayCell{
			Date:     d,
			Key:      Key(d),
			Category: Classify(src, d, today),
			Total:    len(tasks),
			Done:     countCompleted(tasks),
		})
	}
	return cells
}

// Leading returns how many blank cells precede the first day of a month in a
// grid whose weeks start on weekStart.
func Leading(year int, month time.Month, weekStart time.Weekday) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) - int(weekStart) + 7) % 7
}
