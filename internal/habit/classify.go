package habit

import (
	"fmt"
	"strconv"
	"time"
)

// Category is the display classification of a calendar day.
type Category int

const (
	Empty Category = iota
	Locked
	Complete
	TodayPending
	Incomplete
)

func (c Category) String() string {
	switch c {
	case Locked:
		return "locked"
	case Complete:
		return "complete"
	case TodayPending:
		return "today-pending"
	case Incomplete:
		return "incomplete"
	default:
		return "empty"
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name produced by MarshalText.
func (c *Category) UnmarshalText(text []byte) error {
	for _, cat := range []Category{Empty, Locked, Complete, TodayPending, Incomplete} {
		if cat.String() == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}

// Selectable reports whether a day in this category may be opened for editing.
func (c Category) Selectable() bool {
	return c != Locked
}

// LockGlyph is shown on days that cannot be opened.
const LockGlyph = "🔒"

// Label is the tile caption for day d of a month in this category.
func (c Category) Label(d int) string {
	if c == Locked {
		return strconv.Itoa(d) + " " + LockGlyph
	}
	return strconv.Itoa(d)
}

// Classify derives the category of date relative to today. Both are compared
// by calendar day, so time of day never matters. Future days are Locked
// whatever tasks they hold.
func Classify(src TaskSource, date, today time.Time) Category {
	if after(date, today) {
		return Locked
	}
	tasks := src.Tasks(Key(date))
	switch {
	case len(tasks) == 0:
		return Empty
	case allCompleted(tasks):
		return Complete
	case SameDay(date, today):
		return TodayPending
	default:
		return Incomplete
	}
}
