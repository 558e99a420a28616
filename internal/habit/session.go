package habit

import (
	"fmt"
	"time"
)

// Session is what a presentation layer holds: the store, a clock and the
// selected date cursor. The cursor is not persisted.
type Session struct {
	store    *Store
	now      func() time.Time
	selected time.Time
}

// NewSession returns a session with today selected.
func NewSession(store *Store) *Session {
	s := &Session{store: store, now: time.Now}
	s.selected = s.Today()
	return s
}

// SetClock overrides the session clock (for testing). The selection is reset
// to the new today.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
	s.selected = s.Today()
}

func (s *Session) Store() *Store { return s.store }

// Today is the current calendar day at midnight.
func (s *Session) Today() time.Time {
	return Day(s.now())
}

func (s *Session) Selected() time.Time { return s.selected }

// SelectedKey is the date key of the selected day.
func (s *Session) SelectedKey() string { return Key(s.selected) }

// Select moves the cursor. Future days are locked and cannot be selected.
func (s *Session) Select(date time.Time) error {
	if after(date, s.now()) {
		return fmt.Errorf("%w: %s", ErrLocked, Key(date))
	}
	s.selected = Day(date)
	return nil
}

func (s *Session) Tasks() []Task {
	return s.store.Tasks(s.SelectedKey())
}

func (s *Session) Add(text string) (Task, error) {
	return s.store.AddTask(s.SelectedKey(), text)
}

func (s *Session) Toggle(id int64) error {
	return s.store.ToggleTask(s.SelectedKey(), id)
}

func (s *Session) Edit(id int64, text string) error {
	return s.store.EditTask(s.SelectedKey(), id, text)
}

func (s *Session) Delete(id int64) error {
	return s.store.DeleteTask(s.SelectedKey(), id)
}

// Streak is the current streak as of today.
func (s *Session) Streak() int {
	return Streak(s.store, s.now())
}

func (s *Session) Classify(date time.Time) Category {
	return Classify(s.store, date, s.now())
}

// Month is the month view containing date.
func (s *Session) Month(date time.Time) []DayCell {
	return Month(s.store, date.Year(), date.Month(), s.Today())
}
