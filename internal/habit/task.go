// Package habit is the habit-tracking engine: a date-keyed task store mirrored
// to durable storage, plus the derived streak and calendar classification.
// Presentation layers (desktop, web, CLI) call into it and render its results.
package habit

import (
	"encoding/json"
	"errors"
)

// StorageKey is the key the serialized snapshot lives under in a Mirror.
const StorageKey = "tasks"

var (
	// ErrValidation is returned when task text is empty after trimming.
	ErrValidation = errors.New("task cannot be empty")

	// ErrNotFound is returned when a date bucket or task id does not exist.
	ErrNotFound = errors.New("task not found")

	// ErrPersist wraps failures writing the snapshot to the mirror.
	// The in-memory mutation has already been applied when it is returned.
	ErrPersist = errors.New("persist tasks")

	// ErrLocked is returned when selecting or mutating a future day.
	ErrLocked = errors.New("day is locked")

	// ErrInvalidDate is returned for keys that are not yyyy-MM-dd.
	ErrInvalidDate = errors.New("invalid date")
)

// Task is a single habit item for one day.
type Task struct {
	ID        int64  `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Snapshot is the persisted form of the store: date key to ordered tasks.
type Snapshot map[string][]Task

// EncodeSnapshot serializes s to the JSON shape stored under StorageKey.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	if s == nil {
		s = Snapshot{}
	}
	return json.Marshal(s)
}

// DecodeSnapshot parses data produced by EncodeSnapshot.
// Empty input yields an empty snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	s := Snapshot{}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s == nil {
		// "null" decodes to a nil map
		s = Snapshot{}
	}
	for k, tasks := range s {
		if tasks == nil {
			s[k] = []Task{}
		}
	}
	return s, nil
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, tasks := range s {
		out[k] = append([]Task{}, tasks...)
	}
	return out
}

func allCompleted(tasks []Task) bool {
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return len(tasks) > 0
}

func countCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
