package habit

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Mirror is the durable storage contract. It holds one serialized snapshot
// under StorageKey. Any backend (SQLite, Redis, in-memory) must satisfy it.
// Load returns nil data when nothing has been stored yet.
type Mirror interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Close() error
}

// TaskSource is the read side of the store used by the derived computations.
type TaskSource interface {
	Tasks(key string) []Task
}

// Store owns the date-keyed task map. The in-memory map is the source of
// truth for reads; every successful mutation is written through to the
// mirror before returning.
type Store struct {
	mirror  Mirror
	log     log.FieldLogger
	now     func() time.Time
	tasks   Snapshot
	lastID  int64
	version uint64
}

// Open loads the snapshot from m and returns a Store. A missing or malformed
// snapshot yields an empty store; only a mirror read failure is an error.
func Open(m Mirror, logger log.FieldLogger) (*Store, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	data, err := m.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		logger.WithError(err).Warn("stored tasks are malformed, starting empty")
		snap = Snapshot{}
	}

	s := &Store{mirror: m, log: logger, now: time.Now, tasks: snap}
	for _, tasks := range snap {
		for _, t := range tasks {
			if t.ID > s.lastID {
				s.lastID = t.ID
			}
		}
	}
	logger.WithField("days", len(snap)).Debug("tasks loaded")
	return s, nil
}

// SetClock overrides the clock used for task ids (for testing).
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Tasks returns a copy of the tasks for key, in display order.
// The result is never nil.
func (s *Store) Tasks(key string) []Task {
	return append([]Task{}, s.tasks[key]...)
}

// Snapshot returns a deep copy of the whole store.
func (s *Store) Snapshot() Snapshot {
	return s.tasks.Clone()
}

// Version increases by one on every applied mutation.
func (s *Store) Version() uint64 {
	return s.version
}

// AddTask appends a new incomplete task to the bucket for key.
func (s *Store) AddTask(key, text string) (Task, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, ErrValidation
	}
	t := Task{ID: s.nextID(), Text: text}
	s.tasks[key] = append(s.tasks[key], t)
	s.log.WithFields(log.Fields{"date": key, "id": t.ID}).Debug("task added")
	return t, s.commit()
}

// ToggleTask flips the completed flag of a task.
func (s *Store) ToggleTask(key string, id int64) error {
	i, err := s.find(key, id)
	if err != nil {
		return err
	}
	s.tasks[key][i].Completed = !s.tasks[key][i].Completed
	s.log.WithFields(log.Fields{"date": key, "id": id, "completed": s.tasks[key][i].Completed}).Debug("task toggled")
	return s.commit()
}

// EditTask replaces the text of a task. Empty text is rejected as in AddTask.
func (s *Store) EditTask(key string, id int64, text string) error {
	i, err := s.find(key, id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return ErrValidation
	}
	s.tasks[key][i].Text = text
	s.log.WithFields(log.Fields{"date": key, "id": id}).Debug("task edited")
	return s.commit()
}

// DeleteTask removes a task, keeping the order of the rest. The bucket stays
// even when it becomes empty.
func (s *Store) DeleteTask(key string, id int64) error {
	i, err := s.find(key, id)
	if err != nil {
		return err
	}
	bucket := s.tasks[key]
	rest := make([]Task, 0, len(bucket)-1)
	rest = append(rest, bucket[:i]...)
	s.tasks[key] = append(rest, bucket[i+1:]...)
	s.log.WithFields(log.Fields{"date": key, "id": id}).Debug("task deleted")
	return s.commit()
}

// Flush writes the current in-memory state to the mirror again.
func (s *Store) Flush() error {
	return s.save()
}

func (s *Store) Close() error {
	return s.mirror.Close()
}

func (s *Store) find(key string, id int64) (int, error) {
	bucket, ok := s.tasks[key]
	if !ok {
		return -1, fmt.Errorf("%w: no tasks on %s", ErrNotFound, key)
	}
	for i, t := range bucket {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: id %d on %s", ErrNotFound, id, key)
}

// nextID derives an id from the creation time in milliseconds, bumped past
// the last issued id so ids stay unique and increasing.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) commit() error {
	s.version++
	return s.save()
}

func (s *Store) save() error {
	data, err := EncodeSnapshot(s.tasks)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	if err := s.mirror.Save(data); err != nil {
		s.log.WithError(err).Error("saving tasks failed, changes are in memory only")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
