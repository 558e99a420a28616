// Package testutil provides testing utilities.
package testutil

import (
	"sync"
)

// FakeMirror is an in-memory habit.Mirror for tests.
type FakeMirror struct {
	mu     sync.Mutex
	data   []byte
	saves  int
	closed bool

	// Error injection for testing
	LoadErr error
	SaveErr error
}

// NewFakeMirror returns a mirror preloaded with data (nil for nothing stored).
func NewFakeMirror(data []byte) *FakeMirror {
	return &FakeMirror{data: data}
}

// Load implements habit.Mirror.
func (f *FakeMirror) Load() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	if f.data == nil {
		return nil, nil
	}
	return append([]byte{}, f.data...), nil
}

// Save implements habit.Mirror.
func (f *FakeMirror) Save(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.data = append([]byte{}, data...)
	f.saves++
	return nil
}

// Close implements habit.Mirror.
func (f *FakeMirror) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Data returns the last saved snapshot.
func (f *FakeMirror) Data() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte{}, f.data...)
}

// Saves returns how many times Save succeeded.
func (f *FakeMirror) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

// Closed reports whether Close was called.
func (f *FakeMirror) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
