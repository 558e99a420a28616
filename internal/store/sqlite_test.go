package store

import (
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/habitual/internal/habit"
)

func newSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSQLiteLoadEmpty(t *testing.T) {
	s, _ := newSQLite(t)
	data, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSQLiteSaveOverwrites(t *testing.T) {
	s, _ := newSQLite(t)
	require.NoError(t, s.Save([]byte(`{"a":[]}`)))
	require.NoError(t, s.Save([]byte(`{"b":[]}`)))

	data, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, `{"b":[]}`, string(data))

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSQLiteSnapshotSurvivesReopen(t *testing.T) {
	s, path := newSQLite(t)
	logger, _ := logtest.NewNullLogger()

	st, err := habit.Open(s, logger)
	require.NoError(t, err)
	a, err := st.AddTask("2024-06-10", "Read")
	require.NoError(t, err)
	b, err := st.AddTask("2024-06-10", "Run")
	require.NoError(t, err)
	require.NoError(t, st.ToggleTask("2024-06-10", a.ID))
	want := st.Snapshot()
	require.NoError(t, st.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	st2, err := habit.Open(reopened, logger)
	require.NoError(t, err)

	assert.Equal(t, want, st2.Snapshot())
	assert.Equal(t, []int64{a.ID, b.ID}, []int64{st2.Tasks("2024-06-10")[0].ID, st2.Tasks("2024-06-10")[1].ID})
}

func TestSQLiteCorruptValueLoadsEmpty(t *testing.T) {
	s, _ := newSQLite(t)
	require.NoError(t, s.Save([]byte("{oops")))

	logger, hook := logtest.NewNullLogger()
	st, err := habit.Open(s, logger)
	require.NoError(t, err)
	assert.Empty(t, st.Snapshot())
	assert.NotEmpty(t, hook.AllEntries())
}
