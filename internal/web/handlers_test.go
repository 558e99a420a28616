package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/habitual/internal/habit"
	"github.com/MihkelHunter/habitual/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *testutil.FakeMirror) {
	t.Helper()
	m := testutil.NewFakeMirror(nil)
	logger, _ := logtest.NewNullLogger()
	st, err := habit.Open(m, logger)
	require.NoError(t, err)
	sess := habit.NewSession(st)
	sess.SetClock(func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local) })
	return New(sess, logger), m
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAddAndListTasks(t *testing.T) {
	s, m := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/days/2024-06-10/tasks", `{"text":"Read"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[habit.Task](t, rec)
	assert.Equal(t, "Read", task.Text)
	assert.False(t, task.Completed)
	assert.Equal(t, 1, m.Saves())

	rec = do(t, s, http.MethodGet, "/api/days/2024-06-10/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"date":"2024-06-10","category":"today-pending","tasks":[{"id":`+strconv.FormatInt(task.ID, 10)+`,"text":"Read","completed":false}]}`,
		rec.Body.String())
}

func TestAddTaskEmptyText(t *testing.T) {
	s, m := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/days/2024-06-10/tasks", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, m.Saves())
}

func TestMutatingFutureDayIsLocked(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/days/2024-06-11/tasks", `{"text":"Later"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/days/2024-06-11/category", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-06-11","category":"locked"}`, rec.Body.String())
}

func TestInvalidDateAndID(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/days/june/tasks", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/days/2024-06-10/tasks/abc/toggle", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/calendar?month=2024-13", "").Code)
}

func TestToggleEditDelete(t *testing.T) {
	s, _ := newTestServer(t)
	task := decode[habit.Task](t, do(t, s, http.MethodPost, "/api/days/2024-06-09/tasks", `{"text":"Run"}`))
	path := "/api/days/2024-06-09/tasks/" + strconv.FormatInt(task.ID, 10)

	rec := do(t, s, http.MethodPost, path+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	day := decode[dayResponse](t, rec)
	assert.Equal(t, habit.Complete, day.Category)
	assert.True(t, day.Tasks[0].Completed)

	rec = do(t, s, http.MethodGet, "/api/streak", "")
	assert.JSONEq(t, `{"today":"2024-06-10","streak":1}`, rec.Body.String())

	rec = do(t, s, http.MethodPut, path, `{"text":"Run 5k"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Run 5k", decode[dayResponse](t, rec).Tasks[0].Text)

	rec = do(t, s, http.MethodPut, path, `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPersistFailureIsServerError(t *testing.T) {
	s, m := newTestServer(t)
	m.SaveErr = errors.New("disk full")
	rec := do(t, s, http.MethodPost, "/api/days/2024-06-10/tasks", `{"text":"Read"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk full")
}

func TestServerErrorsLogThroughLogger(t *testing.T) {
	m := testutil.NewFakeMirror(nil)
	logger, hook := logtest.NewNullLogger()
	st, err := habit.Open(m, logger)
	require.NoError(t, err)
	sess := habit.NewSession(st)
	sess.SetClock(func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local) })
	s := New(sess, logger)
	m.SaveErr = errors.New("disk full")

	rec := do(t, s, http.MethodPost, "/api/days/2024-06-10/tasks", `{"text":"Read"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var failed *log.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "request failed" {
			failed = e
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, log.ErrorLevel, failed.Level)
	assert.ErrorIs(t, failed.Data[log.ErrorKey].(error), habit.ErrPersist)
	assert.Equal(t, "/api/days/:date/tasks", failed.Data["path"])
	assert.NotEmpty(t, failed.Data["request_id"])

	// client errors are not logged as failures
	hook.Reset()
	do(t, s, http.MethodPost, "/api/days/2024-06-10/tasks", `{"text":"  "}`)
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, "request failed", e.Message)
	}
}

func TestCalendar(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/days/2024-06-01/tasks", `{"text":"Read"}`)

	rec := do(t, s, http.MethodGet, "/api/calendar?month=2024-06", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cal := decode[struct {
		Month string `json:"month"`
		Days  []struct {
			Date     string `json:"date"`
			Category string `json:"category"`
			Total    int    `json:"total"`
		} `json:"days"`
	}](t, rec)
	assert.Equal(t, "2024-06", cal.Month)
	require.Len(t, cal.Days, 30)
	assert.Equal(t, "incomplete", cal.Days[0].Category)
	assert.Equal(t, 1, cal.Days[0].Total)
	assert.Equal(t, "empty", cal.Days[9].Category)
	assert.Equal(t, "locked", cal.Days[10].Category)

	rec = do(t, s, http.MethodGet, "/api/calendar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"month":"2024-06"`)
}
