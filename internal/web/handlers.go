package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/habitual/internal/habit"
)

type textRequest struct {
	Text string `json:"text"`
}

type dayResponse struct {
	Date     string         `json:"date"`
	Category habit.Category `json:"category"`
	Tasks    []habit.Task   `json:"tasks"`
}

type streakResponse struct {
	Today  string `json:"today"`
	Streak int    `json:"streak"`
}

type categoryResponse struct {
	Date     string         `json:"date"`
	Category habit.Category `json:"category"`
}

type calendarResponse struct {
	Month string          `json:"month"`
	Days  []habit.DayCell `json:"days"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (s *Server) getStreak(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, streakResponse{
		Today:  habit.Key(s.sess.Today()),
		Streak: s.sess.Streak(),
	})
}

func (s *Server) getCalendar(c echo.Context) error {
	month := s.sess.Today()
	if v := strings.TrimSpace(c.QueryParam("month")); v != "" {
		m, err := habit.ParseMonth(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid month: " + v})
		}
		month = m
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, calendarResponse{
		Month: month.Format(habit.MonthLayout),
		Days:  s.sess.Month(month),
	})
}

func (s *Server) getCategory(c echo.Context) error {
	date, err := habit.ParseKey(c.Param("date"))
	if err != nil {
		return s.writeError(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, categoryResponse{Date: habit.Key(date), Category: s.sess.Classify(date)})
}

func (s *Server) getTasks(c echo.Context) error {
	date, err := habit.ParseKey(c.Param("date"))
	if err != nil {
		return s.writeError(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.day(date))
}

func (s *Server) addTask(c echo.Context) error {
	date, err := s.editableDate(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	task, err := s.sess.Store().AddTask(habit.Key(date), req.Text)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) editTask(c echo.Context) error {
	date, id, err := s.taskRef(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.Store().EditTask(habit.Key(date), id, req.Text); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.day(date))
}

func (s *Server) toggleTask(c echo.Context) error {
	date, id, err := s.taskRef(c)
	if err != nil {
		return s.writeError(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.Store().ToggleTask(habit.Key(date), id); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.day(date))
}

func (s *Server) deleteTask(c echo.Context) error {
	date, id, err := s.taskRef(c)
	if err != nil {
		return s.writeError(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.Store().DeleteTask(habit.Key(date), id); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// day must be called with mu held.
func (s *Server) day(date time.Time) dayResponse {
	return dayResponse{
		Date:     habit.Key(date),
		Category: s.sess.Classify(date),
		Tasks:    s.sess.Store().Tasks(habit.Key(date)),
	}
}

// editableDate parses :date and refuses future days, which the calendar
// never lets the user open.
func (s *Server) editableDate(c echo.Context) (time.Time, error) {
	date, err := habit.ParseKey(c.Param("date"))
	if err != nil {
		return time.Time{}, err
	}
	if date.After(s.sess.Today()) {
		return time.Time{}, habit.ErrLocked
	}
	return date, nil
}

func (s *Server) taskRef(c echo.Context) (time.Time, int64, error) {
	date, err := s.editableDate(c)
	if err != nil {
		return time.Time{}, 0, err
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return time.Time{}, 0, errBadID
	}
	return date, id, nil
}

var errBadID = errors.New("invalid task id")

func (s *Server) writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, habit.ErrValidation), errors.Is(err, habit.ErrInvalidDate), errors.Is(err, errBadID):
		status = http.StatusBadRequest
	case errors.Is(err, habit.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, habit.ErrLocked):
		status = http.StatusConflict
	default:
		s.log.WithError(err).WithFields(log.Fields{
			"path":       c.Path(),
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		}).Error("request failed")
	}
	return c.JSON(status, errorResponse{Error: err.Error()})
}
