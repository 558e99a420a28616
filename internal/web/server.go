// Package web serves the habit engine as a JSON API over Echo.
package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/habitual/internal/habit"
)

// Server wraps an Echo instance bound to one habit session. The engine is
// single threaded, so every handler runs under mu.
type Server struct {
	e    *echo.Echo
	sess *habit.Session
	log  log.FieldLogger
	mu   sync.Mutex
}

// New builds the server and registers all routes.
func New(sess *habit.Session, logger log.FieldLogger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(logger))

	s := &Server{e: e, sess: sess, log: logger}
	s.register()
	return s
}

func (s *Server) register() {
	s.e.GET("/healthz", s.healthz)
	s.e.GET("/api/streak", s.getStreak)
	s.e.GET("/api/calendar", s.getCalendar)
	s.e.GET("/api/days/:date/category", s.getCategory)
	s.e.GET("/api/days/:date/tasks", s.getTasks)
	s.e.POST("/api/days/:date/tasks", s.addTask)
	s.e.PUT("/api/days/:date/tasks/:id", s.editTask)
	s.e.POST("/api/days/:date/tasks/:id/toggle", s.toggleTask)
	s.e.DELETE("/api/days/:date/tasks/:id", s.deleteTask)
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.log.WithField("addr", addr).Info("listening")
	if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func requestLogger(logger log.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.WithFields(log.Fields{
				"method":     c.Request().Method,
				"path":       c.Path(),
				"status":     c.Response().Status,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"duration":   time.Since(start).String(),
			}).Debug("request")
			return nil
		}
	}
}
