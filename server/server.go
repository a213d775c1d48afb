// Package server exposes one store instance as a local JSON API. The store
// is single-writer by design, so every handler takes the server mutex:
// that is the transaction boundary that keeps the grid invariants safe
// once HTTP introduces concurrent callers.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/existflow/gleam/internal/logger"
	"github.com/existflow/gleam/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server wraps the store behind an echo router.
type Server struct {
	mu    sync.Mutex
	store *store.Store
	echo  *echo.Echo
}

// New creates a server over an already-opened store.
func New(s *store.Store) *Server {
	srv := &Server{store: s}
	srv.setupEcho()
	return srv
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Request logging through the app logger, not echo's.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				logger.F("method", c.Request().Method),
				logger.F("uri", c.Request().RequestURI),
				logger.F("status", c.Response().Status),
				logger.F("duration", time.Since(start).String()))
			return err
		}
	})
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")

	api.GET("/projects", s.handleListProjects)
	api.POST("/projects", s.handleAddProject)
	api.PATCH("/projects/:id", s.handleUpdateProject)
	api.DELETE("/projects/:id", s.handleDeleteProject)
	api.POST("/projects/reorder", s.handleReorderProjects)

	api.GET("/entries", s.handleListEntries)
	api.GET("/entries/cell", s.handleEntryForCell)
	api.POST("/entries", s.handleAddEntry)
	api.PATCH("/entries/:id", s.handleUpdateEntry)
	api.DELETE("/entries/:id", s.handleDeleteEntry)

	api.GET("/inspirations", s.handleListInspirations)
	api.POST("/inspirations", s.handleAddInspiration)
	api.PATCH("/inspirations/:id", s.handleUpdateInspiration)
	api.DELETE("/inspirations/:id", s.handleDeleteInspiration)

	api.GET("/months", s.handleMonths)
	api.GET("/stats", s.handleStats)

	api.GET("/backup", s.handleExport)
	api.POST("/backup", s.handleImport)

	s.echo = e
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Close shuts the listener down.
func (s *Server) Close() error {
	return s.echo.Close()
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
