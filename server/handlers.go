package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/existflow/gleam/internal/backup"
	"github.com/existflow/gleam/internal/model"
	"github.com/existflow/gleam/internal/store"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func mutationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrProjectCap):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrEmptyContent), errors.Is(err, store.ErrBadDate):
		return badRequest(c, err)
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// Projects

func (s *Server) handleListProjects(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if month := c.QueryParam("month"); month != "" {
		return c.JSON(http.StatusOK, s.store.VisibleProjects(month))
	}
	return c.JSON(http.StatusOK, s.store.Projects())
}

func (s *Server) handleAddProject(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.AddProject(req.Name)
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	var req struct {
		Name       *string `json:"name"`
		Color      *string `json:"color"`
		IsFinished *bool   `json:"isFinished"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.UpdateProject(c.Param("id"), store.ProjectUpdate{
		Name:       req.Name,
		Color:      req.Color,
		IsFinished: req.IsFinished,
	})
	if p, ok := s.store.ResolveProject(c.Param("id")); ok {
		return c.JSON(http.StatusOK, p)
	}
	return c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.DeleteProject(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleReorderProjects(c echo.Context) error {
	var req struct {
		DraggedID string `json:"draggedId"`
		TargetID  string `json:"targetId"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.ReorderProjects(req.DraggedID, req.TargetID)
	return c.JSON(http.StatusOK, s.store.Projects())
}

// Entries

func (s *Server) handleListEntries(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.store.Entries()
	month := c.QueryParam("month")
	if month == "" || month == store.MonthAll {
		return c.JSON(http.StatusOK, entries)
	}
	filtered := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if e.InMonth(month) {
			filtered = append(filtered, e)
		}
	}
	return c.JSON(http.StatusOK, filtered)
}

func (s *Server) handleEntryForCell(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.store.EntryForCell(c.QueryParam("date"), c.QueryParam("projectId"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no entry for cell"})
	}
	return c.JSON(http.StatusOK, e)
}

func (s *Server) handleAddEntry(c echo.Context) error {
	var req struct {
		Date      string `json:"date"`
		ProjectID string `json:"projectId"`
		Content   string `json:"content"`
		Intensity *int   `json:"intensity"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	intensity := model.DefaultIntensity
	if req.Intensity != nil {
		intensity = *req.Intensity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.store.AddEntry(req.Date, req.ProjectID, req.Content, intensity)
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (s *Server) handleUpdateEntry(c echo.Context) error {
	var req struct {
		Content   *string `json:"content"`
		Intensity *int    `json:"intensity"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpdateEntry(c.Param("id"), store.EntryUpdate{
		Content:   req.Content,
		Intensity: req.Intensity,
	}); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteEntry(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.DeleteEntry(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// Inspirations

func (s *Server) handleListInspirations(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filter := c.QueryParam("filter")
	if filter == "" {
		filter = store.FilterAll
	}
	return c.JSON(http.StatusOK, s.store.FilterInspirations(c.QueryParam("query"), filter))
}

func (s *Server) handleAddInspiration(c echo.Context) error {
	var req struct {
		Content   string `json:"content"`
		ProjectID string `json:"projectId"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.store.AddInspiration(req.Content, req.ProjectID)
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, insp)
}

func (s *Server) handleUpdateInspiration(c echo.Context) error {
	var req struct {
		Content   *string `json:"content"`
		ProjectID *string `json:"projectId"`
		IsHidden  *bool   `json:"isHidden"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpdateInspiration(c.Param("id"), store.InspirationUpdate{
		Content:   req.Content,
		ProjectID: req.ProjectID,
		IsHidden:  req.IsHidden,
	}); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteInspiration(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.DeleteInspiration(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// Views

func (s *Server) handleMonths(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return c.JSON(http.StatusOK, s.store.AvailableMonths())
}

func (s *Server) handleStats(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	month := c.QueryParam("month")
	if month == "" {
		month = store.MonthAll
	}
	status := store.ParseStatus(c.QueryParam("status"))
	return c.JSON(http.StatusOK, s.store.Stats(month, c.QueryParam("query"), status))
}

// Backup

func (s *Server) handleExport(c echo.Context) error {
	s.mu.Lock()
	snap := backup.Export(s.store, time.Now())
	s.mu.Unlock()

	data, err := backup.Encode(snap)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// handleImport replaces all data with the posted snapshot. The caller must
// opt in with ?confirm=true since the overwrite is not reversible.
func (s *Server) handleImport(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "import replaces all data; pass ?confirm=true"})
	}
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := backup.Import(s.store, data); err != nil {
		if errors.Is(err, backup.ErrInvalidSnapshot) {
			return badRequest(c, err)
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
