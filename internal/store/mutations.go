package store

import (
	"errors"
	"strings"
	"time"

	"github.com/existflow/gleam/internal/blob"
	"github.com/existflow/gleam/internal/logger"
	"github.com/existflow/gleam/internal/model"
)

// Validation errors returned by mutations. A failed mutation is a no-op:
// no partial state change ever occurs.
var (
	// ErrProjectCap is returned when adding a project would exceed the
	// cap on concurrently active projects.
	ErrProjectCap = errors.New("active project limit reached")

	// ErrEmptyContent is returned when content is empty or whitespace-only.
	ErrEmptyContent = errors.New("content is empty")

	// ErrBadDate is returned when a date is not a valid YYYY-MM-DD day.
	ErrBadDate = errors.New("invalid date")
)

// ProjectUpdate carries the fields of a partial project update. Nil fields
// are left untouched.
type ProjectUpdate struct {
	Name       *string
	Color      *string
	IsFinished *bool
}

// EntryUpdate carries the fields of a partial entry update.
type EntryUpdate struct {
	Content   *string
	Intensity *int
}

// InspirationUpdate carries the fields of a partial inspiration update.
// A non-nil empty ProjectID unlinks the inspiration.
type InspirationUpdate struct {
	Content   *string
	ProjectID *string
	IsHidden  *bool
}

// AddProject creates a project at the end of the slot order. An empty name
// gets the default. Fails with ErrProjectCap once the active project count
// is at the limit.
func (s *Store) AddProject(name string) (model.Project, error) {
	active := 0
	for _, p := range s.projects {
		if !p.IsFinished {
			active++
		}
	}
	if active >= model.MaxActiveProjects {
		return model.Project{}, ErrProjectCap
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = model.DefaultProjectName
	}

	p := model.Project{
		ID:    s.NewID(),
		Name:  name,
		Color: model.ColorForIndex(len(s.projects)),
		Slot:  len(s.projects),
	}
	s.projects = append(s.projects, p)
	s.persist(blob.KeyProjects)

	logger.Info("project added", logger.F("id", p.ID), logger.F("name", p.Name))
	return p, nil
}

// UpdateProject merges u into the project. Unknown id is a no-op.
func (s *Store) UpdateProject(id string, u ProjectUpdate) {
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		if u.Name != nil && strings.TrimSpace(*u.Name) != "" {
			s.projects[i].Name = strings.TrimSpace(*u.Name)
		}
		if u.Color != nil {
			s.projects[i].Color = *u.Color
		}
		if u.IsFinished != nil {
			s.projects[i].IsFinished = *u.IsFinished
		}
		s.persist(blob.KeyProjects)
		return
	}
}

// DeleteProject removes the project. Entries and inspirations that
// reference it are left alone; the dangling reference reads as unlinked.
func (s *Store) DeleteProject(id string) {
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		s.projects = append(s.projects[:i], s.projects[i+1:]...)
		s.reslot()
		s.persist(blob.KeyProjects)
		logger.Info("project deleted", logger.F("id", id))
		return
	}
}

// ReorderProjects removes the dragged project from its position and
// reinserts it at the target's position, shifting everything in between.
// Slots are reassigned densely afterward. Either id missing is a no-op.
func (s *Store) ReorderProjects(draggedID, targetID string) {
	from, to := -1, -1
	for i, p := range s.projects {
		switch p.ID {
		case draggedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return
	}

	moved := s.projects[from]
	s.projects = append(s.projects[:from], s.projects[from+1:]...)
	s.projects = append(s.projects[:to], append([]model.Project{moved}, s.projects[to:]...)...)
	s.reslot()
	s.persist(blob.KeyProjects)
}

// reslot reassigns slot = index over the current project order, keeping
// slots a dense permutation of 0..count-1.
func (s *Store) reslot() {
	for i := range s.projects {
		s.projects[i].Slot = i
	}
}

// AddEntry writes the grid cell for (date, projectID). If the cell is
// already occupied the existing entry is updated in place, so the
// one-entry-per-cell invariant holds regardless of the caller.
func (s *Store) AddEntry(date, projectID, content string, intensity int) (model.Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Entry{}, ErrEmptyContent
	}
	if _, err := time.Parse(model.DateFormat, date); err != nil {
		return model.Entry{}, ErrBadDate
	}
	intensity = clampIntensity(intensity)

	for i := range s.entries {
		if s.entries[i].Date == date && s.entries[i].ProjectID == projectID {
			s.entries[i].Content = content
			s.entries[i].Intensity = intensity
			s.persist(blob.KeyEntries)
			return s.entries[i], nil
		}
	}

	e := model.Entry{
		ID:        s.NewID(),
		Date:      date,
		ProjectID: projectID,
		Content:   content,
		Intensity: intensity,
	}
	s.entries = append(s.entries, e)
	s.persist(blob.KeyEntries)
	return e, nil
}

// UpdateEntry merges u into the entry. Unknown id is a no-op. Updating to
// empty content is rejected: empty content is never saved.
func (s *Store) UpdateEntry(id string, u EntryUpdate) error {
	if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
		return ErrEmptyContent
	}
	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		if u.Content != nil {
			s.entries[i].Content = strings.TrimSpace(*u.Content)
		}
		if u.Intensity != nil {
			s.entries[i].Intensity = clampIntensity(*u.Intensity)
		}
		s.persist(blob.KeyEntries)
		return nil
	}
	return nil
}

// DeleteEntry removes the entry. Unknown id is a no-op.
func (s *Store) DeleteEntry(id string) {
	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		s.persist(blob.KeyEntries)
		return
	}
}

// AddInspiration prepends a new idea to the pool. projectID may be empty
// for the general pool. Whitespace-only content is rejected.
func (s *Store) AddInspiration(content, projectID string) (model.Inspiration, error) {
	if strings.TrimSpace(content) == "" {
		return model.Inspiration{}, ErrEmptyContent
	}

	insp := model.Inspiration{
		ID:        s.NewID(),
		Content:   content,
		ProjectID: projectID,
		CreatedAt: s.Now().UTC().Format(time.RFC3339),
	}
	s.inspirations = append([]model.Inspiration{insp}, s.inspirations...)
	s.persist(blob.KeyInspirations)
	return insp, nil
}

// UpdateInspiration merges u into the inspiration. Unknown id is a no-op.
func (s *Store) UpdateInspiration(id string, u InspirationUpdate) error {
	if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
		return ErrEmptyContent
	}
	for i := range s.inspirations {
		if s.inspirations[i].ID != id {
			continue
		}
		if u.Content != nil {
			s.inspirations[i].Content = *u.Content
		}
		if u.ProjectID != nil {
			s.inspirations[i].ProjectID = *u.ProjectID
		}
		if u.IsHidden != nil {
			s.inspirations[i].IsHidden = *u.IsHidden
		}
		s.persist(blob.KeyInspirations)
		return nil
	}
	return nil
}

// DeleteInspiration removes the inspiration for good. Unknown id is a no-op.
func (s *Store) DeleteInspiration(id string) {
	for i := range s.inspirations {
		if s.inspirations[i].ID != id {
			continue
		}
		s.inspirations = append(s.inspirations[:i], s.inspirations[i+1:]...)
		s.persist(blob.KeyInspirations)
		return
	}
}

func clampIntensity(n int) int {
	if n < model.MinIntensity {
		return model.MinIntensity
	}
	if n > model.MaxIntensity {
		return model.MaxIntensity
	}
	return n
}
