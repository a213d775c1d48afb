package store

import (
	"sort"
	"strings"

	"github.com/existflow/gleam/internal/model"
)

// MonthAll is the sentinel month meaning "no month filter".
const MonthAll = "ALL"

// Inspiration filter sentinels. Any other filter value is a project id.
const (
	FilterAll      = "ALL"
	FilterUnlinked = "UNLINKED"
	FilterHidden   = "HIDDEN"
)

// StatusFilter narrows projects by finished state.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusOngoing
	StatusFinished
)

// ParseStatus maps a user-facing status name to a StatusFilter.
func ParseStatus(s string) StatusFilter {
	switch strings.ToLower(s) {
	case "ongoing":
		return StatusOngoing
	case "finished":
		return StatusFinished
	default:
		return StatusAll
	}
}

// ProjectStats is one project's review card: its entries for the viewed
// month (date descending) and its visible inspirations (newest first).
type ProjectStats struct {
	Project      model.Project
	Entries      []model.Entry
	Inspirations []model.Inspiration
}

// AvailableMonths returns ALL followed by every month that has an entry,
// unioned with the current month, newest first.
func (s *Store) AvailableMonths() []string {
	seen := map[string]bool{
		s.Now().Format("2006-01"): true,
	}
	for _, e := range s.entries {
		seen[e.Month()] = true
	}

	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	// Lexicographic descending equals chronological descending for the
	// fixed-width YYYY-MM form.
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return append([]string{MonthAll}, months...)
}

// GridProjects returns the projects shown on the matrix: finished projects
// are always excluded there.
func (s *Store) GridProjects() []model.Project {
	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if !p.IsFinished {
			out = append(out, p)
		}
	}
	return out
}

// VisibleProjects returns the projects the review surface shows for a
// month: every active project, plus finished projects that left at least
// one entry in that month. The ALL sentinel shows everything.
func (s *Store) VisibleProjects(month string) []model.Project {
	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if month == MonthAll || !p.IsFinished || s.hasEntryInMonth(p.ID, month) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) hasEntryInMonth(projectID, month string) bool {
	for _, e := range s.entries {
		if e.ProjectID == projectID && e.InMonth(month) {
			return true
		}
	}
	return false
}

// EntryForCell returns the unique entry for a (date, project) cell.
func (s *Store) EntryForCell(date, projectID string) (model.Entry, bool) {
	for _, e := range s.entries {
		if e.Date == date && e.ProjectID == projectID {
			return e, true
		}
	}
	return model.Entry{}, false
}

// ResolveProject looks up a soft project reference. A miss means the
// owner should render as unlinked, never fail.
func (s *Store) ResolveProject(id string) (model.Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// Stats builds the review cards for a month, optionally narrowed by a
// case-insensitive name search and a status filter.
func (s *Store) Stats(month, query string, status StatusFilter) []ProjectStats {
	query = strings.ToLower(query)

	out := []ProjectStats{}
	for _, p := range s.projects {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if status == StatusOngoing && p.IsFinished {
			continue
		}
		if status == StatusFinished && !p.IsFinished {
			continue
		}

		entries := []model.Entry{}
		for _, e := range s.entries {
			if e.ProjectID == p.ID && (month == MonthAll || e.InMonth(month)) {
				entries = append(entries, e)
			}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date > entries[j].Date
		})

		ideas := []model.Inspiration{}
		for _, insp := range s.inspirations {
			if insp.ProjectID == p.ID && !insp.IsHidden {
				ideas = append(ideas, insp)
			}
		}
		sort.SliceStable(ideas, func(i, j int) bool {
			return ideas[i].CreatedAt > ideas[j].CreatedAt
		})

		out = append(out, ProjectStats{Project: p, Entries: entries, Inspirations: ideas})
	}
	return out
}

// FilterInspirations narrows the pool by a case-insensitive content search
// and one of {ALL, UNLINKED, HIDDEN, projectId}. Only the HIDDEN filter
// includes hidden items; every other filter excludes them.
func (s *Store) FilterInspirations(query, filter string) []model.Inspiration {
	query = strings.ToLower(query)

	out := []model.Inspiration{}
	for _, insp := range s.inspirations {
		if query != "" && !strings.Contains(strings.ToLower(insp.Content), query) {
			continue
		}

		if filter == FilterHidden {
			if insp.IsHidden {
				out = append(out, insp)
			}
			continue
		}
		if insp.IsHidden {
			continue
		}

		switch filter {
		case FilterAll, "":
			out = append(out, insp)
		case FilterUnlinked:
			if !insp.Linked() {
				out = append(out, insp)
			}
		default:
			if insp.ProjectID == filter {
				out = append(out, insp)
			}
		}
	}
	return out
}
