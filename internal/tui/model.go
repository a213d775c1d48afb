package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/gleam/internal/logger"
	"github.com/existflow/gleam/internal/model"
	"github.com/existflow/gleam/internal/reveal"
	"github.com/existflow/gleam/internal/store"
)

// Screen represents which top-level screen is shown
type Screen int

const (
	ScreenMatrix Screen = iota
	ScreenIdeas
	ScreenReview
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeLogEntry
	ModeEditEntry
	ModeAddProject
	ModeRenameProject
	ModeAddIdea
	ModeEditIdea
	ModeLinkIdea
	ModeConfirmDelete
	ModeSearch
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	store *store.Store

	screen Screen
	mode   Mode

	// Matrix state
	month    string // viewed month, YYYY-MM
	months   []string
	gridCols []model.Project
	dayCur   int // 0-based day index
	projCur  int

	// Ideas state
	ideas      []model.Inspiration
	ideaCur    int
	ideaFilter string
	ideaTail   string         // lines past the first while editing a multi-line idea
	tray       reveal.Gesture // reveal tray for the row under the cursor
	trayX      float64        // virtual pointer position driving the tray

	// Review state
	statsMonth string // may be the ALL sentinel, unlike the matrix month
	stats      []store.ProjectStats
	statsCur   int
	statsStat  store.StatusFilter

	// Shared
	query string
	input textinput.Model

	width   int
	height  int
	message string
}

// NewModel creates a new TUI model over an opened store.
func NewModel(s *store.Store) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "What did you do?"
	ti.CharLimit = 512
	ti.Width = 50

	m := Model{
		store:      s,
		screen:     ScreenMatrix,
		mode:       ModeNormal,
		month:      s.Now().Format("2006-01"),
		statsMonth: store.MonthAll,
		ideaFilter: store.FilterAll,
		input:      ti,
	}
	m.loadData()

	logger.Debug("TUI model initialized",
		logger.F("month", m.month),
		logger.F("projects", len(m.gridCols)))
	return m
}

func (m *Model) loadData() {
	m.months = m.store.AvailableMonths()
	// The grid never shows finished practices, whichever month is viewed.
	m.gridCols = m.store.GridProjects()
	if m.projCur >= len(m.gridCols) {
		m.projCur = 0
	}
	if days := daysIn(m.month); m.dayCur >= days {
		m.dayCur = days - 1
	}

	m.ideas = m.store.FilterInspirations(m.query, m.ideaFilter)
	if m.ideaCur >= len(m.ideas) {
		m.ideaCur = 0
	}

	m.stats = m.store.Stats(m.statsMonth, m.query, m.statsStat)
	if m.statsCur >= len(m.stats) {
		m.statsCur = 0
	}
}

// currentCell returns the date and project under the matrix cursor.
func (m *Model) currentCell() (string, *model.Project) {
	if m.projCur >= len(m.gridCols) {
		return "", nil
	}
	p := m.gridCols[m.projCur]
	t, err := time.Parse("2006-01", m.month)
	if err != nil {
		return "", nil
	}
	date := t.AddDate(0, 0, m.dayCur).Format(model.DateFormat)
	return date, &p
}

func (m *Model) currentIdea() *model.Inspiration {
	if m.ideaCur < len(m.ideas) {
		return &m.ideas[m.ideaCur]
	}
	return nil
}

// daysIn returns the day count of a YYYY-MM month, defaulting to 31 when
// the month string is malformed.
func daysIn(month string) int {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 31
	}
	return t.AddDate(0, 1, -1).Day()
}
