package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/gleam/internal/model"
	"github.com/existflow/gleam/internal/reveal"
	"github.com/existflow/gleam/internal/store"
)

// trayStep is how far one key press moves the virtual pointer when
// dragging an idea row's action tray open or shut.
const trayStep = 60

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeLogEntry, ModeEditEntry, ModeAddProject, ModeRenameProject,
			ModeAddIdea, ModeEditIdea, ModeLinkIdea:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Matrix):
		m.screen = ScreenMatrix
		m.message = ""
		m.loadData()
		return m, nil

	case key.Matches(msg, keys.Ideas):
		m.screen = ScreenIdeas
		m.message = ""
		m.loadData()
		return m, nil

	case key.Matches(msg, keys.Review):
		m.screen = ScreenReview
		m.message = ""
		m.loadData()
		return m, nil

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, keys.Search):
		if m.screen != ScreenMatrix {
			return m.startSearch()
		}
		return m, nil
	}

	switch m.screen {
	case ScreenMatrix:
		return m.handleMatrixKeys(msg)
	case ScreenIdeas:
		return m.handleIdeasKeys(msg)
	default:
		return m.handleReviewKeys(msg)
	}
}

// Matrix screen

func (m Model) handleMatrixKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.dayCur > 0 {
			m.dayCur--
		}

	case key.Matches(msg, keys.Down):
		if m.dayCur < daysIn(m.month)-1 {
			m.dayCur++
		}

	case key.Matches(msg, keys.Left):
		if m.projCur > 0 {
			m.projCur--
		}

	case key.Matches(msg, keys.Right):
		if m.projCur < len(m.gridCols)-1 {
			m.projCur++
		}

	case key.Matches(msg, keys.PrevMonth):
		m.shiftMonth(1) // months are newest first

	case key.Matches(msg, keys.NextMonth):
		m.shiftMonth(-1)

	case key.Matches(msg, keys.Enter):
		return m.startLogEntry()

	case key.Matches(msg, keys.Add):
		return m.startAddProject()

	case key.Matches(msg, keys.Delete):
		m.handleDeleteEntry()

	case msg.String() == "+", msg.String() == "=":
		m.adjustIntensity(1)

	case msg.String() == "-":
		m.adjustIntensity(-1)

	case msg.String() == "r":
		return m.startRenameProject()

	case msg.String() == "F":
		m.handleToggleFinished()

	case msg.String() == "D":
		return m.startDeleteProject()

	case msg.String() == "<":
		m.moveColumn(-1)

	case msg.String() == ">":
		m.moveColumn(1)
	}

	return m, nil
}

// shiftMonth moves the viewed month by n steps through the known months,
// skipping the ALL sentinel since the grid always shows a single month.
func (m *Model) shiftMonth(n int) {
	idx := -1
	for i, mo := range m.months {
		if mo == m.month {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	idx += n
	if idx < 0 || idx >= len(m.months) || m.months[idx] == store.MonthAll {
		return
	}
	m.month = m.months[idx]
	m.dayCur = 0
	m.projCur = 0
	m.loadData()
}

func (m Model) startLogEntry() (tea.Model, tea.Cmd) {
	date, p := m.currentCell()
	if p == nil {
		m.message = "No practice column selected"
		return m, nil
	}
	m.mode = ModeLogEntry
	m.input.SetValue("")
	m.input.Placeholder = "What did you do?"
	if e, ok := m.store.EntryForCell(date, p.ID); ok {
		m.mode = ModeEditEntry
		m.input.SetValue(e.Content)
	}
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m Model) startAddProject() (tea.Model, tea.Cmd) {
	m.mode = ModeAddProject
	m.input.SetValue("")
	m.input.Placeholder = "Practice name..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startRenameProject() (tea.Model, tea.Cmd) {
	_, p := m.currentCell()
	if p == nil {
		return m, nil
	}
	m.mode = ModeRenameProject
	m.input.SetValue(p.Name)
	m.input.Placeholder = "Practice name..."
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m *Model) handleToggleFinished() {
	_, p := m.currentCell()
	if p == nil {
		return
	}
	finished := !p.IsFinished
	m.store.UpdateProject(p.ID, store.ProjectUpdate{IsFinished: &finished})
	m.loadData()
	if finished {
		m.message = fmt.Sprintf("Finished %s, find it in Review", p.Name)
	} else {
		m.message = fmt.Sprintf("Resumed %s", p.Name)
	}
}

// startDeleteProject asks before deleting: the practice and its entries
// vanish from every view and there is no undo.
func (m Model) startDeleteProject() (tea.Model, tea.Cmd) {
	if _, p := m.currentCell(); p == nil {
		return m, nil
	}
	m.mode = ModeConfirmDelete
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	if msg.String() != "y" && msg.String() != "Y" {
		m.message = "Cancelled"
		return m, nil
	}
	if _, p := m.currentCell(); p != nil {
		m.store.DeleteProject(p.ID)
		m.loadData()
		m.message = fmt.Sprintf("Deleted %s", p.Name)
	}
	return m, nil
}

// moveColumn swaps the cursor column with its neighbor via the same splice
// the drag reorder uses.
func (m *Model) moveColumn(dir int) {
	target := m.projCur + dir
	if m.projCur >= len(m.gridCols) || target < 0 || target >= len(m.gridCols) {
		return
	}
	m.store.ReorderProjects(m.gridCols[m.projCur].ID, m.gridCols[target].ID)
	m.projCur = target
	m.loadData()
}

func (m *Model) handleDeleteEntry() {
	date, p := m.currentCell()
	if p == nil {
		return
	}
	if e, ok := m.store.EntryForCell(date, p.ID); ok {
		m.store.DeleteEntry(e.ID)
		m.loadData()
		m.message = "Entry cleared"
	}
}

func (m *Model) adjustIntensity(by int) {
	date, p := m.currentCell()
	if p == nil {
		return
	}
	e, ok := m.store.EntryForCell(date, p.ID)
	if !ok {
		return
	}
	next := e.Intensity + by
	if err := m.store.UpdateEntry(e.ID, store.EntryUpdate{Intensity: &next}); err == nil {
		m.loadData()
	}
}

// Ideas screen

func (m Model) handleIdeasKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.ideaCur > 0 {
			m.ideaCur--
			m.tray.Reset()
		}

	case key.Matches(msg, keys.Down):
		if m.ideaCur < len(m.ideas)-1 {
			m.ideaCur++
			m.tray.Reset()
		}

	case key.Matches(msg, keys.Left):
		m.dragTray(-trayStep)

	case key.Matches(msg, keys.Right):
		m.dragTray(trayStep)

	case key.Matches(msg, keys.Enter):
		if m.tray.State() == reveal.Dragging {
			m.tray.Release()
		}

	case key.Matches(msg, keys.Add):
		return m.startAddIdea()

	case key.Matches(msg, keys.Filter):
		m.cycleIdeaFilter()

	case key.Matches(msg, keys.Hide):
		m.handleToggleHidden()

	case key.Matches(msg, keys.Delete):
		m.handleDeleteIdea()

	case key.Matches(msg, keys.Link):
		return m.startLinkIdea()

	case msg.String() == "e":
		return m.startEditIdea()

	case key.Matches(msg, keys.Escape):
		if m.tray.State() != reveal.Resting {
			m.tray.Reset()
		} else if m.query != "" {
			m.query = ""
			m.loadData()
			m.message = "Search cleared"
		}
	}

	return m, nil
}

// dragTray moves the virtual pointer and feeds the row's reveal gesture,
// so repeated left presses behave like one continuous swipe.
func (m *Model) dragTray(dx float64) {
	if m.currentIdea() == nil {
		return
	}
	if m.tray.State() == reveal.Resting && m.tray.Offset() == 0 {
		m.trayX = 0
		m.tray.Start(m.trayX)
	}
	m.trayX += dx
	m.tray.Move(m.trayX)
	if m.tray.Offset() == 0 {
		m.tray.Reset()
	}
}

func (m *Model) cycleIdeaFilter() {
	// ALL -> UNLINKED -> HIDDEN -> each visible practice -> ALL
	order := []string{store.FilterAll, store.FilterUnlinked, store.FilterHidden}
	for _, p := range m.store.GridProjects() {
		order = append(order, p.ID)
	}
	next := 0
	for i, f := range order {
		if f == m.ideaFilter {
			next = (i + 1) % len(order)
			break
		}
	}
	m.ideaFilter = order[next]
	m.ideaCur = 0
	m.tray.Reset()
	m.loadData()
}

func (m Model) startAddIdea() (tea.Model, tea.Cmd) {
	m.mode = ModeAddIdea
	m.input.SetValue("")
	m.input.Placeholder = "Capture an idea..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) handleToggleHidden() {
	idea := m.currentIdea()
	if idea == nil || m.tray.State() != reveal.Revealed {
		return
	}
	hidden := !idea.IsHidden
	if err := m.store.UpdateInspiration(idea.ID, store.InspirationUpdate{IsHidden: &hidden}); err == nil {
		m.tray.Reset()
		m.loadData()
		if hidden {
			m.message = "Idea hidden"
		} else {
			m.message = "Idea visible again"
		}
	}
}

func (m *Model) handleDeleteIdea() {
	idea := m.currentIdea()
	if idea == nil || m.tray.State() != reveal.Revealed {
		return
	}
	m.store.DeleteInspiration(idea.ID)
	m.tray.Reset()
	m.loadData()
	if m.ideaCur >= len(m.ideas) && m.ideaCur > 0 {
		m.ideaCur--
	}
	m.message = "Idea deleted"
}

func (m Model) startEditIdea() (tea.Model, tea.Cmd) {
	idea := m.currentIdea()
	if idea == nil || m.tray.State() != reveal.Revealed {
		return m, nil
	}
	m.mode = ModeEditIdea
	// The input is single-line; park the rest and stitch it back on save.
	head := firstLine(idea.Content)
	m.ideaTail = idea.Content[len(head):]
	m.input.SetValue(head)
	m.input.Placeholder = "Idea..."
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m Model) startLinkIdea() (tea.Model, tea.Cmd) {
	idea := m.currentIdea()
	if idea == nil || m.tray.State() != reveal.Revealed {
		return m, nil
	}
	m.mode = ModeLinkIdea
	m.input.SetValue("")
	m.input.Placeholder = "Practice name (empty to unlink)..."
	m.input.Focus()
	return m, textinput.Blink
}

// Review screen

func (m Model) handleReviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.statsCur > 0 {
			m.statsCur--
		}

	case key.Matches(msg, keys.Down):
		if m.statsCur < len(m.stats)-1 {
			m.statsCur++
		}

	case key.Matches(msg, keys.PrevMonth):
		m.shiftStatsMonth(1)

	case key.Matches(msg, keys.NextMonth):
		m.shiftStatsMonth(-1)

	case msg.String() == "s":
		m.statsStat = (m.statsStat + 1) % 3
		m.statsCur = 0
		m.loadData()

	case key.Matches(msg, keys.Escape):
		if m.query != "" {
			m.query = ""
			m.loadData()
			m.message = "Search cleared"
		}
	}

	return m, nil
}

func (m *Model) shiftStatsMonth(n int) {
	idx := 0
	for i, mo := range m.months {
		if mo == m.statsMonth {
			idx = i
			break
		}
	}
	idx += n
	if idx < 0 || idx >= len(m.months) {
		return
	}
	m.statsMonth = m.months[idx]
	m.statsCur = 0
	m.loadData()
}

// Input modes

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = ModeNormal

		switch mode {
		case ModeLogEntry, ModeEditEntry:
			m.commitEntry(value)
		case ModeRenameProject:
			if _, p := m.currentCell(); p != nil && value != "" {
				m.store.UpdateProject(p.ID, store.ProjectUpdate{Name: &value})
				m.message = fmt.Sprintf("Renamed to %s", value)
			}
		case ModeEditIdea:
			if idea := m.currentIdea(); idea != nil && value != "" {
				content := value + m.ideaTail
				if err := m.store.UpdateInspiration(idea.ID, store.InspirationUpdate{Content: &content}); err == nil {
					m.tray.Reset()
					m.message = "Idea updated"
				}
			}
			m.ideaTail = ""
		case ModeAddProject:
			if value == "" {
				return m, nil
			}
			if _, err := m.store.AddProject(value); err != nil {
				if errors.Is(err, store.ErrProjectCap) {
					m.message = "Nine active practices is the limit. Finish one first."
				} else {
					m.message = fmt.Sprintf("Error: %v", err)
				}
			} else {
				m.message = fmt.Sprintf("Started practice: %s", value)
			}
		case ModeAddIdea:
			if value == "" {
				return m, nil
			}
			if _, err := m.store.AddInspiration(value, ""); err != nil {
				m.message = fmt.Sprintf("Error: %v", err)
			} else {
				m.message = "Idea captured"
			}
		case ModeLinkIdea:
			m.commitLink(value)
		}

		m.loadData()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitEntry(content string) {
	date, p := m.currentCell()
	if p == nil {
		return
	}
	if content == "" {
		// Clearing the text of an existing entry removes it.
		if e, ok := m.store.EntryForCell(date, p.ID); ok {
			m.store.DeleteEntry(e.ID)
			m.message = "Entry cleared"
		}
		return
	}
	intensity := model.DefaultIntensity
	if e, ok := m.store.EntryForCell(date, p.ID); ok {
		intensity = e.Intensity
	}
	if _, err := m.store.AddEntry(date, p.ID, content, intensity); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.message = fmt.Sprintf("Logged %s for %s", date, p.Name)
}

func (m *Model) commitLink(name string) {
	idea := m.currentIdea()
	if idea == nil {
		return
	}
	projectID := ""
	if name != "" {
		found := false
		for _, p := range m.store.Projects() {
			if strings.EqualFold(p.Name, name) {
				projectID = p.ID
				found = true
				break
			}
		}
		if !found {
			m.message = fmt.Sprintf("No practice named %q", name)
			return
		}
	}
	if err := m.store.UpdateInspiration(idea.ID, store.InspirationUpdate{ProjectID: &projectID}); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.tray.Reset()
	if projectID == "" {
		m.message = "Idea unlinked"
	} else {
		m.message = fmt.Sprintf("Linked to %s", name)
	}
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.mode = ModeSearch
	m.input.SetValue(m.query)
	m.input.Placeholder = ""
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.query = ""
		m.loadData()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query = m.input.Value()
	m.loadData()
	return m, cmd
}
