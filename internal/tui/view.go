package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/gleam/internal/reveal"
	"github.com/existflow/gleam/internal/store"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.screen {
	case ScreenMatrix:
		body = m.renderMatrix()
	case ScreenIdeas:
		body = m.renderIdeas()
	default:
		body = m.renderReview()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body)

	switch m.mode {
	case ModeLogEntry, ModeEditEntry, ModeAddProject, ModeRenameProject,
		ModeAddIdea, ModeEditIdea, ModeLinkIdea:
		content = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeConfirmDelete:
		content = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderConfirmDelete(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		content = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m Model) renderTabs() string {
	tabs := []struct {
		screen Screen
		label  string
	}{
		{ScreenMatrix, "1 Matrix"},
		{ScreenIdeas, "2 Ideas"},
		{ScreenReview, "3 Review"},
	}

	var parts []string
	parts = append(parts, HeaderStyle.Render("Gleam"))
	for _, t := range tabs {
		style := TabStyle
		if t.screen == m.screen {
			style = TabActiveStyle
		}
		parts = append(parts, style.Render(t.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderMatrix() string {
	var s strings.Builder

	s.WriteString(HeaderStyle.Render(m.month) + "  " +
		HelpStyle.Render("[/]: change month") + "\n\n")

	if len(m.gridCols) == 0 {
		s.WriteString(HelpStyle.Render("  No practices yet. Press 'a' to start one."))
		return CellStyle.Render(s.String())
	}

	// Column header: one colored swatch per practice.
	s.WriteString("     ")
	for _, p := range m.gridCols {
		sw := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		s.WriteString(" " + sw + "  ")
	}
	s.WriteString("\n")

	days := daysIn(m.month)
	for d := 0; d < days; d++ {
		s.WriteString(HelpStyle.Render(fmt.Sprintf(" %2d  ", d+1)))
		for c, p := range m.gridCols {
			date := fmt.Sprintf("%s-%02d", m.month, d+1)
			e, ok := m.store.EntryForCell(date, p.ID)
			block := CellBlock(p.Color, e.Intensity, ok)
			if d == m.dayCur && c == m.projCur {
				s.WriteString(CellCursorStyle.Render("[" + block + "]"))
			} else {
				s.WriteString(" " + block + "  ")
			}
		}
		s.WriteString("\n")
	}

	s.WriteString("\n" + HelpStyle.Render("  "+truncate(m.selectedCellSummary(), m.width-6)))
	return CellStyle.Render(s.String())
}

// selectedCellSummary describes the cell under the cursor for the footer.
func (m Model) selectedCellSummary() string {
	date, p := m.currentCell()
	if p == nil {
		return ""
	}
	if e, ok := m.store.EntryForCell(date, p.ID); ok {
		return fmt.Sprintf("%s · %s · intensity %d · %s", p.Name, date, e.Intensity, e.Content)
	}
	return fmt.Sprintf("%s · %s · empty", p.Name, date)
}

func (m Model) renderIdeas() string {
	var s strings.Builder

	filterLabel := m.ideaFilter
	if p, ok := m.store.ResolveProject(m.ideaFilter); ok {
		filterLabel = p.Name
	}
	s.WriteString(HeaderStyle.Render("Ideas") + "  " +
		HelpStyle.Render("filter: "+filterLabel) + "\n\n")

	if len(m.ideas) == 0 {
		s.WriteString(HelpStyle.Render("  Nothing here. Press 'a' to capture an idea."))
		return RowStyle.Render(s.String())
	}

	for i, idea := range m.ideas {
		cursor := "  "
		style := RowStyle
		if i == m.ideaCur {
			cursor = "❯ "
			style = RowSelectedStyle
		}
		if idea.IsHidden {
			style = HiddenRowStyle
		}

		tag := ""
		if p, ok := m.store.ResolveProject(idea.ProjectID); ok {
			tag = "  " + lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("["+p.Name+"]")
		}

		line := cursor + truncate(firstLine(idea.Content), m.width-30) + tag
		s.WriteString(style.Render(line))

		if i == m.ideaCur {
			s.WriteString(m.renderTray())
		}
		s.WriteString("\n")
	}

	return RowStyle.Render(s.String())
}

// renderTray shows the cursor row's slide-open action tray.
func (m Model) renderTray() string {
	switch m.tray.State() {
	case reveal.Dragging:
		// Grow the handle with the drag so the latch point reads visually.
		width := int(m.tray.Offset() / 30)
		return "  " + HelpStyle.Render(strings.Repeat("‹", width+1))
	case reveal.Revealed:
		return "  " + lipgloss.NewStyle().Foreground(DangerText).Render("e:edit  x:hide  d:delete  L:link")
	default:
		return ""
	}
}

func (m Model) renderReview() string {
	var s strings.Builder

	monthLabel := m.statsMonth
	if monthLabel == store.MonthAll {
		monthLabel = "all time"
	}
	status := [...]string{"all", "ongoing", "finished"}[m.statsStat]
	s.WriteString(HeaderStyle.Render("Review") + "  " +
		HelpStyle.Render(fmt.Sprintf("%s · %s practices", monthLabel, status)) + "\n\n")

	if len(m.stats) == 0 {
		s.WriteString(HelpStyle.Render("  Nothing to review for this view."))
		return RowStyle.Render(s.String())
	}

	for i, card := range m.stats {
		style := RowStyle
		cursor := "  "
		if i == m.statsCur {
			style = RowSelectedStyle
			cursor = "❯ "
		}

		name := SwatchFor(card.Project)
		if card.Project.IsFinished {
			name += HelpStyle.Render(" (finished)")
		}
		header := fmt.Sprintf("%s%s  %d entries · %d ideas",
			cursor, name, len(card.Entries), len(card.Inspirations))
		s.WriteString(style.Render(header) + "\n")

		if i != m.statsCur {
			continue
		}
		for j, e := range card.Entries {
			if j >= 5 {
				s.WriteString(HelpStyle.Render(fmt.Sprintf("      … +%d more entries", len(card.Entries)-5)) + "\n")
				break
			}
			line := fmt.Sprintf("      %s  %s", e.Date, truncate(firstLine(e.Content), m.width-24))
			s.WriteString(HelpStyle.Render(line) + "\n")
		}
		for j, idea := range card.Inspirations {
			if j >= 3 {
				s.WriteString(HelpStyle.Render(fmt.Sprintf("      … +%d more ideas", len(card.Inspirations)-3)) + "\n")
				break
			}
			line := fmt.Sprintf("      ✦ %s", truncate(firstLine(idea.Content), m.width-24))
			s.WriteString(HelpStyle.Render(line) + "\n")
		}
	}

	return RowStyle.Render(s.String())
}

func (m Model) renderStatusBar() string {
	if m.mode == ModeSearch {
		return StatusBarStyle.Width(m.width).Render("/" + m.input.View())
	}

	var help string
	switch m.screen {
	case ScreenMatrix:
		help = "↑↓←→:move  enter:log  d:clear  +/-:intensity  a:new  r:rename  F:finish  <>:move col  [ ]:month  ?:help"
	case ScreenIdeas:
		help = "↑↓:move  ←:slide open  enter:latch  a:add  f:filter  /:search  ?:help  q:quit"
	default:
		help = "↑↓:move  [ ]:month  s:status  /:search  ?:help  q:quit"
	}

	if m.query != "" {
		help = fmt.Sprintf("/%s  Esc:clear  %s", m.query, help)
	}
	if m.message != "" {
		help = m.message
	}

	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	title := ""
	switch m.mode {
	case ModeLogEntry:
		if _, p := m.currentCell(); p != nil {
			title = fmt.Sprintf("Log: %s", p.Name)
		}
	case ModeEditEntry:
		if _, p := m.currentCell(); p != nil {
			title = fmt.Sprintf("Edit: %s", p.Name)
		}
	case ModeAddProject:
		title = "New Practice"
	case ModeRenameProject:
		title = "Rename Practice"
	case ModeAddIdea:
		title = "New Idea"
	case ModeEditIdea:
		title = "Edit Idea"
	case ModeLinkIdea:
		title = "Link Idea"
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderConfirmDelete() string {
	_, p := m.currentCell()
	if p == nil {
		return ""
	}
	content := lipgloss.NewStyle().Bold(true).Foreground(DangerText).Render("Delete "+p.Name+"?") + "\n\n"
	content += "Its logged entries will no longer appear anywhere.\n\n"
	content += HelpStyle.Render("y:delete  any other key:cancel")
	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭──── Keyboard Shortcuts ────╮
│                            │
│  Screens                   │
│  ───────                   │
│  1      Monthly matrix     │
│  2      Idea list          │
│  3      Review             │
│                            │
│  Matrix                    │
│  ──────                    │
│  ↑↓←→   Move cursor        │
│  enter  Log / edit entry   │
│  d      Clear entry        │
│  +/-    Intensity          │
│  a      New practice       │
│  r      Rename practice    │
│  F      Finish / resume    │
│  D      Delete practice    │
│  < >    Move column        │
│  [ ]    Change month       │
│                            │
│  Ideas                     │
│  ─────                     │
│  ←      Slide row open     │
│  enter  Latch tray         │
│  e/x/d  Edit/hide/delete   │
│  L      Link to practice   │
│  f      Cycle filter       │
│                            │
│  q      Quit               │
│                            │
╰────────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
