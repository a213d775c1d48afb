package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/gleam/internal/model"
)

// UI colors. Accents come from the practice palette itself; the chrome
// stays muted so the shaded grid cells carry the color.
var (
	Primary    = lipgloss.Color("#B8C4BB")
	Text       = lipgloss.Color("#E8E6E1")
	TextMuted  = lipgloss.Color("#888888")
	Border     = lipgloss.Color("#333333")
	Surface    = lipgloss.Color("#24242e")
	EmptyCell  = lipgloss.Color("#2a2a32")
	DangerText = lipgloss.Color("#C97B7B")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	CellCursorStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(Text)

	RowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	RowSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	HiddenRowStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// CellBlock renders one grid cell as a shaded block for the entry's
// intensity, or a dim placeholder when the cell is empty.
func CellBlock(color string, intensity int, filled bool) string {
	if !filled {
		return lipgloss.NewStyle().Foreground(EmptyCell).Render("··")
	}
	shade := model.ShadeFor(color, intensity)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(shade)).
		Render("  ")
}

// SwatchFor renders a practice's name tinted with its palette color.
func SwatchFor(p model.Project) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●") + " " + p.Name
}
