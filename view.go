package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/philtim/offsetclock/clock"
)

// palette holds the colours of one theme
type palette struct {
	title  lipgloss.Color
	accent lipgloss.Color
	text   lipgloss.Color
	muted  lipgloss.Color
	border lipgloss.Color
	bar    lipgloss.Color
	errc   lipgloss.Color
}

var (
	lightPalette = palette{
		title:  lipgloss.Color("25"),
		accent: lipgloss.Color("161"),
		text:   lipgloss.Color("235"),
		muted:  lipgloss.Color("243"),
		border: lipgloss.Color("62"),
		bar:    lipgloss.Color("254"),
		errc:   lipgloss.Color("160"),
	}
	darkPalette = palette{
		title:  lipgloss.Color("86"),
		accent: lipgloss.Color("205"),
		text:   lipgloss.Color("252"),
		muted:  lipgloss.Color("241"),
		border: lipgloss.Color("62"),
		bar:    lipgloss.Color("235"),
		errc:   lipgloss.Color("203"),
	}
)

func (m model) palette() palette {
	if m.dark {
		return darkPalette
	}
	return lightPalette
}

// View renders the UI
func (m model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if !m.ready {
		return "Initializing..."
	}

	switch m.state {
	case viewMain:
		return m.renderMain()
	case viewAdd:
		return m.renderForm("Add New Time Zone")
	case viewHome:
		return m.renderForm("Set Home Time Zone")
	case viewDelete:
		return m.renderDelete()
	case viewExport:
		return m.renderExport()
	case viewConvert:
		return m.renderConvert()
	case viewConfirm:
		return m.renderConfirm()
	}

	return ""
}

// renderMain renders the home banner and the clock grid
func (m model) renderMain() string {
	p := m.palette()

	homeClock := clock.FromOffset(m.home.Name, m.home.Offset)
	banner := lipgloss.NewStyle().
		Foreground(p.text).
		Align(lipgloss.Center).
		Width(m.width).
		Padding(1, 0, 0, 0).
		Render(fmt.Sprintf("Current time in %s (%s): %s",
			m.home.Name, m.home.Label,
			lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(homeClock.FormatAt(m.now))))

	content := banner + "\n" + renderClocks(m.clocks, m, m.width)
	m.viewport.SetContent(content)

	return fmt.Sprintf("%s\n%s", m.viewport.View(), m.renderCommandBar())
}

// renderForm renders the add / home form
func (m model) renderForm(title string) string {
	p := m.palette()
	var b strings.Builder

	b.WriteString(m.titleStyle().Render(title))
	b.WriteString("\n\n")

	b.WriteString("Name:\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString("Time Zone:\n")
	b.WriteString(m.offsetInput.View())
	b.WriteString("\n\n")

	if m.formErr != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(p.errc).Render(m.formErr))
		b.WriteString("\n\n")
	}

	b.WriteString(m.hint("Tab: Switch field | Enter: Save | ESC: Cancel"))
	return b.String()
}

// renderDelete renders the delete list
func (m model) renderDelete() string {
	var b strings.Builder

	b.WriteString(m.titleStyle().Render("Delete Time Zones"))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		checkbox := " "
		if m.deleteSelected[i] {
			checkbox = "x"
		}
		b.WriteString(m.listLine(i, fmt.Sprintf("[%s] %s (%s)", checkbox, e.Name, e.Label)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.hint("↑/↓: Navigate | Space: Toggle | Enter: Delete | ESC: Cancel"))
	return b.String()
}

// renderExport renders the export target list
func (m model) renderExport() string {
	var b strings.Builder

	b.WriteString(m.titleStyle().Render("Export Time Zone Script"))
	b.WriteString("\n\n")

	for i, e := range m.exportTargets() {
		b.WriteString(m.listLine(i, fmt.Sprintf("%s (%s) → %s", e.Name, e.Label, scriptTarget(m.kind, e))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.hint(fmt.Sprintf("Scripts are written to %s", m.exportDir)))
	b.WriteString("\n")
	b.WriteString(m.hint("↑/↓: Navigate | Enter: Export | ESC: Cancel"))
	return b.String()
}

// renderConvert renders the conversion form and its results
func (m model) renderConvert() string {
	p := m.palette()
	var b strings.Builder

	b.WriteString(m.titleStyle().Render("Convert Time"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Time in %s (%s):\n", m.home.Name, m.home.Label))
	b.WriteString(m.timeInput.View())
	b.WriteString("\n\n")

	switch {
	case m.convertErr != "":
		b.WriteString(lipgloss.NewStyle().Foreground(p.errc).Render(m.convertErr))
		b.WriteString("\n\n")
	case m.conversions != nil && len(m.conversions) == 0:
		b.WriteString(m.hint("No time zones added yet."))
		b.WriteString("\n\n")
	default:
		for _, row := range m.conversions {
			line := fmt.Sprintf("  %-20s %-7s %s", row.name, row.label,
				lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(row.conv.String()))
			if s := dayShift(row.conv.DayShift); s != "" {
				line += " " + m.hint(s)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(m.conversions) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString(m.hint("Enter: Convert | ESC: Back"))
	return b.String()
}

// renderConfirm renders the confirmation dialog
func (m model) renderConfirm() string {
	var b strings.Builder

	b.WriteString(m.titleStyle().Render("Confirm"))
	b.WriteString("\n\n")
	b.WriteString(m.confirmMsg)
	b.WriteString("\n\n")
	b.WriteString(m.hint("y: Yes | n/ESC: No"))

	return b.String()
}

// renderCommandBar renders the command bar at the bottom
func (m model) renderCommandBar() string {
	p := m.palette()
	style := lipgloss.NewStyle().
		Foreground(p.muted).
		Background(p.bar).
		Padding(0, 1)

	leftContent := style.Render("a: Add | h: Home | d: Delete | c: Convert | x: Export | t: Theme | q: Quit")

	status := m.status
	if status == "" {
		status = fmt.Sprintf("%d time zones", len(m.entries))
	}
	rightContent := style.Render(status)

	// Calculate spacing to push right content to the right
	spacingWidth := m.width - lipgloss.Width(leftContent) - lipgloss.Width(rightContent)
	if spacingWidth < 0 {
		spacingWidth = 0
	}

	return lipgloss.NewStyle().Background(p.bar).
		Render(leftContent + strings.Repeat(" ", spacingWidth) + rightContent)
}

func (m model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(m.palette().accent).
		Padding(1, 0)
}

func (m model) hint(s string) string {
	return lipgloss.NewStyle().Foreground(m.palette().muted).Render(s)
}

func (m model) listLine(i int, text string) string {
	if i == m.listCursor {
		return lipgloss.NewStyle().
			Foreground(m.palette().accent).
			Bold(true).
			Render("> " + text)
	}
	return "  " + text
}

// renderClocks renders all clocks in a grid layout
func renderClocks(clocks []*clock.Clock, m model, width int) string {
	p := m.palette()
	if len(clocks) == 0 {
		return lipgloss.NewStyle().
			Foreground(p.muted).
			Align(lipgloss.Center).
			Width(width).
			Padding(2, 4).
			Render("No time zones added yet.\nPress 'a' to add one.")
	}

	cols := calculateColumns(clocks, width)
	rows := (len(clocks) + cols - 1) / cols

	// Each card has border (2) + padding (4) + margins (2)
	const cardOverhead = 8
	cardWidth := width/cols - cardOverhead
	if cardWidth < 20 {
		cardWidth = 20
	}

	var cards []string
	for _, clk := range clocks {
		cards = append(cards, renderClockCard(clk, m, cardWidth))
	}

	var lines []string
	for row := 0; row < rows; row++ {
		end := min((row+1)*cols, len(cards))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards[row*cols:end]...))
	}

	return strings.Join(lines, "\n")
}

// renderClockCard renders a single clock card
func renderClockCard(clk *clock.Clock, m model, width int) string {
	p := m.palette()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.title).
		Align(lipgloss.Center).
		Width(width).
		PaddingTop(1).
		PaddingBottom(1)

	timeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.accent).
		Align(lipgloss.Center).
		Width(width)

	subStyle := lipgloss.NewStyle().
		Foreground(p.muted).
		Align(lipgloss.Center).
		Width(width)

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 2).
		Margin(1, 1, 0, 1)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(strings.ToUpper(clk.Name)),
		timeStyle.Render(clk.FormatAt(m.now)),
		subStyle.Render(clk.FormatDateWithOffset(m.now)),
		subStyle.PaddingBottom(1).Render(fmt.Sprintf("%s: %s (%s)",
			m.home.Name, clock.Format(m.now, m.home.Offset), clock.Lead(m.home.Offset, clk.Offset))),
	)

	return cardStyle.Render(content)
}

// calculateColumns determines the number of columns based on terminal width and name lengths
func calculateColumns(clocks []*clock.Clock, width int) int {
	// The home line "HOME: 10:00:00 AM (+8h)" is usually the widest
	minContentWidth := 28
	for _, clk := range clocks {
		minContentWidth = max(minContentWidth, len(clk.Name))
	}

	minCardWidth := minContentWidth + 8

	if width >= minCardWidth*4 {
		return 4
	}
	if width >= minCardWidth*2 {
		return 2
	}
	return 1
}

// dayShift describes a conversion that lands on another day
func dayShift(n int) string {
	unit := "day"
	if n > 1 || n < -1 {
		unit = "days"
	}
	switch {
	case n > 0:
		return fmt.Sprintf("(+%d %s)", n, unit)
	case n < 0:
		return fmt.Sprintf("(%d %s)", n, unit)
	default:
		return ""
	}
}
