package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/timeline"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	base := m.renderAppContent()

	modal := ""
	switch m.mode {
	case ModeInspect:
		modal = m.renderInspector()
	case ModePrompt:
		modal = m.renderPrompt()
	case ModeHelp:
		modal = m.renderHelp()
	}

	if modal == "" {
		m.overlay.active = false
		return base
	}
	m.overlay.active = true
	m.overlay.SetBackground(m.styles.ModalBackdropColor)
	return m.overlay.Render(base, m.width, m.height, modal)
}

func (m Model) renderAppContent() string {
	innerW := m.width - 4 // AppStyle horizontal padding
	if innerW < rowLabelWidth+12 {
		return "Terminal too small"
	}
	laneW := innerW - rowLabelWidth

	var sections []string
	sections = append(sections, m.renderHeader(innerW))
	sections = append(sections, m.renderRuler(laneW))
	sections = append(sections, m.renderRows(laneW)...)
	sections = append(sections, "")
	sections = append(sections, m.renderLegend())
	sections = append(sections, m.renderStatusLine())
	sections = append(sections, m.renderHelpLine())

	content := strings.Join(sections, "\n")
	app := m.styles.AppStyle.Render(content)
	return padLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderHeader(innerW int) string {
	title := m.styles.TitleStyle.Render("tripline")
	day := ""
	if !m.date.IsZero() {
		day = m.styles.DayLabelStyle.Render(m.date.Format("Mon 2006-01-02"))
	}
	count := ""
	if len(m.days) > 0 {
		count = m.styles.DayCountStyle.Render(fmt.Sprintf("  day %d/%d", m.dayIdx+1, len(m.days)))
	}
	if m.loading {
		count += m.styles.DayCountStyle.Render("  loading...")
	}
	return m.styles.HeaderBarStyle.Render(title + "  " + day + count)
}

// renderRuler draws hour ticks above the chart lanes.
func (m Model) renderRuler(laneW int) string {
	cfg := m.editor.Config()
	canvas := make([]rune, laneW)
	for i := range canvas {
		canvas[i] = ' '
	}

	for h := cfg.StartHour; h <= cfg.EndHour; h++ {
		col := m.minuteToCol(h*60, laneW)
		if col < 0 || col >= laneW {
			continue
		}
		canvas[col] = '╷'
		label := fmt.Sprintf("%02d", h%24)
		if h%2 == 0 && col+len(label) < laneW {
			copy(canvas[col:], []rune(label))
		}
	}

	return strings.Repeat(" ", rowLabelWidth) + m.styles.RulerStyle.Render(string(canvas))
}

// renderRows draws one lane per location group.
func (m Model) renderRows(laneW int) []string {
	rows := m.editor.Rows()
	if len(rows) == 0 {
		if m.loading {
			return []string{m.styles.HelpStyle.Render("  ...")}
		}
		return []string{m.styles.HelpStyle.Render("  No activities yet. Press a to add one, or p to ask for a plan.")}
	}

	selected := m.selectedActivity()
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		label := truncate(row.Location, rowLabelWidth-1)
		labelStyle := m.styles.RowLabelStyle
		if selected != nil && selected.PrimaryLocation() == row.Location {
			labelStyle = m.styles.RowLabelSelectedStyle
		}
		lines = append(lines, labelStyle.Render(label)+m.renderLane(row, laneW))
	}
	return lines
}

// renderLane paints one location row's blocks onto a character lane.
// Blocks are painted in insertion order, so a later block drawn over
// an earlier one wins, matching the editor's arrangement semantics.
func (m Model) renderLane(row timeline.Row, laneW int) string {
	cfg := m.editor.Config()

	const (
		cellEmpty = iota
		cellGrid
	)
	styleOf := map[int]lipgloss.Style{
		cellEmpty: m.styles.LaneStyle,
		cellGrid:  m.styles.LaneStyle,
	}

	chars := make([]rune, laneW)
	styleID := make([]int, laneW)
	for i := range chars {
		chars[i] = ' '
	}
	for h := cfg.StartHour; h <= cfg.EndHour; h++ {
		col := m.minuteToCol(h*60, laneW)
		if col >= 0 && col < laneW {
			chars[col] = '·'
			styleID[col] = cellGrid
		}
	}

	nextID := cellGrid + 1
	prevCat := activity.Category("")
	alt := false
	for _, a := range row.Activities {
		if a.Category == prevCat {
			alt = !alt
		} else {
			alt = false
		}
		prevCat = a.Category

		start, end := m.blockSpan(a, laneW)
		if end <= start {
			continue
		}

		style := m.styles.BlockStyle(a.Category, alt)
		if m.selectedID == a.ID {
			style = style.Reverse(true)
		}
		id := nextID
		nextID++
		styleOf[id] = style

		label := blockLabel(a, end-start)
		for i := start; i < end; i++ {
			chars[i] = ' '
			if j := i - start; j < len(label) {
				chars[i] = label[j]
			}
			styleID[i] = id
		}
	}

	// Render runs of identical style in one call.
	var sb strings.Builder
	runStart := 0
	for i := 1; i <= laneW; i++ {
		if i == laneW || styleID[i] != styleID[runStart] {
			sb.WriteString(styleOf[styleID[runStart]].Render(string(chars[runStart:i])))
			runStart = i
		}
	}
	return sb.String()
}

// blockSpan maps an activity's minutes onto lane columns. A midnight
// end and a wraparound both run to the right edge of the chart.
func (m Model) blockSpan(a *activity.Activity, laneW int) (int, int) {
	start := m.minuteToCol(a.StartMinutes, laneW)
	var end int
	if a.EndMinutes <= a.StartMinutes {
		end = laneW
	} else {
		end = m.minuteToCol(a.EndMinutes, laneW)
	}

	if start < 0 {
		start = 0
	}
	if end > laneW {
		end = laneW
	}
	if end-start < 1 && start < laneW {
		end = start + 1
	}
	return start, end
}

// blockLabel fits the title into the block with a leading space when
// there is room.
func blockLabel(a *activity.Activity, width int) []rune {
	if width <= 1 {
		return nil
	}
	label := " " + truncate(a.Title, width-1)
	return []rune(label)
}

// minuteToCol converts an absolute minute of day to a lane column.
func (m Model) minuteToCol(minutes, laneW int) int {
	cfg := m.editor.Config()
	span := cfg.WindowEndMinutes() - cfg.WindowStartMinutes()
	if span <= 0 {
		return 0
	}
	return (minutes - cfg.WindowStartMinutes()) * laneW / span
}

func (m Model) renderLegend() string {
	var parts []string
	seen := map[string]bool{}
	for _, c := range activity.Categories {
		name := c.ColorName()
		if seen[name] {
			continue
		}
		seen[name] = true
		dot := m.styles.LegendDotStyle.Foreground(m.styles.CategoryAccent(c)).Render("●")
		parts = append(parts, dot+" "+legendLabel(c))
	}
	return m.styles.LegendStyle.Render(strings.Join(parts, "  "))
}

// legendLabel names the color groups rather than every category.
func legendLabel(c activity.Category) string {
	switch c {
	case activity.CategoryBreakfast:
		return "meals"
	case activity.CategoryOther:
		return "other"
	default:
		return string(c)
	}
}

func (m Model) renderStatusLine() string {
	if m.statusMsg == "" {
		if a := m.selectedActivity(); a != nil {
			return m.styles.StatusStyle.Render(fmt.Sprintf("%s  %s-%s  %s", a.Title, a.StartClock(), a.EndClock(), a.Location))
		}
		return ""
	}
	if m.statusError {
		return m.styles.StatusErrorStyle.Render(m.statusMsg)
	}
	return m.styles.StatusStyle.Render(m.statusMsg)
}

func (m Model) renderHelpLine() string {
	keys := "tab select  ←→ move  [ ] { } resize  enter edit  a add  d delete  c copy  u undo  y yank  p plan  H/L day  t theme  ? help  q quit"
	return m.styles.HelpStyle.Render(keys)
}

func (m Model) renderInspector() string {
	s := m.styles
	var rows []string
	rows = append(rows, s.ModalTitleStyle.Render("Edit activity"))
	rows = append(rows, "")

	inputStyle := func(field int) lipgloss.Style {
		if m.inspector.focus == field {
			return s.ModalInputFocusedStyle
		}
		return s.ModalInputStyle
	}

	rows = append(rows, s.ModalLabelStyle.Render("Title")+inputStyle(fieldTitle).Render(m.inspector.title.View()))
	rows = append(rows, s.ModalLabelStyle.Render("Start")+inputStyle(fieldStart).Width(10).Render(m.inspector.start.View()))
	rows = append(rows, s.ModalLabelStyle.Render("End")+inputStyle(fieldEnd).Width(10).Render(m.inspector.end.View()))

	var cats []string
	for i, c := range activity.Categories {
		style := s.CategoryInactiveStyle
		if i == m.inspector.catIdx {
			style = s.CategoryActiveStyle
		}
		cats = append(cats, style.Render(string(c)))
	}
	catFocus := " "
	if m.inspector.focus == fieldCategory {
		catFocus = ">"
	}
	rows = append(rows, s.ModalLabelStyle.Render("Category")+catFocus+strings.Join(cats[:5], " "))
	rows = append(rows, s.ModalLabelStyle.Render("")+" "+strings.Join(cats[5:], " "))

	if m.inspector.errMsg != "" {
		rows = append(rows, "")
		rows = append(rows, s.ModalErrorStyle.Render(m.inspector.errMsg))
	}

	rows = append(rows, "")
	rows = append(rows, s.ModalHintStyle.Render("tab next field  enter save  esc cancel"))

	return s.ModalStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderPrompt() string {
	s := m.styles
	var rows []string
	rows = append(rows, s.ModalTitleStyle.Render("Plan this day"))
	rows = append(rows, "")
	rows = append(rows, s.ModalInputFocusedStyle.Width(50).Render(m.prompt.View()))
	rows = append(rows, "")
	rows = append(rows, s.ModalHintStyle.Render("enter ask  esc cancel"))
	return s.ModalStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderHelp() string {
	s := m.styles
	lines := []struct{ key, desc string }{
		{"tab / shift+tab", "select next / previous activity"},
		{"← / →", "move selected activity one grid step"},
		{"shift+← / →", "drag a copy off the selection"},
		{"[ / ]", "move start edge earlier / later"},
		{"{ / }", "move end edge earlier / later"},
		{"enter", "open the inspector for the selection"},
		{"a", "add a new activity"},
		{"d", "delete the selection"},
		{"c", "duplicate the selection"},
		{"u", "undo the last change"},
		{"y", "copy the day plan to the clipboard"},
		{"p", "ask the LLM to plan the day"},
		{"H / L", "previous / next trip day"},
		{"t", "cycle color theme"},
		{"q", "quit"},
	}

	var rows []string
	rows = append(rows, s.ModalTitleStyle.Render("Keys"))
	rows = append(rows, "")
	for _, l := range lines {
		rows = append(rows, s.HelpKeyStyle.Render(padRight(l.key, 16))+s.ModalHintStyle.Render(l.desc))
	}
	return s.ModalStyle.Render(strings.Join(rows, "\n"))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return string(r[:1])
	}
	return string(r[:width-1]) + "…"
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLinesWithBackground pads rendered content to the full terminal
// size so the theme background covers every cell.
func padLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	fill := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w < width {
			lines[i] = line + fill.Render(strings.Repeat(" ", width-w))
		}
	}
	return strings.Join(lines, "\n")
}
