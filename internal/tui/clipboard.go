package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnanh/tripline/internal/timeline"
)

// copyDayToClipboard puts a plain-text rendering of the day plan on
// the system clipboard.
func (m Model) copyDayToClipboard() (tea.Model, tea.Cmd) {
	rows := m.editor.Rows()
	if len(rows) == 0 {
		return m, m.setStatus("Nothing to copy", false)
	}

	text := formatDayPlan(m.date, rows)
	if err := clipboard.WriteAll(text); err != nil {
		return m, m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
	}
	return m, m.setStatus("Day plan copied to clipboard", false)
}

// formatDayPlan renders a day as shareable text, grouped by place the
// same way the chart shows it.
func formatDayPlan(date time.Time, rows []timeline.Row) string {
	var sb strings.Builder
	if !date.IsZero() {
		sb.WriteString(date.Format("Monday, 2 January 2006"))
		sb.WriteString("\n\n")
	}
	for _, row := range rows {
		sb.WriteString(row.Location)
		sb.WriteString("\n")
		for _, a := range row.Activities {
			sb.WriteString(fmt.Sprintf("  %s-%s  %s", a.StartClock(), a.EndClock(), a.Title))
			if a.Description != "" {
				sb.WriteString(" - " + a.Description)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
