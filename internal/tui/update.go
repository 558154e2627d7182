package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnanh/tripline/internal/timeline"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		LogKeyPress(msg)
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case daysLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, m.setStatus(fmt.Sprintf("Error: %v", msg.err), true)
		}
		m.days = msg.days
		m.dayIdx = msg.idx
		return m, loadDay(m.repo, msg.idx, msg.days[msg.idx])

	case dayLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.loading = false
			return m, m.setStatus(fmt.Sprintf("Error: %v", msg.err), true)
		}
		m.editor.LoadActivities(msg.idx, msg.acts)
		m.changed.dirty = false
		m.date = msg.date
		m.dayIdx = msg.idx
		m.loading = false
		m.selectedID = 0
		m.ensureSelection()
		LogDayLoaded(msg.idx, len(msg.acts))
		return m, nil

	case daySavedMsg:
		if msg.err != nil {
			LogError("saving day", msg.err)
			return m, m.setStatus(fmt.Sprintf("Save failed: %v", msg.err), true)
		}
		return m, nil

	case suggestResultMsg:
		m.suggesting = false
		if msg.err != nil {
			LogError("day plan suggestion", msg.err)
			return m, m.setStatus(fmt.Sprintf("Suggestion failed: %v", msg.err), true)
		}
		added := 0
		for _, a := range msg.acts {
			_, err := m.editor.Add(timeline.RecordFromActivity(a))
			if err != nil {
				continue
			}
			added++
		}
		m.ensureSelection()
		status := fmt.Sprintf("Added %d suggested activities", added)
		if len(msg.resp.Warnings) > 0 {
			status += " - " + msg.resp.Warnings[0]
		}
		cmds := []tea.Cmd{m.setStatus(status, false)}
		if cmd := m.collectSave(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case statusExpiredMsg:
		if msg.at.Equal(m.statusTime) || time.Now().After(m.statusTime) {
			m.statusMsg = ""
			m.statusError = false
		}
		return m, nil
	}

	// Forward everything else to the focused text input.
	switch m.mode {
	case ModePrompt:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	case ModeInspect:
		var cmd tea.Cmd
		m.inspector, cmd = m.inspector.update(msg)
		return m, cmd
	}

	return m, nil
}

// collectSave turns a committed editor mutation into a persistence
// command. Returns nil when nothing changed.
func (m *Model) collectSave() tea.Cmd {
	if !m.changed.dirty {
		return nil
	}
	m.changed.dirty = false
	LogSave(m.dayIdx, len(m.changed.acts))
	return saveDay(m.repo, m.date, m.changed.acts)
}

// switchDay moves to another trip day. Pending edits are already
// persisted per-commit, so switching just loads the target day.
func (m Model) switchDay(delta int) (tea.Model, tea.Cmd) {
	if len(m.days) == 0 {
		return m, nil
	}
	idx := m.dayIdx + delta
	if idx < 0 || idx >= len(m.days) {
		return m, m.setStatus("No more trip days in that direction", false)
	}
	m.loading = true
	return m, loadDay(m.repo, idx, m.days[idx])
}
