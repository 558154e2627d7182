package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/suggest"
	"github.com/dnanh/tripline/internal/timeline"
	"github.com/dnanh/tripline/internal/tui/theme"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeInspect:
		return m.handleInspectorKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	// Selection
	case "tab", "j", "down":
		m.moveSelection(1)
	case "shift+tab", "k", "up":
		m.moveSelection(-1)

	// Move the selected block one grid step
	case "left":
		return m.nudgeSelected(-1)
	case "right":
		return m.nudgeSelected(1)

	// Drag with the copy modifier held: spawns an offset duplicate
	case "shift+left", "shift+right":
		return m.copyDragSelected()

	// Resize the selected block's edges one grid step
	case "[":
		return m.resizeSelected(timeline.EdgeStart, -1)
	case "]":
		return m.resizeSelected(timeline.EdgeStart, 1)
	case "{":
		return m.resizeSelected(timeline.EdgeEnd, -1)
	case "}":
		return m.resizeSelected(timeline.EdgeEnd, 1)

	// Day navigation
	case "H", "pgup":
		return m.switchDay(-1)
	case "L", "pgdown":
		return m.switchDay(1)

	// Mutations
	case "u":
		if !m.editor.Undo() {
			return m, m.setStatus("Nothing to undo", false)
		}
		m.ensureSelection()
		return m, m.collectSave()

	case "d", "x":
		a := m.selectedActivity()
		if a == nil {
			return m, nil
		}
		title := a.Title
		if !m.editor.Delete(a.ID) {
			return m, nil
		}
		m.ensureSelection()
		return m, tea.Batch(
			m.setStatus(fmt.Sprintf("Deleted %q", title), false),
			m.collectSave(),
		)

	case "c":
		a := m.selectedActivity()
		if a == nil {
			return m, nil
		}
		dup, ok := m.editor.Duplicate(a.ID)
		if !ok {
			return m, nil
		}
		m.selectedID = dup.ID
		return m, tea.Batch(
			m.setStatus(fmt.Sprintf("Duplicated %q", dup.Title), false),
			m.collectSave(),
		)

	case "enter", "i":
		a := m.selectedActivity()
		if a == nil {
			return m, nil
		}
		form, err := m.editor.OpenInspector(a.ID)
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Error: %v", err), true)
		}
		m.inspector.seed(form)
		LogModeChange(m.mode, ModeInspect, "inspector opened")
		m.mode = ModeInspect
		return m, textinput.Blink

	case "a":
		return m.addActivity()

	// Clipboard export
	case "y":
		return m.copyDayToClipboard()

	// LLM prompt
	case "p", "/":
		if m.suggester == nil {
			return m, m.setStatus("No LLM configured; set [llm] in the config file", true)
		}
		LogModeChange(m.mode, ModePrompt, "prompt opened")
		m.mode = ModePrompt
		m.prompt.SetValue("")
		m.prompt.Focus()
		return m, textinput.Blink

	case "t":
		return m.cycleTheme()

	case "?":
		m.mode = ModeHelp
		return m, nil
	}

	return m, nil
}

// nudgeSelected moves the selected activity by steps snap increments.
// Each keypress is one complete gesture, so each is one undo step.
func (m Model) nudgeSelected(steps int) (tea.Model, tea.Cmd) {
	a := m.selectedActivity()
	if a == nil {
		return m, nil
	}
	if err := m.editor.BeginDrag(a.ID, false); err != nil {
		return m, nil
	}
	m.editor.DragTick(steps * m.snapPixels())
	m.editor.EndDrag()
	LogGesture("drag", a.ID, steps)
	return m, m.collectSave()
}

// copyDragSelected starts a move gesture with the copy modifier set:
// the gesture degenerates into dropping an offset duplicate and ends
// immediately. The copy becomes the selection.
func (m Model) copyDragSelected() (tea.Model, tea.Cmd) {
	a := m.selectedActivity()
	if a == nil {
		return m, nil
	}
	if err := m.editor.BeginDrag(a.ID, true); err != nil {
		return m, nil
	}
	m.editor.EndDrag()
	LogGesture("copy-drag", a.ID, 0)
	if acts := m.editor.Activities(); len(acts) > 0 {
		m.selectedID = acts[len(acts)-1].ID
	}
	return m, tea.Batch(
		m.setStatus(fmt.Sprintf("Duplicated %q", a.Title), false),
		m.collectSave(),
	)
}

// resizeSelected adjusts one edge of the selected activity by steps
// snap increments.
func (m Model) resizeSelected(edge timeline.Edge, steps int) (tea.Model, tea.Cmd) {
	a := m.selectedActivity()
	if a == nil {
		return m, nil
	}
	if err := m.editor.BeginResize(a.ID, edge); err != nil {
		return m, nil
	}
	m.editor.ResizeTick(steps * m.snapPixels())
	m.editor.EndResize()
	LogGesture("resize", a.ID, steps)
	return m, m.collectSave()
}

// addActivity drops a fresh one-hour block into the first free gap
// and opens the inspector to name it.
func (m Model) addActivity() (tea.Model, tea.Cmd) {
	cfg := m.editor.Config()
	dur := 60
	start, ok := timeline.FirstFreeSlot(cfg, m.editor.Activities(), dur)
	if !ok {
		dur = cfg.MinDurationMinutes
		start, ok = timeline.FirstFreeSlot(cfg, m.editor.Activities(), dur)
		if !ok {
			return m, m.setStatus("No room left on this day", true)
		}
	}
	rec := timeline.Record{
		Title:    "New activity",
		Location: "Unplanned",
		Category: "other",
		Start:    activity.FormatClock(start),
		End:      activity.FormatClock(start + dur),
	}
	a, err := m.editor.Add(rec)
	if err != nil {
		return m, m.setStatus(fmt.Sprintf("Error: %v", err), true)
	}
	m.selectedID = a.ID
	form, err := m.editor.OpenInspector(a.ID)
	if err != nil {
		return m, m.collectSave()
	}
	m.inspector.seed(form)
	m.mode = ModeInspect
	return m, tea.Batch(textinput.Blink, m.collectSave())
}

// handlePromptKeys handles keys while the suggestion prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil

	case "enter":
		input := strings.TrimSpace(m.prompt.Value())
		if input == "" {
			m.mode = ModeNormal
			m.prompt.Blur()
			return m, nil
		}
		m.mode = ModeNormal
		m.prompt.Blur()
		m.suggesting = true

		existing := make([]suggest.ExistingActivity, 0, len(m.editor.Activities()))
		for _, a := range m.editor.Activities() {
			existing = append(existing, suggest.ExistingActivity{
				Start:    a.StartClock(),
				End:      a.EndClock(),
				Title:    a.Title,
				Location: a.Location,
			})
		}
		req := suggest.Request{
			Input:     input,
			Date:      m.date,
			StartHour: m.config.Timeline.StartHour,
			Existing:  existing,
		}
		return m, tea.Batch(
			m.setStatus("Asking for suggestions...", false),
			runSuggest(m.suggester, req),
		)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleHelpKeys closes the help overlay on any key.
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	return m, nil
}

// cycleTheme switches to the next available theme.
func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	names := theme.Available()
	next := names[0]
	for i, name := range names {
		if name == m.theme.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}
	return m.applyTheme(next)
}

// applyTheme loads a theme by name and rebuilds every derived style.
func (m Model) applyTheme(name string) (tea.Model, tea.Cmd) {
	t, err := theme.Load(name)
	if err != nil {
		return m, m.setStatus(fmt.Sprintf("Error: %v", err), true)
	}
	m.theme = t
	m.styles = NewStyles(t)
	m.inspector.restyle(m.styles)
	m.prompt.PlaceholderStyle = m.styles.ModalPlaceholderStyle
	m.prompt.TextStyle = m.styles.ModalInputTextStyle
	m.prompt.PromptStyle = m.styles.ModalInputTextStyle
	m.prompt.Cursor.Style = m.styles.ModalInputCursorStyle
	m.prompt.Cursor.TextStyle = m.styles.ModalInputTextStyle
	return m, m.setStatus("Theme: "+t.Name, false)
}
