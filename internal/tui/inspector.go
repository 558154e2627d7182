package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/timeline"
)

// Inspector form fields, in focus order.
const (
	fieldTitle = iota
	fieldStart
	fieldEnd
	fieldCategory
	fieldCount
)

// inspectorState holds the textinput widgets backing the inspector
// popup. The timeline.Inspector owns validation and the commit; this
// is presentation only.
type inspectorState struct {
	title  textinput.Model
	start  textinput.Model
	end    textinput.Model
	catIdx int
	focus  int
	errMsg string
}

func newInspectorState(styles *Styles) inspectorState {
	title := textinput.New()
	title.Placeholder = "Activity title"
	title.CharLimit = 120
	title.Width = 34

	start := textinput.New()
	start.Placeholder = "09:00"
	start.CharLimit = 5
	start.Width = 8

	end := textinput.New()
	end.Placeholder = "10:00"
	end.CharLimit = 5
	end.Width = 8

	s := inspectorState{title: title, start: start, end: end}
	s.restyle(styles)
	return s
}

func (s *inspectorState) restyle(styles *Styles) {
	for _, ti := range []*textinput.Model{&s.title, &s.start, &s.end} {
		ti.PlaceholderStyle = styles.ModalPlaceholderStyle
		ti.TextStyle = styles.ModalInputTextStyle
		ti.PromptStyle = styles.ModalInputTextStyle
		ti.Cursor.Style = styles.ModalInputCursorStyle
		ti.Cursor.TextStyle = styles.ModalInputTextStyle
	}
}

// seed fills the form from the editor's inspector snapshot.
func (s *inspectorState) seed(form timeline.Form) {
	s.title.SetValue(form.Title)
	s.start.SetValue(form.StartClock)
	s.end.SetValue(form.EndClock)
	s.catIdx = 0
	for i, c := range activity.Categories {
		if c == form.Category {
			s.catIdx = i
			break
		}
	}
	s.errMsg = ""
	s.setFocus(fieldTitle)
}

func (s *inspectorState) setFocus(field int) {
	s.focus = field
	s.title.Blur()
	s.start.Blur()
	s.end.Blur()
	switch field {
	case fieldTitle:
		s.title.Focus()
	case fieldStart:
		s.start.Focus()
	case fieldEnd:
		s.end.Focus()
	}
}

// form assembles the editable values for a commit.
func (s *inspectorState) form() timeline.Form {
	return timeline.Form{
		Title:      s.title.Value(),
		StartClock: s.start.Value(),
		EndClock:   s.end.Value(),
		Category:   activity.Categories[s.catIdx],
	}
}

// update forwards non-key messages (cursor blink) to the focused
// input.
func (s inspectorState) update(msg tea.Msg) (inspectorState, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case fieldTitle:
		s.title, cmd = s.title.Update(msg)
	case fieldStart:
		s.start, cmd = s.start.Update(msg)
	case fieldEnd:
		s.end, cmd = s.end.Update(msg)
	}
	return s, cmd
}

// handleInspectorKeys handles keys while the inspector popup is open.
func (m Model) handleInspectorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editor.Inspector().Close()
		LogModeChange(m.mode, ModeNormal, "inspector cancelled")
		m.mode = ModeNormal
		return m, nil

	case "tab", "down":
		m.inspector.setFocus((m.inspector.focus + 1) % fieldCount)
		return m, textinput.Blink

	case "shift+tab", "up":
		m.inspector.setFocus((m.inspector.focus + fieldCount - 1) % fieldCount)
		return m, textinput.Blink

	case "left":
		if m.inspector.focus == fieldCategory {
			n := len(activity.Categories)
			m.inspector.catIdx = (m.inspector.catIdx + n - 1) % n
			return m, nil
		}

	case "right":
		if m.inspector.focus == fieldCategory {
			m.inspector.catIdx = (m.inspector.catIdx + 1) % len(activity.Categories)
			return m, nil
		}

	case "enter":
		form := m.inspector.form()
		if err := m.editor.CommitInspector(form); err != nil {
			m.inspector.errMsg = err.Error()
			return m, nil
		}
		m.editor.Inspector().Close()
		LogModeChange(m.mode, ModeNormal, "inspector committed")
		m.mode = ModeNormal
		return m, m.collectSave()
	}

	var cmd tea.Cmd
	m.inspector, cmd = m.inspector.update(msg)
	return m, cmd
}
