// Package tui provides the interactive timeline editor for tripline.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/config"
	"github.com/dnanh/tripline/internal/suggest"
	"github.com/dnanh/tripline/internal/timeline"
	"github.com/dnanh/tripline/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeInspect      // Inspector form open over a block
	ModePrompt       // Free-text day plan request
	ModeHelp         // Key reference overlay
)

// dayChange carries committed editor mutations out of the timeline
// callback and into the update loop, which owns persistence.
type dayChange struct {
	dirty bool
	acts  []*activity.Activity
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo      activity.Repository
	config    *config.Config
	suggester *suggest.Suggester // nil disables the prompt mode

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Timeline editor for the loaded day
	editor  *timeline.Editor
	changed *dayChange

	// Trip days
	days    []time.Time
	dayIdx  int
	date    time.Time
	loading bool

	// Selection
	selectedID int64 // 0 = nothing selected

	mode Mode

	// Inspector form state
	inspector inspectorState

	// Prompt state
	prompt     textinput.Model
	suggesting bool

	// Overlay compositing
	overlay OverlayModel

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg   string
	statusError bool
	statusTime  time.Time // when to clear message

	// Error state
	err error
}

// New creates a new TUI model editing the given trip day.
func New(repo activity.Repository, cfg *config.Config, suggester *suggest.Suggester, date time.Time) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("frappe")
	}
	styles := NewStyles(t)

	prompt := textinput.New()
	prompt.Placeholder = "a relaxed afternoon of sightseeing..."
	prompt.CharLimit = 256
	prompt.Width = 48
	prompt.PlaceholderStyle = styles.ModalPlaceholderStyle
	prompt.TextStyle = styles.ModalInputTextStyle
	prompt.PromptStyle = styles.ModalInputTextStyle
	prompt.Cursor.Style = styles.ModalInputCursorStyle
	prompt.Cursor.TextStyle = styles.ModalInputTextStyle

	changed := &dayChange{}
	editor := timeline.NewEditor(timeline.Config{
		StartHour:          cfg.Timeline.StartHour,
		EndHour:            cfg.Timeline.EndHour,
		PixelsPerHour:      cfg.Timeline.PixelsPerHour,
		SnapMinutes:        cfg.Timeline.SnapMinutes,
		MinDurationMinutes: cfg.Timeline.MinDurationMinutes,
	}, func(_ int, acts []*activity.Activity) {
		changed.dirty = true
		changed.acts = acts
	})

	m := &Model{
		repo:      repo,
		config:    cfg,
		suggester: suggester,
		theme:     t,
		styles:    styles,
		editor:    editor,
		changed:   changed,
		date:      date,
		loading:   true,
		mode:      ModeNormal,
		prompt:    prompt,
		overlay:   NewOverlayModel(),
	}
	m.inspector = newInspectorState(styles)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadDays(m.repo, m.date)
}

// Run starts the TUI.
func Run(repo activity.Repository, cfg *config.Config, suggester *suggest.Suggester, date time.Time) error {
	return RunWithDebug(repo, cfg, suggester, date, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo activity.Repository, cfg *config.Config, suggester *suggest.Suggester, date time.Time, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(repo, cfg, suggester, date)
	p := tea.NewProgram(*model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// selectedActivity returns the selected activity, or nil.
func (m Model) selectedActivity() *activity.Activity {
	if m.selectedID == 0 {
		return nil
	}
	return m.editor.Get(m.selectedID)
}

// selectedIndex returns the position of the selection in the day's
// activity list, or -1.
func (m Model) selectedIndex() int {
	if m.selectedID == 0 {
		return -1
	}
	for i, a := range m.editor.Activities() {
		if a.ID == m.selectedID {
			return i
		}
	}
	return -1
}

// ensureSelection keeps the selection pointed at a live activity
// after deletes, undos, and day loads.
func (m *Model) ensureSelection() {
	acts := m.editor.Activities()
	if len(acts) == 0 {
		m.selectedID = 0
		return
	}
	if m.selectedID != 0 && m.editor.Get(m.selectedID) != nil {
		return
	}
	m.selectedID = acts[0].ID
}

// moveSelection shifts the selection by delta in insertion order,
// wrapping around.
func (m *Model) moveSelection(delta int) {
	acts := m.editor.Activities()
	if len(acts) == 0 {
		return
	}
	idx := m.selectedIndex()
	if idx < 0 {
		m.selectedID = acts[0].ID
		return
	}
	idx = (idx + delta + len(acts)) % len(acts)
	m.selectedID = acts[idx].ID
	LogSelection(m.selectedID, idx)
}

// snapPixels converts one snap increment to the editor's pixel space.
func (m Model) snapPixels() int {
	cfg := m.editor.Config()
	px := cfg.SnapMinutes * cfg.PixelsPerHour / 60
	if px <= 0 {
		px = 1
	}
	return px
}

// setStatus shows a transient status message.
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusMsg = msg
	m.statusError = isError
	m.statusTime = time.Now().Add(4 * time.Second)
	return expireStatus(m.statusTime)
}
