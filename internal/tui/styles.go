// Package tui provides the interactive timeline editor for tripline.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/tui/theme"
)

// Width of the location label column on the left of the chart.
const rowLabelWidth = 16

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	palette *theme.Palette

	// Title and header
	TitleStyle     lipgloss.Style
	DayLabelStyle  lipgloss.Style
	DayCountStyle  lipgloss.Style
	HeaderBarStyle lipgloss.Style

	// Hour ruler above the chart
	RulerStyle     lipgloss.Style
	RulerTickStyle lipgloss.Style

	// Location row labels
	RowLabelStyle         lipgloss.Style
	RowLabelSelectedStyle lipgloss.Style

	// Lane background between blocks
	LaneStyle lipgloss.Style

	// Selection and gesture accents
	SelectedBlockStyle lipgloss.Style
	GestureBlockStyle  lipgloss.Style

	// Legend
	LegendStyle    lipgloss.Style
	LegendDotStyle lipgloss.Style

	// Status message
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style

	// Help text
	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	// Modal styles (inspector, prompt)
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalTitleStyle        lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalInputStyle        lipgloss.Style
	ModalInputFocusedStyle lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalHintStyle         lipgloss.Style
	ModalErrorStyle        lipgloss.Style

	// Category toggle inside the inspector
	CategoryActiveStyle   lipgloss.Style
	CategoryInactiveStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)
	s.palette = palette

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorWarning = palette.Warning

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.DayLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.DayCountStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.HeaderBarStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	s.RulerStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.RulerTickStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.RowLabelStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg).
		Width(rowLabelWidth).
		Align(lipgloss.Right).
		PaddingRight(1)

	s.RowLabelSelectedStyle = s.RowLabelStyle.
		Foreground(s.colorAccent).
		Bold(true)

	s.LaneStyle = lipgloss.NewStyle().
		Foreground(s.colorBgSelection).
		Background(s.colorBg)

	s.SelectedBlockStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection).
		Foreground(s.colorFg).
		Bold(true).
		Underline(true)

	s.GestureBlockStyle = lipgloss.NewStyle().
		Background(s.colorWarning).
		Foreground(palette.TextOnWarning).
		Bold(true)

	s.LegendStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.LegendDotStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.StatusErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	// Modal styles
	modal := palette.Modal
	s.ModalBgColor = modal.Bg
	s.ModalBackdropColor = modal.Backdrop

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(1, 2).
		Width(56).
		Align(lipgloss.Left)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		Width(10).
		Background(modal.Bg)

	s.ModalInputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(0, 1).
		Width(38)

	s.ModalInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(modal.Highlight).
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 1).
		Width(38)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(modal.Bg).
		Bold(true)

	s.CategoryActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Bold(true).
		Padding(0, 1)

	s.CategoryInactiveStyle = lipgloss.NewStyle().
		Background(modal.Bg).
		Foreground(modal.Muted).
		Padding(0, 1)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		PaddingTop(1).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingBottom(1)

	return s
}

// BlockStyle returns the style for an activity block of the given
// category.
func (s *Styles) BlockStyle(cat activity.Category, alt bool) lipgloss.Style {
	block := s.palette.Block(cat.ColorName())
	bg := block.Bg
	if alt {
		bg = block.BgAlt
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(block.Text).
		Bold(true)
}

// CategoryAccent returns the raw category color, used for legend dots.
func (s *Styles) CategoryAccent(cat activity.Category) lipgloss.Color {
	return s.palette.Block(cat.ColorName()).Accent
}
