package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayModel composites a centered popup over already-rendered base
// content without disturbing the base's ANSI styling outside the box.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an inactive overlay.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the backdrop color painted around the popup.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws the popup content centered on top of base content.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 || content == "" {
		return base
	}

	contentLines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	boxW, boxH := contentSize(contentLines)
	if boxW > width {
		boxW = width
	}
	if boxH > height {
		boxH = height
	}

	top := (height - boxH) / 2
	left := (width - boxW) / 2

	bgSeq := ansi.Style{}.BackgroundColor(ansi.XParseColor(string(o.bgColor))).String()
	baseLines := normalizeLines(base, width, height)

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+boxH {
			lines = append(lines, baseLines[row])
			continue
		}

		line := contentLines[row-top]
		lineW := lipgloss.Width(line)
		if lineW > boxW {
			line = ansi.Cut(line, 0, boxW)
			lineW = boxW
		}
		if lineW < boxW {
			line += strings.Repeat(" ", boxW-lineW)
		}
		// Re-apply the backdrop after any reset inside the content so
		// gaps do not flash the terminal default background.
		line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)

		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+boxW, width)
		lines = append(lines, leftSlice+bgSeq+line+ansi.ResetStyle+rightSlice)
	}

	return strings.Join(lines, "\n")
}

func contentSize(lines []string) (int, int) {
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth, len(lines)
}

func normalizeLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w > width {
			lines[i] = ansi.Cut(line, 0, width)
		} else if w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
