package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestOverlayRenderInactiveReturnsBase(t *testing.T) {
	overlay := NewOverlayModel()
	base := "alpha\nbeta"
	got := overlay.Render(base, 10, 2, "content")
	if got != base {
		t.Fatalf("expected base content unchanged when inactive")
	}
}

func TestOverlayRenderCentersContent(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetBackground(lipgloss.Color("#0c0c0c"))
	overlay.active = true

	width := 30
	height := 12
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	content := "EDIT ACTIVITY"
	got := overlay.Render(base, width, height, content)

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}

	stripped := ansi.Strip(got)
	if !strings.Contains(stripped, content) {
		t.Fatalf("expected rendered output to include popup text")
	}

	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
	}

	// The popup is one line tall, vertically centered.
	popupRow := (height - 1) / 2
	bgSeq := ansi.Style{}.BackgroundColor(ansi.XParseColor(string(overlay.bgColor))).String()
	if !strings.Contains(lines[popupRow], bgSeq) {
		t.Fatalf("expected backdrop sequence on popup row %d", popupRow)
	}
	if strings.Contains(lines[0], bgSeq) {
		t.Fatalf("expected no backdrop on untouched base row")
	}
}

func TestOverlayRenderUsesBackgroundColor(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetBackground(lipgloss.Color("#123456"))
	overlay.active = true

	width := 20
	height := 6
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := overlay.Render(base, width, height, "x")

	bgSeq := ansi.Style{}.BackgroundColor(ansi.XParseColor(string(overlay.bgColor))).String()
	if !strings.Contains(got, bgSeq) {
		t.Fatalf("expected overlay background sequence in output")
	}
}

func TestOverlayRenderClampsOversizedContent(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetBackground(lipgloss.Color("#101010"))
	overlay.active = true

	width := 12
	height := 3
	base := strings.Repeat(strings.Repeat(" ", width)+"\n", height-1) + strings.Repeat(" ", width)
	content := strings.Repeat("wide line that overflows\n", 6)
	got := overlay.Render(base, width, height, content)

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
	}
}
