package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/dnanh/tripline/internal/activity"
)

// Color definitions for consistent styling across the UI. Categories
// reuse the same color groups the chart legend uses.
var (
	colorRed    = color.New(color.FgRed)
	colorAmber  = color.New(color.FgYellow)
	colorBlue   = color.New(color.FgBlue)
	colorPurple = color.New(color.FgMagenta)
	colorGreen  = color.New(color.FgGreen)
	colorOrange = color.New(color.FgHiYellow)
	colorGray   = color.New(color.FgWhite, color.Faint)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// categoryColor returns the color for an activity category.
func categoryColor(cat activity.Category) *color.Color {
	switch cat.ColorName() {
	case "red":
		return colorRed
	case "amber":
		return colorAmber
	case "blue":
		return colorBlue
	case "purple":
		return colorPurple
	case "green":
		return colorGreen
	case "orange":
		return colorOrange
	default:
		return colorGray
	}
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatCategory formats a category tag in its display color.
func formatCategory(cat activity.Category) string {
	return categoryColor(cat).Sprintf("[%s]", cat)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
