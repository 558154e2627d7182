// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme. Category colors are named
// after the display color they provide, not after the categories that
// use them; the activity package decides which category maps to which
// color name.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Lane background, subtle highlight
	BgSelection string `toml:"bg_selection"` // Cursor, selection
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Ruler ticks, muted elements
	Accent      string `toml:"accent"`       // Title, borders
	Warning     string `toml:"warning"`      // Warnings, validation errors

	// Category block colors
	Red    string `toml:"red"`    // meals
	Amber  string `toml:"amber"`  // coffee
	Blue   string `toml:"blue"`   // sightseeing
	Purple string `toml:"purple"` // shopping
	Green  string `toml:"green"`  // rest
	Orange string `toml:"orange"` // transit
	Gray   string `toml:"gray"`   // everything else

	// Modal palette (can override base theme values)
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to frappe if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "frappe"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		// Fallback to frappe
		if name != "frappe" {
			return Load("frappe")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// CategoryHex maps a category color name to the theme hex value.
// Unknown names get the gray fallback.
func (t *Theme) CategoryHex(name string) string {
	switch name {
	case "red":
		return t.Red
	case "amber":
		return t.Amber
	case "blue":
		return t.Blue
	case "purple":
		return t.Purple
	case "green":
		return t.Green
	case "orange":
		return t.Orange
	default:
		return t.Gray
	}
}

// ModalPalette provides the modal-specific colors derived from the theme.
type ModalPalette struct {
	BaseBg      string
	ModalBorder string
	TextPrimary string
	TextMuted   string
	Highlight   string
}

// Modal returns the modal palette, falling back to base theme colors when needed.
func (t *Theme) Modal() ModalPalette {
	return ModalPalette{
		BaseBg:      coalesce(t.BaseBg, t.BgHighlight, t.Bg),
		ModalBorder: coalesce(t.ModalBorder, t.Accent),
		TextPrimary: coalesce(t.TextPrimary, t.Fg),
		TextMuted:   coalesce(t.TextMuted, t.FgMuted),
		Highlight:   coalesce(t.Highlight, t.BgSelection, t.Accent),
	}
}

func (t *Theme) applyDefaults() {
	if t.BaseBg == "" {
		t.BaseBg = coalesce(t.BgHighlight, t.Bg)
	}
	if t.ModalBorder == "" {
		t.ModalBorder = t.Accent
	}
	if t.TextPrimary == "" {
		t.TextPrimary = t.Fg
	}
	if t.TextMuted == "" {
		t.TextMuted = t.FgMuted
	}
	if t.Highlight == "" {
		t.Highlight = coalesce(t.BgSelection, t.Accent)
	}
	if t.Gray == "" {
		t.Gray = t.FgMuted
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"frappe", "latte", "macchiato", "mocha"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
