package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewPalette_BlockShades(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Warning:     "#888888",
		Red:         "#112233",
		Amber:       "#445566",
		Blue:        "#223344",
		Purple:      "#334455",
		Green:       "#556677",
		Orange:      "#667788",
		Gray:        "#778899",
	}

	palette := NewPalette(base)

	red := palette.Block("red")
	if red.Accent != lipgloss.Color(base.Red) {
		t.Fatalf("red accent = %q, want %q", red.Accent, base.Red)
	}
	if red.Bg != lipgloss.Color(darkenColor(base.Red)) {
		t.Fatalf("red bg = %q, want %q", red.Bg, darkenColor(base.Red))
	}
	if red.BgAlt != lipgloss.Color(alternateShade(darkenColor(base.Red), false)) {
		t.Fatalf("red bg alt = %q, want %q", red.BgAlt, alternateShade(darkenColor(base.Red), false))
	}
}

func TestNewPalette_UnknownBlockFallsBackToGray(t *testing.T) {
	theme, err := Load("frappe")
	if err != nil {
		t.Fatalf("Load(frappe) failed: %v", err)
	}
	palette := NewPalette(theme)

	if palette.Block("chartreuse") != palette.Block("gray") {
		t.Fatal("unknown color name should map to the gray block set")
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Warning:     "#ff00ff",
	}

	palette := NewPalette(base)
	if palette.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Modal.Bg = %q, want %q", palette.Modal.Bg, base.BgHighlight)
	}
	if palette.Modal.Border.Dark != base.Accent {
		t.Fatalf("Modal.Border.Dark = %q, want %q", palette.Modal.Border.Dark, base.Accent)
	}
	if palette.Modal.Backdrop != lipgloss.Color(base.BgSelection) {
		t.Fatalf("Modal.Backdrop = %q, want %q", palette.Modal.Backdrop, base.BgSelection)
	}
}

func TestNewPalette_LightThemeInvertsShades(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Warning:     "#c2410c",
		Blue:        "#1d4a8a",
		Green:       "#2f8f2f",
	}

	palette := NewPalette(base)
	if relativeLuminance(string(palette.Block("blue").Bg)) <= relativeLuminance(base.Blue) {
		t.Fatalf("blue bg luminance = %f, want greater than raw blue", relativeLuminance(string(palette.Block("blue").Bg)))
	}
	if relativeLuminance(string(palette.Block("green").Bg)) <= relativeLuminance(base.Green) {
		t.Fatalf("green bg luminance = %f, want greater than raw green", relativeLuminance(string(palette.Block("green").Bg)))
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}
