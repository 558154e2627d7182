package timeline

import "testing"

func TestConfig_MinutesToPixels(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		minutes int
		want    int
	}{
		{360, 0},    // 06:00, left edge
		{420, 80},   // 07:00
		{570, 280},  // 09:30
		{1440, 1440}, // midnight, right edge
		{300, -80},  // 05:00, before the window
	}

	for _, tt := range tests {
		if got := cfg.MinutesToPixels(tt.minutes); got != tt.want {
			t.Errorf("MinutesToPixels(%d) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}

func TestConfig_PixelsToMinutes(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		px   int
		want int
	}{
		{0, 0},
		{80, 60},
		{40, 30},
		{-80, -60},
		{41, 31}, // rounded to the nearest minute, not snapped
	}

	for _, tt := range tests {
		if got := cfg.PixelsToMinutes(tt.px); got != tt.want {
			t.Errorf("PixelsToMinutes(%d) = %d, want %d", tt.px, got, tt.want)
		}
	}
}

func TestConfig_Snap(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{7, 0},
		{8, 15},
		{22, 15},
		{23, 30},
		{-8, -15},
	}

	for _, tt := range tests {
		if got := cfg.Snap(tt.minutes); got != tt.want {
			t.Errorf("Snap(%d) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}

// Pixel conversion inverts minute conversion on the snap grid.
func TestConfig_CodecRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	for m := cfg.WindowStartMinutes(); m <= cfg.WindowEndMinutes(); m += cfg.SnapMinutes {
		px := cfg.MinutesToPixels(m)
		back := cfg.PixelsToMinutes(px) + cfg.WindowStartMinutes()
		if back != m {
			t.Errorf("round trip %d -> %dpx -> %d", m, px, back)
		}
	}
}
