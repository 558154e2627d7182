package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Timeline.StartHour != 6 {
		t.Errorf("expected start_hour 6, got %d", cfg.Timeline.StartHour)
	}
	if cfg.Timeline.EndHour != 24 {
		t.Errorf("expected end_hour 24, got %d", cfg.Timeline.EndHour)
	}
	if cfg.Timeline.PixelsPerHour != 80 {
		t.Errorf("expected pixels_per_hour 80, got %d", cfg.Timeline.PixelsPerHour)
	}
	if cfg.Timeline.SnapMinutes != 15 {
		t.Errorf("expected snap_minutes 15, got %d", cfg.Timeline.SnapMinutes)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("expected provider ollama, got %s", cfg.LLM.Provider)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Timeline.StartHour != 6 {
		t.Errorf("expected default start_hour, got %d", cfg.Timeline.StartHour)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[timeline]
start_hour = 8
end_hour = 22
pixels_per_hour = 60
snap_minutes = 10
min_duration_minutes = 10

[llm]
provider = "lmstudio"
model = "qwen2.5"
base_url = "http://localhost:1234/v1"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Timeline.StartHour != 8 {
		t.Errorf("expected start_hour 8, got %d", cfg.Timeline.StartHour)
	}
	if cfg.Timeline.EndHour != 22 {
		t.Errorf("expected end_hour 22, got %d", cfg.Timeline.EndHour)
	}
	if cfg.Timeline.PixelsPerHour != 60 {
		t.Errorf("expected pixels_per_hour 60, got %d", cfg.Timeline.PixelsPerHour)
	}
	if cfg.LLM.Provider != "lmstudio" {
		t.Errorf("expected provider lmstudio, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "qwen2.5" {
		t.Errorf("expected model qwen2.5, got %s", cfg.LLM.Model)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[llm]
model = "llama3.1"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set env vars
	t.Setenv("TRIPLINE_LLM_MODEL", "mistral")
	t.Setenv("TRIPLINE_LLM_BASE_URL", "http://localhost:11436/v1")
	t.Setenv("TRIPLINE_UI_THEME", "latte")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.LLM.Model != "mistral" {
		t.Errorf("expected model mistral from env, got %s", cfg.LLM.Model)
	}
	// Env should override default
	if cfg.LLM.BaseURL != "http://localhost:11436/v1" {
		t.Errorf("expected base_url http://localhost:11436/v1 from env, got %s", cfg.LLM.BaseURL)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte from env, got %s", cfg.UI.Theme)
	}
	// File value should be kept when no env override
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db from file, got %s", cfg.Storage.DBPath)
	}
}

func TestValidate_StartAfterEnd(t *testing.T) {
	cfg := Default()
	cfg.Timeline.StartHour = 20
	cfg.Timeline.EndHour = 8

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error when start_hour >= end_hour")
	}
}

func TestValidate_BadScale(t *testing.T) {
	cfg := Default()
	cfg.Timeline.PixelsPerHour = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for zero pixels_per_hour")
	}
}

func TestValidate_BadSnap(t *testing.T) {
	cfg := Default()
	cfg.Timeline.SnapMinutes = 90

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for snap_minutes above 60")
	}
}

func TestValidate_MinDurationBelowSnap(t *testing.T) {
	cfg := Default()
	cfg.Timeline.MinDurationMinutes = 5

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error when min_duration_minutes < snap_minutes")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Timeline.StartHour = 7
	cfg.Timeline.EndHour = 23
	cfg.UI.Theme = "mocha"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Timeline.StartHour != 7 {
		t.Errorf("expected start_hour 7, got %d", loaded.Timeline.StartHour)
	}
	if loaded.Timeline.EndHour != 23 {
		t.Errorf("expected end_hour 23, got %d", loaded.Timeline.EndHour)
	}
	if loaded.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", loaded.UI.Theme)
	}
}
