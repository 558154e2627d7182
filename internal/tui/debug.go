package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebugLogger logs TUI state, keystrokes, and events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "tripline-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	// Create log file in current directory with fixed name (easy to find)
	logPath := DebugLogPath
	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": logPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"type": fmt.Sprintf("%T", msg.Type),
	})
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("MODE_CHANGE", map[string]any{
		"from":   modeString(from),
		"to":     modeString(to),
		"reason": reason,
	})
}

// LogSelection logs a selection change.
func LogSelection(id int64, index int) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("SELECTION", map[string]any{
		"activity_id": id,
		"index":       index,
	})
}

// LogGesture logs a completed move or resize gesture.
func LogGesture(kind string, id int64, steps int) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("GESTURE", map[string]any{
		"kind":        kind,
		"activity_id": id,
		"steps":       steps,
	})
}

// LogDayLoaded logs a day switch.
func LogDayLoaded(dayIdx, count int) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("DAY_LOADED", map[string]any{
		"day":        dayIdx,
		"activities": count,
	})
}

// LogSave logs a persistence pass.
func LogSave(dayIdx, count int) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("SAVE", map[string]any{
		"day":        dayIdx,
		"activities": count,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// modeString returns a string representation of a Mode.
func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeInspect:
		return "Inspect"
	case ModePrompt:
		return "Prompt"
	case ModeHelp:
		return "Help"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}
